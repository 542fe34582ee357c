package parser

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the root of the accepted grammar.
const StartProduction = "CompilationUnit"

//go:embed grammar.ebnf
var grammarSource string

// GrammarSource returns the EBNF text of the Java subset accepted by Parse.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses the embedded grammar and verifies that every production
// is defined and reachable from StartProduction.
func Grammar() (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse("grammar.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, StartProduction); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}

// Productions returns the production names of grammar in sorted order.
// Lexical productions (lower-case names) follow the syntactic ones.
func Productions(grammar ebnf.Grammar) []string {
	names := make([]string, 0, len(grammar))
	for name := range grammar {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := isLexical(names[i]), isLexical(names[j])
		if li != lj {
			return lj
		}
		return names[i] < names[j]
	})
	return names
}

func isLexical(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
