package parser

import (
	"strings"
	"testing"
)

func TestGrammarVerifies(t *testing.T) {
	grammar, err := Grammar()
	if err != nil {
		t.Fatalf("Grammar: %v", err)
	}
	if _, ok := grammar[StartProduction]; !ok {
		t.Fatalf("grammar has no %s production", StartProduction)
	}

	names := Productions(grammar)
	if len(names) != len(grammar) {
		t.Fatalf("Productions returned %d names for %d productions", len(names), len(grammar))
	}
	seenLexical := false
	for _, name := range names {
		if isLexical(name) {
			seenLexical = true
		} else if seenLexical {
			t.Errorf("syntactic production %s listed after lexical ones", name)
		}
	}
}

func TestGrammarCoversKeywords(t *testing.T) {
	src := GrammarSource()
	for word, kind := range keywords {
		if !strings.Contains(src, `"`+word+`"`) {
			t.Errorf("keyword %s (%v) does not appear in the grammar", word, kind)
		}
	}
}
