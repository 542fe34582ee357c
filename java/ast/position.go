package ast

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether the position was set by the parser.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span is embedded in every node. It records the source range the node was
// parsed from; synthesized nodes carry a zero Span.
type Span struct {
	Start Position
	End   Position
}

func (s Span) Pos() Position {
	return s.Start
}

func (s Span) Range() Span {
	return s
}

// Contains reports whether the line/column pair falls inside the span.
func (s Span) Contains(line, column int) bool {
	if !s.Start.IsValid() {
		return false
	}
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && column < s.Start.Column {
		return false
	}
	if line == s.End.Line && column >= s.End.Column {
		return false
	}
	return true
}
