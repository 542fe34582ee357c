package parser

import (
	"fmt"

	"github.com/dhamidi/javafront/java/ast"
)

type Error struct {
	Message string
	Pos     ast.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ErrorList collects the syntax errors of one source file in the order
// they were found.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	result := make([]error, len(l))
	for i, err := range l {
		result[i] = err
	}
	return result
}
