package resolve

import (
	"errors"
	"fmt"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/sema"
)

// LoadError reports a source file that could not be read or parsed.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnresolvedNameError reports a name no declaration could be found for.
type UnresolvedNameError struct {
	File     string
	Name     string
	Category sema.Category
	Pos      ast.Position
}

func (e *UnresolvedNameError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %s %s", e.Pos, e.Category, e.Name)
}

// DuplicateDeclError reports a second declaration of a type or field.
type DuplicateDeclError struct {
	File     string
	Name     string
	Category sema.Category
	Pos      ast.Position
}

func (e *DuplicateDeclError) Error() string {
	return fmt.Sprintf("%s: %s %s is already declared", e.Pos, e.Category, e.Name)
}

// Diagnostic is an error flattened for display.
type Diagnostic struct {
	File    string
	Pos     ast.Position
	Message string
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s: error: %s", d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: error: %s", d.File, d.Message)
}

// Diagnose flattens err into diagnostics. Parse error lists produce one
// diagnostic per syntax error.
func Diagnose(err error) []Diagnostic {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var ds []Diagnostic
		for _, e := range joined.Unwrap() {
			ds = append(ds, Diagnose(e)...)
		}
		return ds
	}

	var (
		load       *LoadError
		unresolved *UnresolvedNameError
		duplicate  *DuplicateDeclError
		syntax     *parser.Error
	)
	switch {
	case errors.As(err, &load):
		if inner := Diagnose(load.Err); len(inner) > 0 && inner[0].Pos.IsValid() {
			return inner
		}
		return []Diagnostic{{File: load.File, Message: load.Err.Error()}}
	case errors.As(err, &unresolved):
		return []Diagnostic{{
			File:    unresolved.File,
			Pos:     unresolved.Pos,
			Message: fmt.Sprintf("cannot resolve %s %s", unresolved.Category, unresolved.Name),
		}}
	case errors.As(err, &duplicate):
		return []Diagnostic{{
			File:    duplicate.File,
			Pos:     duplicate.Pos,
			Message: fmt.Sprintf("%s %s is already declared", duplicate.Category, duplicate.Name),
		}}
	case errors.As(err, &syntax):
		return []Diagnostic{{File: syntax.Pos.File, Pos: syntax.Pos, Message: syntax.Message}}
	}
	return []Diagnostic{{Message: err.Error()}}
}
