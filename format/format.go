// Package format renders compilation units: as an indented tree, as JSON,
// or as Java source. The tree and JSON forms include the facts recorded in
// a property table when one is given.
package format

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

type Encoder interface {
	Encode(unit *ast.CompileUnit) error
}

var encoders = map[string]func(w io.Writer, props *sema.Table) Encoder{
	"text": func(w io.Writer, props *sema.Table) Encoder { return NewTreeEncoder(w, props) },
	"json": func(w io.Writer, props *sema.Table) Encoder { return NewASTJSONEncoder(w, props) },
	"java": func(w io.Writer, props *sema.Table) Encoder { return NewJavaEncoder(w) },
}

// New returns the encoder called name. props may be nil.
func New(name string, w io.Writer, props *sema.Table) (Encoder, error) {
	constructor, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names())
	}
	return constructor(w, props), nil
}

// Names lists the known formats.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// detail is the node-specific text shown next to a node's kind.
func detail(n ast.Node) string {
	switch n := n.(type) {
	case *ast.CompileUnit:
		return n.File
	case *ast.NameNode:
		return n.Ident
	case *ast.LiteralNode:
		return n.Text
	case *ast.PrimitiveTypeNode:
		return n.Type.String()
	case *ast.ClassDecl:
		return n.Modifiers.String()
	case *ast.InterfaceDecl:
		return n.Modifiers.String()
	case *ast.FieldDecl:
		return n.Modifiers.String()
	case *ast.MethodDecl:
		return n.Modifiers.String()
	case *ast.ConstructorDecl:
		return n.Modifiers.String()
	case *ast.LocalVarDecl:
		return n.Modifiers.String()
	case *ast.AssignNode:
		return n.Op
	case *ast.BinaryOpNode:
		return n.Op
	case *ast.UnaryOpNode:
		if n.Postfix {
			return "postfix " + n.Op
		}
		return n.Op
	case *ast.AllocateArrayNode:
		if n.ExtraDims > 0 {
			return fmt.Sprintf("+%d dims", n.ExtraDims)
		}
	}
	return ""
}
