package sema

import (
	"strings"
)

// Describe renders a declaration the way hover text and tree dumps show it,
// for example "method void java.io.PrintStream.println(java.lang.String)".
func Describe(d Decl) string {
	switch d := d.(type) {
	case nil:
		return "<unresolved>"
	case *PackageDecl:
		if d.IsUnnamed() {
			return "unnamed package"
		}
		return "package " + d.FullName()
	case *TypeDecl:
		return join(d.Modifiers.String(), d.Category().String(), d.FullName())
	case *MemberDecl:
		owner := "?"
		if d.Container != nil {
			owner = d.Container.FullName()
		}
		switch d.Category() {
		case CategoryField:
			return join("field", d.Modifiers.String(), d.Type.String(), owner+"."+d.Name())
		case CategoryConstructor:
			return join("constructor", d.Modifiers.String(), owner+signature(d.Params))
		}
		return join("method", d.Modifiers.String(), d.Type.String(), owner+"."+d.Name()+signature(d.Params))
	case *LocalDecl:
		return join(d.Category().String(), d.Type.String(), d.Name())
	}
	return "?"
}

func signature(params []*LocalDecl) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = p.Type.String()
	}
	return "(" + strings.Join(types, ", ") + ")"
}

func join(parts ...string) string {
	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}
