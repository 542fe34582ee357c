package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// chooseMethod picks the method or constructor a call with the given
// argument types binds to. A candidate whose parameter types equal the
// argument types wins; otherwise the first applicable candidate, then the
// first with the right number of parameters. This is not Java's most
// specific method selection.
func chooseMethod(candidates []sema.Decl, args []*sema.Type) *sema.MemberDecl {
	var applicable, arity *sema.MemberDecl
	for _, d := range candidates {
		m, ok := d.(*sema.MemberDecl)
		if !ok || len(m.Params) != len(args) {
			continue
		}
		if arity == nil {
			arity = m
		}
		exact, assignable := true, true
		for i, p := range m.Params {
			if !p.Type.Equal(args[i]) {
				exact = false
			}
			if !isAssignable(args[i], p.Type) {
				assignable = false
			}
		}
		if exact {
			return m
		}
		if assignable && applicable == nil {
			applicable = m
		}
	}
	if applicable != nil {
		return applicable
	}
	return arity
}

var wideningRank = map[ast.Primitive]int{
	ast.PrimByte:   1,
	ast.PrimShort:  2,
	ast.PrimChar:   2,
	ast.PrimInt:    3,
	ast.PrimLong:   4,
	ast.PrimFloat:  5,
	ast.PrimDouble: 6,
}

// isAssignable approximates assignment conversion from arg to param.
// Unknown types are assignable to anything.
func isAssignable(arg, param *sema.Type) bool {
	switch {
	case arg == nil || param == nil:
		return true
	case arg.Equal(param):
		return true
	case arg.IsNumeric() && param.IsNumeric():
		return wideningRank[arg.Prim] <= wideningRank[param.Prim]
	case arg.Kind == sema.TypeNull:
		return param.IsReference()
	case !arg.IsReference() || !param.IsReference():
		return false
	case param.Kind == sema.TypeClass && param.Decl.Super == nil && !param.Decl.IsInterface():
		// The root of the hierarchy accepts every reference.
		return true
	case arg.Kind == sema.TypeClass && param.Kind == sema.TypeClass:
		return arg.Decl.IsSubtypeOf(param.Decl)
	case arg.Kind == sema.TypeArray && param.Kind == sema.TypeArray:
		return arg.Elem.IsReference() && isAssignable(arg.Elem, param.Elem)
	}
	return false
}
