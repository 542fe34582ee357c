package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// arrayLength is the member every array type has.
var arrayLength = func() *sema.MemberDecl {
	m := sema.NewMemberDecl("length", sema.CategoryField, nil, nil)
	m.Type = sema.PrimitiveType(ast.PrimInt)
	m.Modifiers = ast.ModPublic | ast.ModFinal
	return m
}()

// ResolveName binds name, and every qualifier segment of it, to the
// declarations they denote when looked up from env. An unqualified name
// is looked up in env under cat. A qualified name resolves its qualifier
// as a package or type first (or as a variable, when cat asks for a
// variable or method) and looks the last identifier up among the
// qualifier's members. Either every segment is bound or none is.
//
// ResolveName returns the declaration bound to name, or nil.
func ResolveName(props *sema.Table, name *ast.NameNode, env *sema.Environ, cat sema.Category) sema.Decl {
	decls := lookupChain(name, env, cat)
	if decls == nil {
		return nil
	}
	bindChain(props, name, decls)
	return decls[len(decls)-1]
}

// lookupChain returns the declarations of name's segments, outermost
// first, or nil if any segment fails.
func lookupChain(name *ast.NameNode, env *sema.Environ, cat sema.Category) []sema.Decl {
	q := name.QualifierName()
	if q == nil {
		if d := env.Lookup(name.Ident, cat); d != nil {
			return []sema.Decl{d}
		}
		return nil
	}
	prefix := lookupChain(q, env, qualifierCategory(cat))
	if prefix == nil {
		return nil
	}
	d := memberOf(prefix[len(prefix)-1], name.Ident, cat)
	if d == nil {
		return nil
	}
	return append(prefix, d)
}

func qualifierCategory(cat sema.Category) sema.Category {
	qcat := sema.CategoryPackage | sema.CategoryType
	if cat.Matches(sema.CategoryVariable | sema.CategoryMethod) {
		qcat |= sema.CategoryVariable
	}
	return qcat
}

// memberOf looks ident up in the scope d exports.
func memberOf(d sema.Decl, ident string, cat sema.Category) sema.Decl {
	switch d := d.(type) {
	case *sema.PackageDecl:
		return d.Scope.LookupLocal(ident, cat&(sema.CategoryPackage|sema.CategoryType))
	case *sema.TypeDecl:
		return d.LookupMember(ident, cat&sema.CategoryMember)
	}
	if t, ok := sema.TypeOf(d); ok {
		return memberOfType(t, ident, cat)
	}
	return nil
}

// memberOfType looks ident up among the members of values of type t.
func memberOfType(t *sema.Type, ident string, cat sema.Category) sema.Decl {
	switch {
	case t == nil:
		return nil
	case t.Kind == sema.TypeClass:
		return t.Decl.LookupMember(ident, cat&sema.CategoryMember)
	case t.Kind == sema.TypeArray && ident == "length" && cat.Matches(sema.CategoryField):
		return arrayLength
	}
	return nil
}

// bindChain records decls on the segments of name, innermost last.
func bindChain(props *sema.Table, name *ast.NameNode, decls []sema.Decl) {
	for i := len(decls) - 1; i >= 0 && name != nil; i-- {
		props.SetDecl(name, decls[i])
		name = name.QualifierName()
	}
}
