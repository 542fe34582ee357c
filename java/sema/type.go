package sema

import "github.com/dhamidi/javafront/java/ast"

type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeClass
	TypeArray
	TypeNull
)

// Type is the static type of an expression or declaration.
type Type struct {
	Kind TypeKind
	Prim ast.Primitive
	Decl *TypeDecl
	Elem *Type
}

// NullType is the type of the null literal.
var NullType = &Type{Kind: TypeNull}

func PrimitiveType(p ast.Primitive) *Type {
	return &Type{Kind: TypePrimitive, Prim: p}
}

func ClassType(d *TypeDecl) *Type {
	return &Type{Kind: TypeClass, Decl: d}
}

func ArrayOf(elem *Type) *Type {
	return &Type{Kind: TypeArray, Elem: elem}
}

func (t *Type) IsPrimitive(p ast.Primitive) bool {
	return t != nil && t.Kind == TypePrimitive && t.Prim == p
}

func (t *Type) IsVoid() bool {
	return t.IsPrimitive(ast.PrimVoid)
}

func (t *Type) IsNumeric() bool {
	return t != nil && t.Kind == TypePrimitive && t.Prim.IsNumeric()
}

func (t *Type) IsReference() bool {
	return t != nil && t.Kind != TypePrimitive
}

// Equal reports whether t and other denote the same type.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TypePrimitive:
		return t.Prim == other.Prim
	case TypeClass:
		return t.Decl == other.Decl
	case TypeArray:
		return t.Elem.Equal(other.Elem)
	}
	return true
}

func (t *Type) String() string {
	if t == nil {
		return "?"
	}
	switch t.Kind {
	case TypePrimitive:
		return t.Prim.String()
	case TypeClass:
		return t.Decl.FullName()
	case TypeArray:
		return t.Elem.String() + "[]"
	case TypeNull:
		return "null"
	}
	return "?"
}

// Promote applies binary numeric promotion. It returns nil unless both
// operands are numeric.
func Promote(a, b *Type) *Type {
	if !a.IsNumeric() || !b.IsNumeric() {
		return nil
	}
	for _, p := range []ast.Primitive{ast.PrimDouble, ast.PrimFloat, ast.PrimLong} {
		if a.Prim == p || b.Prim == p {
			return PrimitiveType(p)
		}
	}
	return PrimitiveType(ast.PrimInt)
}
