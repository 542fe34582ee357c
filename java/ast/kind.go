package ast

type Kind int

const (
	KindAbsent Kind = iota

	// Compilation unit level
	KindCompileUnit
	KindImport
	KindImportOnDemand

	// Type declarations and members
	KindClassDecl
	KindInterfaceDecl
	KindFieldDecl
	KindMethodDecl
	KindConstructorDecl
	KindParameter

	// Types and names
	KindPrimitiveType
	KindTypeName
	KindArrayType
	KindName

	// Statements
	KindBlock
	KindLocalVarDecl
	KindExprStmt
	KindReturn
	KindIf
	KindWhile
	KindFor
	KindEmptyStmt

	// Expressions
	KindLiteral
	KindThis
	KindObject
	KindObjectFieldAccess
	KindMethodCall
	KindAllocate
	KindAllocateArray
	KindArrayAccess
	KindAssign
	KindBinaryOp
	KindUnaryOp
	KindCast
)

var kindNames = map[Kind]string{
	KindAbsent:            "Absent",
	KindCompileUnit:       "CompileUnit",
	KindImport:            "Import",
	KindImportOnDemand:    "ImportOnDemand",
	KindClassDecl:         "ClassDecl",
	KindInterfaceDecl:     "InterfaceDecl",
	KindFieldDecl:         "FieldDecl",
	KindMethodDecl:        "MethodDecl",
	KindConstructorDecl:   "ConstructorDecl",
	KindParameter:         "Parameter",
	KindPrimitiveType:     "PrimitiveType",
	KindTypeName:          "TypeName",
	KindArrayType:         "ArrayType",
	KindName:              "Name",
	KindBlock:             "Block",
	KindLocalVarDecl:      "LocalVarDecl",
	KindExprStmt:          "ExprStmt",
	KindReturn:            "Return",
	KindIf:                "If",
	KindWhile:             "While",
	KindFor:               "For",
	KindEmptyStmt:         "EmptyStmt",
	KindLiteral:           "Literal",
	KindThis:              "This",
	KindObject:            "Object",
	KindObjectFieldAccess: "ObjectFieldAccess",
	KindMethodCall:        "MethodCall",
	KindAllocate:          "Allocate",
	KindAllocateArray:     "AllocateArray",
	KindArrayAccess:       "ArrayAccess",
	KindAssign:            "Assign",
	KindBinaryOp:          "BinaryOp",
	KindUnaryOp:           "UnaryOp",
	KindCast:              "Cast",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Modifier is a bitmask of Java declaration modifiers.
type Modifier uint32

const (
	ModPublic Modifier = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
	ModNative
	ModSynchronized
	ModTransient
	ModVolatile
	ModStrictfp
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModAbstract, "abstract"},
	{ModNative, "native"},
	{ModSynchronized, "synchronized"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModStrictfp, "strictfp"},
}

// ModifierNamed returns the modifier spelled by keyword.
func ModifierNamed(keyword string) (Modifier, bool) {
	for _, m := range modifierNames {
		if m.name == keyword {
			return m.mod, true
		}
	}
	return 0, false
}

func (m Modifier) Has(other Modifier) bool {
	return m&other == other
}

func (m Modifier) String() string {
	result := ""
	for _, entry := range modifierNames {
		if m&entry.mod != 0 {
			if result != "" {
				result += " "
			}
			result += entry.name
		}
	}
	return result
}

// Primitive identifies a primitive type (or void).
type Primitive int

const (
	PrimBoolean Primitive = iota
	PrimByte
	PrimChar
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimVoid
)

var primitiveNames = map[Primitive]string{
	PrimBoolean: "boolean",
	PrimByte:    "byte",
	PrimChar:    "char",
	PrimShort:   "short",
	PrimInt:     "int",
	PrimLong:    "long",
	PrimFloat:   "float",
	PrimDouble:  "double",
	PrimVoid:    "void",
}

func (p Primitive) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return "Unknown"
}

// IsNumeric reports whether values of the primitive take part in arithmetic.
func (p Primitive) IsNumeric() bool {
	switch p {
	case PrimByte, PrimChar, PrimShort, PrimInt, PrimLong, PrimFloat, PrimDouble:
		return true
	}
	return false
}

// LiteralKind distinguishes the literal forms.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitBool
	LitNull
)
