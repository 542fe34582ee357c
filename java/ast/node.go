package ast

import "strings"

// Node is implemented by every tree node. Children returns the structural
// children in left-to-right order with absent children omitted; Accept
// dispatches to the visitor method for the node's concrete type.
type Node interface {
	Kind() Kind
	Pos() Position
	Range() Span
	Children() []Node
	Accept(v Visitor, args Args) any
}

// AbsentNode stands for an optional child that is not there.
type AbsentNode struct{}

// Absent is the only AbsentNode. Optional children hold Absent rather
// than nil so that every child slot refers to a node.
var Absent Node = &AbsentNode{}

func IsAbsent(n Node) bool {
	return n == nil || n == Absent
}

func (*AbsentNode) Kind() Kind       { return KindAbsent }
func (*AbsentNode) Pos() Position    { return Position{} }
func (*AbsentNode) Range() Span      { return Span{} }
func (*AbsentNode) Children() []Node { return nil }
func (n *AbsentNode) Accept(v Visitor, args Args) any {
	return v.VisitAbsent(n, args)
}

// orAbsent maps nil to Absent so callers may leave optional fields unset.
func orAbsent(n Node) Node {
	if n == nil {
		return Absent
	}
	return n
}

func children(nodes ...Node) []Node {
	var result []Node
	for _, n := range nodes {
		if !IsAbsent(n) {
			result = append(result, n)
		}
	}
	return result
}

func appendList[T Node](dst []Node, nodes []T) []Node {
	for _, n := range nodes {
		if !IsAbsent(n) {
			dst = append(dst, n)
		}
	}
	return dst
}

// NameNode is a possibly qualified identifier. The name is unqualified
// exactly when Qualifier is Absent.
type NameNode struct {
	Span
	Qualifier Node
	Ident     string
}

func NewName(qualifier Node, ident string) *NameNode {
	return &NameNode{Qualifier: orAbsent(qualifier), Ident: ident}
}

// MakeName builds a NameNode chain from a dotted name such as "java.lang.Object".
func MakeName(dotted string) *NameNode {
	var name *NameNode
	for _, part := range strings.Split(dotted, ".") {
		if name == nil {
			name = NewName(Absent, part)
		} else {
			name = NewName(name, part)
		}
	}
	return name
}

func (n *NameNode) IsQualified() bool {
	return !IsAbsent(n.Qualifier)
}

// QualifierName returns the qualifier as a NameNode, or nil when unqualified.
func (n *NameNode) QualifierName() *NameNode {
	q, _ := n.Qualifier.(*NameNode)
	return q
}

// String renders the dotted form of the name.
func (n *NameNode) String() string {
	if q := n.QualifierName(); q != nil {
		return q.String() + "." + n.Ident
	}
	return n.Ident
}

func (n *NameNode) Kind() Kind       { return KindName }
func (n *NameNode) Children() []Node { return children(n.Qualifier) }
func (n *NameNode) Accept(v Visitor, args Args) any {
	return v.VisitName(n, args)
}

type CompileUnit struct {
	Span
	File    string
	Package Node // *NameNode or Absent
	Imports []Node
	Types   []Node
}

func (n *CompileUnit) Kind() Kind { return KindCompileUnit }
func (n *CompileUnit) Children() []Node {
	result := children(n.Package)
	result = appendList(result, n.Imports)
	return appendList(result, n.Types)
}
func (n *CompileUnit) Accept(v Visitor, args Args) any {
	return v.VisitCompileUnit(n, args)
}

// PackageName returns the package clause name, or nil for the unnamed package.
func (n *CompileUnit) PackageName() *NameNode {
	name, _ := n.Package.(*NameNode)
	return name
}

type ImportNode struct {
	Span
	Name *NameNode
}

func (n *ImportNode) Kind() Kind       { return KindImport }
func (n *ImportNode) Children() []Node { return children(n.Name) }
func (n *ImportNode) Accept(v Visitor, args Args) any {
	return v.VisitImport(n, args)
}

type ImportOnDemandNode struct {
	Span
	Name *NameNode
}

func (n *ImportOnDemandNode) Kind() Kind       { return KindImportOnDemand }
func (n *ImportOnDemandNode) Children() []Node { return children(n.Name) }
func (n *ImportOnDemandNode) Accept(v Visitor, args Args) any {
	return v.VisitImportOnDemand(n, args)
}

type ClassDecl struct {
	Span
	Modifiers  Modifier
	Name       *NameNode
	Super      Node // *TypeNameNode or Absent
	Interfaces []Node
	Members    []Node
}

func (n *ClassDecl) Kind() Kind { return KindClassDecl }
func (n *ClassDecl) Children() []Node {
	result := children(n.Name, n.Super)
	result = appendList(result, n.Interfaces)
	return appendList(result, n.Members)
}
func (n *ClassDecl) Accept(v Visitor, args Args) any {
	return v.VisitClassDecl(n, args)
}

type InterfaceDecl struct {
	Span
	Modifiers Modifier
	Name      *NameNode
	Extends   []Node
	Members   []Node
}

func (n *InterfaceDecl) Kind() Kind { return KindInterfaceDecl }
func (n *InterfaceDecl) Children() []Node {
	result := children(n.Name)
	result = appendList(result, n.Extends)
	return appendList(result, n.Members)
}
func (n *InterfaceDecl) Accept(v Visitor, args Args) any {
	return v.VisitInterfaceDecl(n, args)
}

// TypeDeclName returns the name of a class or interface declaration node.
func TypeDeclName(n Node) *NameNode {
	switch d := n.(type) {
	case *ClassDecl:
		return d.Name
	case *InterfaceDecl:
		return d.Name
	}
	return nil
}

// TypeDeclMembers returns the member list of a class or interface declaration node.
func TypeDeclMembers(n Node) []Node {
	switch d := n.(type) {
	case *ClassDecl:
		return d.Members
	case *InterfaceDecl:
		return d.Members
	}
	return nil
}

type FieldDecl struct {
	Span
	Modifiers Modifier
	Type      Node
	Name      *NameNode
	Init      Node
}

func (n *FieldDecl) Kind() Kind       { return KindFieldDecl }
func (n *FieldDecl) Children() []Node { return children(n.Type, n.Name, n.Init) }
func (n *FieldDecl) Accept(v Visitor, args Args) any {
	return v.VisitFieldDecl(n, args)
}

type MethodDecl struct {
	Span
	Modifiers  Modifier
	ReturnType Node
	Name       *NameNode
	Params     []*ParameterNode
	Throws     []Node
	Body       Node // *Block or Absent
}

func (n *MethodDecl) Kind() Kind { return KindMethodDecl }
func (n *MethodDecl) Children() []Node {
	result := children(n.ReturnType, n.Name)
	result = appendList(result, n.Params)
	result = appendList(result, n.Throws)
	return append(result, children(n.Body)...)
}
func (n *MethodDecl) Accept(v Visitor, args Args) any {
	return v.VisitMethodDecl(n, args)
}

type ConstructorDecl struct {
	Span
	Modifiers Modifier
	Name      *NameNode
	Params    []*ParameterNode
	Throws    []Node
	Body      *Block
}

func (n *ConstructorDecl) Kind() Kind { return KindConstructorDecl }
func (n *ConstructorDecl) Children() []Node {
	result := children(n.Name)
	result = appendList(result, n.Params)
	result = appendList(result, n.Throws)
	if n.Body != nil {
		result = append(result, n.Body)
	}
	return result
}
func (n *ConstructorDecl) Accept(v Visitor, args Args) any {
	return v.VisitConstructorDecl(n, args)
}

type ParameterNode struct {
	Span
	Modifiers Modifier
	Type      Node
	Name      *NameNode
}

func (n *ParameterNode) Kind() Kind       { return KindParameter }
func (n *ParameterNode) Children() []Node { return children(n.Type, n.Name) }
func (n *ParameterNode) Accept(v Visitor, args Args) any {
	return v.VisitParameter(n, args)
}

type PrimitiveTypeNode struct {
	Span
	Type Primitive
}

func (n *PrimitiveTypeNode) Kind() Kind       { return KindPrimitiveType }
func (n *PrimitiveTypeNode) Children() []Node { return nil }
func (n *PrimitiveTypeNode) Accept(v Visitor, args Args) any {
	return v.VisitPrimitiveType(n, args)
}

// TypeNameNode is a reference to a class or interface type.
type TypeNameNode struct {
	Span
	Name     *NameNode
	TypeArgs []Node
}

func NewTypeName(dotted string) *TypeNameNode {
	return &TypeNameNode{Name: MakeName(dotted)}
}

func (n *TypeNameNode) Kind() Kind { return KindTypeName }
func (n *TypeNameNode) Children() []Node {
	return appendList(children(n.Name), n.TypeArgs)
}
func (n *TypeNameNode) Accept(v Visitor, args Args) any {
	return v.VisitTypeName(n, args)
}

type ArrayTypeNode struct {
	Span
	Base Node
}

func (n *ArrayTypeNode) Kind() Kind       { return KindArrayType }
func (n *ArrayTypeNode) Children() []Node { return children(n.Base) }
func (n *ArrayTypeNode) Accept(v Visitor, args Args) any {
	return v.VisitArrayType(n, args)
}

type Block struct {
	Span
	Stmts []Node
}

func (n *Block) Kind() Kind       { return KindBlock }
func (n *Block) Children() []Node { return appendList(nil, n.Stmts) }
func (n *Block) Accept(v Visitor, args Args) any {
	return v.VisitBlock(n, args)
}

type LocalVarDecl struct {
	Span
	Modifiers Modifier
	Type      Node
	Name      *NameNode
	Init      Node
}

func (n *LocalVarDecl) Kind() Kind       { return KindLocalVarDecl }
func (n *LocalVarDecl) Children() []Node { return children(n.Type, n.Name, n.Init) }
func (n *LocalVarDecl) Accept(v Visitor, args Args) any {
	return v.VisitLocalVarDecl(n, args)
}

type ExprStmt struct {
	Span
	Expr Node
}

func (n *ExprStmt) Kind() Kind       { return KindExprStmt }
func (n *ExprStmt) Children() []Node { return children(n.Expr) }
func (n *ExprStmt) Accept(v Visitor, args Args) any {
	return v.VisitExprStmt(n, args)
}

type ReturnStmt struct {
	Span
	Expr Node
}

func (n *ReturnStmt) Kind() Kind       { return KindReturn }
func (n *ReturnStmt) Children() []Node { return children(n.Expr) }
func (n *ReturnStmt) Accept(v Visitor, args Args) any {
	return v.VisitReturn(n, args)
}

type IfStmt struct {
	Span
	Cond Node
	Then Node
	Else Node
}

func (n *IfStmt) Kind() Kind       { return KindIf }
func (n *IfStmt) Children() []Node { return children(n.Cond, n.Then, n.Else) }
func (n *IfStmt) Accept(v Visitor, args Args) any {
	return v.VisitIf(n, args)
}

type WhileStmt struct {
	Span
	Cond Node
	Body Node
}

func (n *WhileStmt) Kind() Kind       { return KindWhile }
func (n *WhileStmt) Children() []Node { return children(n.Cond, n.Body) }
func (n *WhileStmt) Accept(v Visitor, args Args) any {
	return v.VisitWhile(n, args)
}

type ForStmt struct {
	Span
	Init   []Node
	Cond   Node
	Update []Node
	Body   Node
}

func (n *ForStmt) Kind() Kind { return KindFor }
func (n *ForStmt) Children() []Node {
	result := appendList(nil, n.Init)
	result = append(result, children(n.Cond)...)
	result = appendList(result, n.Update)
	return append(result, children(n.Body)...)
}
func (n *ForStmt) Accept(v Visitor, args Args) any {
	return v.VisitFor(n, args)
}

type EmptyStmt struct {
	Span
}

func (n *EmptyStmt) Kind() Kind       { return KindEmptyStmt }
func (n *EmptyStmt) Children() []Node { return nil }
func (n *EmptyStmt) Accept(v Visitor, args Args) any {
	return v.VisitEmptyStmt(n, args)
}

type LiteralNode struct {
	Span
	Lit  LiteralKind
	Text string
}

func (n *LiteralNode) Kind() Kind       { return KindLiteral }
func (n *LiteralNode) Children() []Node { return nil }
func (n *LiteralNode) Accept(v Visitor, args Args) any {
	return v.VisitLiteral(n, args)
}

type ThisNode struct {
	Span
}

func (n *ThisNode) Kind() Kind       { return KindThis }
func (n *ThisNode) Children() []Node { return nil }
func (n *ThisNode) Accept(v Visitor, args Args) any {
	return v.VisitThis(n, args)
}

// ObjectNode is an expression consisting of a name: a variable, or a
// field reached through a qualifier.
type ObjectNode struct {
	Span
	Name *NameNode
}

func (n *ObjectNode) Kind() Kind       { return KindObject }
func (n *ObjectNode) Children() []Node { return children(n.Name) }
func (n *ObjectNode) Accept(v Visitor, args Args) any {
	return v.VisitObject(n, args)
}

// ObjectFieldAccessNode selects a member from the value of an arbitrary
// expression, as in foo().bar or this.x.
type ObjectFieldAccessNode struct {
	Span
	Object Node
	Name   *NameNode
}

func (n *ObjectFieldAccessNode) Kind() Kind       { return KindObjectFieldAccess }
func (n *ObjectFieldAccessNode) Children() []Node { return children(n.Object, n.Name) }
func (n *ObjectFieldAccessNode) Accept(v Visitor, args Args) any {
	return v.VisitObjectFieldAccess(n, args)
}

// MethodCallNode calls Method, which is an ObjectNode or an
// ObjectFieldAccessNode naming the method.
type MethodCallNode struct {
	Span
	Method Node
	Args   []Node
}

func (n *MethodCallNode) Kind() Kind { return KindMethodCall }
func (n *MethodCallNode) Children() []Node {
	return appendList(children(n.Method), n.Args)
}
func (n *MethodCallNode) Accept(v Visitor, args Args) any {
	return v.VisitMethodCall(n, args)
}

// MethodName returns the name node of the called method.
func (n *MethodCallNode) MethodName() *NameNode {
	switch m := n.Method.(type) {
	case *ObjectNode:
		return m.Name
	case *ObjectFieldAccessNode:
		return m.Name
	}
	return nil
}

type AllocateNode struct {
	Span
	Type *TypeNameNode
	Args []Node
}

func (n *AllocateNode) Kind() Kind { return KindAllocate }
func (n *AllocateNode) Children() []Node {
	return appendList(children(n.Type), n.Args)
}
func (n *AllocateNode) Accept(v Visitor, args Args) any {
	return v.VisitAllocate(n, args)
}

type AllocateArrayNode struct {
	Span
	Base      Node
	Dims      []Node
	ExtraDims int
}

func (n *AllocateArrayNode) Kind() Kind { return KindAllocateArray }
func (n *AllocateArrayNode) Children() []Node {
	return appendList(children(n.Base), n.Dims)
}
func (n *AllocateArrayNode) Accept(v Visitor, args Args) any {
	return v.VisitAllocateArray(n, args)
}

type ArrayAccessNode struct {
	Span
	Array Node
	Index Node
}

func (n *ArrayAccessNode) Kind() Kind       { return KindArrayAccess }
func (n *ArrayAccessNode) Children() []Node { return children(n.Array, n.Index) }
func (n *ArrayAccessNode) Accept(v Visitor, args Args) any {
	return v.VisitArrayAccess(n, args)
}

type AssignNode struct {
	Span
	Op  string
	Lhs Node
	Rhs Node
}

func (n *AssignNode) Kind() Kind       { return KindAssign }
func (n *AssignNode) Children() []Node { return children(n.Lhs, n.Rhs) }
func (n *AssignNode) Accept(v Visitor, args Args) any {
	return v.VisitAssign(n, args)
}

type BinaryOpNode struct {
	Span
	Op  string
	Lhs Node
	Rhs Node
}

func (n *BinaryOpNode) Kind() Kind       { return KindBinaryOp }
func (n *BinaryOpNode) Children() []Node { return children(n.Lhs, n.Rhs) }
func (n *BinaryOpNode) Accept(v Visitor, args Args) any {
	return v.VisitBinaryOp(n, args)
}

type UnaryOpNode struct {
	Span
	Op      string
	Postfix bool
	Operand Node
}

func (n *UnaryOpNode) Kind() Kind       { return KindUnaryOp }
func (n *UnaryOpNode) Children() []Node { return children(n.Operand) }
func (n *UnaryOpNode) Accept(v Visitor, args Args) any {
	return v.VisitUnaryOp(n, args)
}

type CastNode struct {
	Span
	Type Node
	Expr Node
}

func (n *CastNode) Kind() Kind       { return KindCast }
func (n *CastNode) Children() []Node { return children(n.Type, n.Expr) }
func (n *CastNode) Accept(v Visitor, args Args) any {
	return v.VisitCast(n, args)
}
