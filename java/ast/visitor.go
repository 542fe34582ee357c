package ast

import (
	"fmt"
	"sync/atomic"

	"github.com/tliron/commonlog"
)

// Args is the argument list threaded through a traversal. Visitors agree
// among themselves what each position holds.
type Args []any

// Arg returns args[i], or nil when the list is shorter.
func (a Args) Arg(i int) any {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Traversal selects how Walk combines a node's own visit with the visits
// of its children.
type Traversal int

const (
	// ChildrenFirst visits every child, then the node. The node's visit
	// receives the child results as its argument list.
	ChildrenFirst Traversal = iota
	// SelfFirst visits the node, then its children with the same arguments.
	SelfFirst
	// Custom visits only the node. The visit method decides which children
	// to descend into.
	Custom
)

func (t Traversal) String() string {
	switch t {
	case ChildrenFirst:
		return "children-first"
	case SelfFirst:
		return "self-first"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// Visitor has one method per node variant. Adding a variant adds a method
// here, so every visitor must say what it does with it.
type Visitor interface {
	Traversal() Traversal

	VisitAbsent(n *AbsentNode, args Args) any
	VisitCompileUnit(n *CompileUnit, args Args) any
	VisitImport(n *ImportNode, args Args) any
	VisitImportOnDemand(n *ImportOnDemandNode, args Args) any
	VisitClassDecl(n *ClassDecl, args Args) any
	VisitInterfaceDecl(n *InterfaceDecl, args Args) any
	VisitFieldDecl(n *FieldDecl, args Args) any
	VisitMethodDecl(n *MethodDecl, args Args) any
	VisitConstructorDecl(n *ConstructorDecl, args Args) any
	VisitParameter(n *ParameterNode, args Args) any
	VisitPrimitiveType(n *PrimitiveTypeNode, args Args) any
	VisitTypeName(n *TypeNameNode, args Args) any
	VisitArrayType(n *ArrayTypeNode, args Args) any
	VisitName(n *NameNode, args Args) any
	VisitBlock(n *Block, args Args) any
	VisitLocalVarDecl(n *LocalVarDecl, args Args) any
	VisitExprStmt(n *ExprStmt, args Args) any
	VisitReturn(n *ReturnStmt, args Args) any
	VisitIf(n *IfStmt, args Args) any
	VisitWhile(n *WhileStmt, args Args) any
	VisitFor(n *ForStmt, args Args) any
	VisitEmptyStmt(n *EmptyStmt, args Args) any
	VisitLiteral(n *LiteralNode, args Args) any
	VisitThis(n *ThisNode, args Args) any
	VisitObject(n *ObjectNode, args Args) any
	VisitObjectFieldAccess(n *ObjectFieldAccessNode, args Args) any
	VisitMethodCall(n *MethodCallNode, args Args) any
	VisitAllocate(n *AllocateNode, args Args) any
	VisitAllocateArray(n *AllocateArrayNode, args Args) any
	VisitArrayAccess(n *ArrayAccessNode, args Args) any
	VisitAssign(n *AssignNode, args Args) any
	VisitBinaryOp(n *BinaryOpNode, args Args) any
	VisitUnaryOp(n *UnaryOpNode, args Args) any
	VisitCast(n *CastNode, args Args) any
}

// UnhandledNodeError is the panic value raised when a strict visitor meets
// a variant it has no method for.
type UnhandledNodeError struct {
	Kind Kind
	Pos  Position
}

func (e *UnhandledNodeError) Error() string {
	return fmt.Sprintf("%s: no visit method for %s node", e.Pos, e.Kind)
}

var (
	log   = commonlog.GetLogger("javafront.ast")
	trace atomic.Bool
)

// SetTrace turns logging of every node visit on or off.
func SetTrace(on bool) {
	trace.Store(on)
}

// Walk visits n with v according to v's traversal mode and returns the
// result of v's visit of n. Nil and absent nodes are skipped.
func Walk(v Visitor, n Node, args Args) any {
	if IsAbsent(n) {
		return nil
	}
	if trace.Load() {
		log.Debugf("%s visit %s at %s", v.Traversal(), n.Kind(), n.Pos())
	}
	switch v.Traversal() {
	case ChildrenFirst:
		kids := n.Children()
		results := make(Args, len(kids))
		for i, child := range kids {
			results[i] = Walk(v, child, args)
		}
		return n.Accept(v, results)
	case SelfFirst:
		result := n.Accept(v, args)
		for _, child := range n.Children() {
			Walk(v, child, args)
		}
		return result
	default:
		return n.Accept(v, args)
	}
}

// WalkChildren walks every child of n and collects the results.
func WalkChildren(v Visitor, n Node, args Args) []any {
	if IsAbsent(n) {
		return nil
	}
	kids := n.Children()
	results := make([]any, len(kids))
	for i, child := range kids {
		results[i] = Walk(v, child, args)
	}
	return results
}

// WalkList walks each node in order and returns the results positionally.
// Absent entries produce a nil result.
func WalkList[T Node](v Visitor, nodes []T, args Args) []any {
	results := make([]any, len(nodes))
	for i, n := range nodes {
		results[i] = Walk(v, n, args)
	}
	return results
}

// DefaultVisitor implements every Visit method by handing the node to
// Default. A nil Default makes the visitor strict: any variant the
// embedding type does not override panics with *UnhandledNodeError.
//
// A Custom visitor that wants to keep descending from Default must walk
// with the embedding visitor, not the DefaultVisitor, so that its
// overrides keep applying below.
type DefaultVisitor struct {
	Mode    Traversal
	Default func(n Node, args Args) any
}

func (d *DefaultVisitor) Traversal() Traversal { return d.Mode }

func (d *DefaultVisitor) visit(n Node, args Args) any {
	if d.Default == nil {
		panic(&UnhandledNodeError{Kind: n.Kind(), Pos: n.Pos()})
	}
	return d.Default(n, args)
}

func (d *DefaultVisitor) VisitAbsent(n *AbsentNode, args Args) any       { return nil }
func (d *DefaultVisitor) VisitCompileUnit(n *CompileUnit, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitImport(n *ImportNode, args Args) any       { return d.visit(n, args) }
func (d *DefaultVisitor) VisitImportOnDemand(n *ImportOnDemandNode, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitClassDecl(n *ClassDecl, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitInterfaceDecl(n *InterfaceDecl, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitFieldDecl(n *FieldDecl, args Args) any   { return d.visit(n, args) }
func (d *DefaultVisitor) VisitMethodDecl(n *MethodDecl, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitConstructorDecl(n *ConstructorDecl, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitParameter(n *ParameterNode, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitPrimitiveType(n *PrimitiveTypeNode, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitTypeName(n *TypeNameNode, args Args) any   { return d.visit(n, args) }
func (d *DefaultVisitor) VisitArrayType(n *ArrayTypeNode, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitName(n *NameNode, args Args) any           { return d.visit(n, args) }
func (d *DefaultVisitor) VisitBlock(n *Block, args Args) any             { return d.visit(n, args) }
func (d *DefaultVisitor) VisitLocalVarDecl(n *LocalVarDecl, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitExprStmt(n *ExprStmt, args Args) any     { return d.visit(n, args) }
func (d *DefaultVisitor) VisitReturn(n *ReturnStmt, args Args) any     { return d.visit(n, args) }
func (d *DefaultVisitor) VisitIf(n *IfStmt, args Args) any             { return d.visit(n, args) }
func (d *DefaultVisitor) VisitWhile(n *WhileStmt, args Args) any       { return d.visit(n, args) }
func (d *DefaultVisitor) VisitFor(n *ForStmt, args Args) any           { return d.visit(n, args) }
func (d *DefaultVisitor) VisitEmptyStmt(n *EmptyStmt, args Args) any   { return d.visit(n, args) }
func (d *DefaultVisitor) VisitLiteral(n *LiteralNode, args Args) any   { return d.visit(n, args) }
func (d *DefaultVisitor) VisitThis(n *ThisNode, args Args) any         { return d.visit(n, args) }
func (d *DefaultVisitor) VisitObject(n *ObjectNode, args Args) any     { return d.visit(n, args) }
func (d *DefaultVisitor) VisitObjectFieldAccess(n *ObjectFieldAccessNode, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitMethodCall(n *MethodCallNode, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitAllocate(n *AllocateNode, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitAllocateArray(n *AllocateArrayNode, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitArrayAccess(n *ArrayAccessNode, args Args) any {
	return d.visit(n, args)
}
func (d *DefaultVisitor) VisitAssign(n *AssignNode, args Args) any     { return d.visit(n, args) }
func (d *DefaultVisitor) VisitBinaryOp(n *BinaryOpNode, args Args) any { return d.visit(n, args) }
func (d *DefaultVisitor) VisitUnaryOp(n *UnaryOpNode, args Args) any   { return d.visit(n, args) }
func (d *DefaultVisitor) VisitCast(n *CastNode, args Args) any         { return d.visit(n, args) }

var _ Visitor = (*DefaultVisitor)(nil)
