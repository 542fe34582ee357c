package ast

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
)

// sample builds: class A { int x = y; }
func sample() *CompileUnit {
	field := &FieldDecl{
		Type: &PrimitiveTypeNode{Type: PrimInt},
		Name: NewName(Absent, "x"),
		Init: &ObjectNode{Name: NewName(Absent, "y")},
	}
	class := &ClassDecl{Name: NewName(Absent, "A"), Super: Absent, Members: []Node{field}}
	return &CompileUnit{Package: Absent, Types: []Node{class}}
}

type recorder struct {
	DefaultVisitor
	order []Kind
}

func newRecorder(mode Traversal) *recorder {
	r := &recorder{}
	r.DefaultVisitor = DefaultVisitor{
		Mode: mode,
		Default: func(n Node, args Args) any {
			r.order = append(r.order, n.Kind())
			return n.Kind()
		},
	}
	return r
}

func TestWalkSelfFirst(t *testing.T) {
	r := newRecorder(SelfFirst)
	Walk(r, sample(), nil)

	want := []Kind{
		KindCompileUnit, KindClassDecl, KindName, KindFieldDecl,
		KindPrimitiveType, KindName, KindObject, KindName,
	}
	if diff := pretty.Diff(r.order, want); len(diff) > 0 {
		t.Errorf("visit order differs:\n%v", diff)
	}
}

func TestWalkChildrenFirst(t *testing.T) {
	r := newRecorder(ChildrenFirst)
	result := Walk(r, sample(), nil)

	want := []Kind{
		KindName, KindPrimitiveType, KindName, KindName, KindObject,
		KindFieldDecl, KindClassDecl, KindCompileUnit,
	}
	if diff := pretty.Diff(r.order, want); len(diff) > 0 {
		t.Errorf("visit order differs:\n%v", diff)
	}
	if result != KindCompileUnit {
		t.Errorf("result = %v, want %v", result, KindCompileUnit)
	}
}

type childResults struct {
	DefaultVisitor
	seen Args
}

func (c *childResults) VisitFieldDecl(n *FieldDecl, args Args) any {
	c.seen = args
	return nil
}

func TestWalkChildrenFirstPassesChildResults(t *testing.T) {
	c := &childResults{}
	c.DefaultVisitor = DefaultVisitor{
		Mode:    ChildrenFirst,
		Default: func(n Node, args Args) any { return n.Kind().String() },
	}
	Walk(c, sample(), nil)

	want := Args{"PrimitiveType", "Name", "Object"}
	if diff := pretty.Diff(c.seen, want); len(diff) > 0 {
		t.Errorf("child results differ:\n%v", diff)
	}
}

type nameCollector struct {
	DefaultVisitor
	names []string
}

func (c *nameCollector) VisitName(n *NameNode, args Args) any {
	c.names = append(c.names, n.Ident)
	return nil
}

func TestWalkCustomOnlyDescendsOnRequest(t *testing.T) {
	c := &nameCollector{}
	c.DefaultVisitor = DefaultVisitor{
		Mode:    Custom,
		Default: func(n Node, args Args) any { return nil },
	}
	Walk(c, sample(), nil)
	if len(c.names) != 0 {
		t.Errorf("custom visitor without recursion saw names %v", c.names)
	}

	c.Default = func(n Node, args Args) any {
		WalkChildren(c, n, args)
		return nil
	}
	Walk(c, sample(), nil)
	if diff := pretty.Diff(c.names, []string{"A", "x", "y"}); len(diff) > 0 {
		t.Errorf("names differ:\n%v", diff)
	}
}

func TestStrictVisitorPanics(t *testing.T) {
	c := &nameCollector{}
	c.DefaultVisitor = DefaultVisitor{Mode: SelfFirst}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		var unhandled *UnhandledNodeError
		if !errors.As(err, &unhandled) {
			t.Fatalf("recovered %T, want *UnhandledNodeError", r)
		}
		if unhandled.Kind != KindCompileUnit {
			t.Errorf("unhandled kind = %s, want CompileUnit", unhandled.Kind)
		}
	}()
	Walk(c, sample(), nil)
	t.Fatal("Walk returned without panicking")
}

func TestWalkSkipsAbsent(t *testing.T) {
	r := newRecorder(SelfFirst)
	if got := Walk(r, Absent, nil); got != nil {
		t.Errorf("Walk(Absent) = %v", got)
	}
	if got := Walk(r, nil, nil); got != nil {
		t.Errorf("Walk(nil) = %v", got)
	}
	if len(r.order) != 0 {
		t.Errorf("visited %v", r.order)
	}
}

func TestWalkListPositional(t *testing.T) {
	r := newRecorder(Custom)
	results := WalkList(r, []Node{&ThisNode{}, Absent, &EmptyStmt{}}, nil)
	want := []any{KindThis, nil, KindEmptyStmt}
	if diff := pretty.Diff(results, want); len(diff) > 0 {
		t.Errorf("results differ:\n%v", diff)
	}
}

func TestArgsArg(t *testing.T) {
	args := Args{1, "two"}
	if args.Arg(1) != "two" {
		t.Errorf("Arg(1) = %v", args.Arg(1))
	}
	if args.Arg(2) != nil || args.Arg(-1) != nil {
		t.Errorf("out of range Arg returned non-nil")
	}
}
