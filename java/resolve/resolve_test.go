package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kr/pretty"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

func newContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	c, err := NewContext(opts...)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return c
}

func load(t *testing.T, c *Context, path, src string) *ast.CompileUnit {
	t.Helper()
	tree, err := c.LoadSource(path, []byte(src))
	if err != nil {
		t.Fatalf("LoadSource(%s): %v", path, err)
	}
	return tree
}

// findName returns the first name node spelled dotted in tree.
func findName(tree ast.Node, dotted string) *ast.NameNode {
	var found *ast.NameNode
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if found != nil {
			return
		}
		if name, ok := n.(*ast.NameNode); ok && name.String() == dotted {
			found = name
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(tree)
	return found
}

func TestCoreLibraryResolves(t *testing.T) {
	c := newContext(t)
	for _, name := range []string{"java.lang.Object", "java.lang.String", "java.io.PrintStream", "java.util.ArrayList"} {
		if c.LookupType(name) == nil {
			t.Errorf("LookupType(%s) = nil", name)
		}
	}
	if c.ObjectType().Super != nil {
		t.Errorf("Object has a superclass")
	}
	if c.StringType().Super != c.ObjectType() {
		t.Errorf("String does not extend Object")
	}
	if got := len(c.Resolved()); got != 0 {
		t.Errorf("library units listed as resolved: %d", got)
	}
}

func TestUnnamedPackageUsesImplicitImports(t *testing.T) {
	c := newContext(t)
	tree := load(t, c, "Hello.java", `
class Hello {
    public static void main(String[] args) {
        String greeting = "hello";
        System.out.println(greeting);
    }
}
`)
	resolved, err := c.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved) != 1 || resolved[0] != tree {
		t.Fatalf("resolved = %v", resolved)
	}
	if c.Props.ThePackage(tree) != c.UnnamedPackage() {
		t.Errorf("thePackage is not the unnamed package")
	}

	str, ok := c.Props.Decl(findName(tree, "String")).(*sema.TypeDecl)
	if !ok || str != c.StringType() {
		t.Errorf("String bound to %v", c.Props.Decl(findName(tree, "String")))
	}

	call := findName(tree, "System.out.println")
	method, ok := c.Props.Decl(call).(*sema.MemberDecl)
	if !ok {
		t.Fatalf("println bound to %v", c.Props.Decl(call))
	}
	if got := sema.Describe(method); got != "method public native void java.io.PrintStream.println(java.lang.String)" {
		t.Errorf("println resolved to %s", got)
	}
	system := call.QualifierName().QualifierName()
	if c.Props.Decl(system) != c.LookupType("java.lang.System") {
		t.Errorf("System bound to %v", c.Props.Decl(system))
	}

	if stage, _ := c.Stage(tree); stage != StageFullyResolved {
		t.Errorf("stage = %s", stage)
	}
}

func TestFailureIsolation(t *testing.T) {
	c := newContext(t)
	good := load(t, c, "Good.java", "class Good { int x; }")
	bad := load(t, c, "Bad.java", "class Bad { Missing m; }")

	resolved, err := c.Resolve()
	if err == nil {
		t.Fatal("Resolve reported no error")
	}
	if len(resolved) != 1 || resolved[0] != good {
		t.Errorf("resolved = %d units, want only Good", len(resolved))
	}
	if stage, _ := c.Stage(bad); stage != StageFailed {
		t.Errorf("Bad stage = %s", stage)
	}

	var unresolved *UnresolvedNameError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error %v is not an UnresolvedNameError", err)
	}
	want := &UnresolvedNameError{
		File:     "Bad.java",
		Name:     "Missing",
		Category: sema.CategoryType,
		Pos:      ast.Position{File: "Bad.java", Offset: 12, Line: 1, Column: 13},
	}
	if diff := pretty.Diff(unresolved, want); len(diff) > 0 {
		t.Errorf("error differs:\n%v", diff)
	}

	diags := c.Diagnostics()
	if len(diags) != 1 || diags[0].File != "Bad.java" {
		t.Errorf("Diagnostics() = %# v", pretty.Formatter(diags))
	}
}

func TestForwardAndMutualReferences(t *testing.T) {
	c := newContext(t)
	load(t, c, "a/A.java", `
package p;

import q.C;

public class A extends B {
    C peer;

    int useInherited() {
        return inherited + peer.back.inherited;
    }
}
`)
	load(t, c, "b/B.java", `
package p;

public class B {
    int inherited;
}
`)
	load(t, c, "c/C.java", `
package q;

import p.A;

public class C {
    public A back;
}
`)
	resolved, err := c.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved) != 3 {
		t.Fatalf("resolved %d units, want 3", len(resolved))
	}

	// B declares A's superclass, so it completes first.
	var files []string
	for _, tree := range resolved {
		files = append(files, tree.File)
	}
	want := []string{"b/B.java", "a/A.java", "c/C.java"}
	if diff := pretty.Diff(files, want); len(diff) > 0 {
		t.Errorf("completion order differs:\n%v", diff)
	}

	a := c.LookupType("p.A")
	if a.Super != c.LookupType("p.B") {
		t.Errorf("A.Super = %v", a.Super)
	}
}

func TestLocalsShadowFields(t *testing.T) {
	c := newContext(t)
	tree := load(t, c, "S.java", `
class S {
    int x;

    void f(int y) {
        x = y;
        {
            String x = "inner";
            x.length();
        }
    }
}
`)
	if _, err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var objects []*ast.ObjectNode
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if obj, ok := n.(*ast.ObjectNode); ok {
			objects = append(objects, obj)
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(tree)

	tests := []struct {
		name string
		want string
	}{
		{"x", "field int S.x"},
		{"y", "parameter int y"},
		{"x.length", "method public native int java.lang.String.length()"},
	}
	if len(objects) != len(tests) {
		t.Fatalf("found %d object nodes", len(objects))
	}
	for i, tt := range tests {
		obj := objects[i]
		if obj.Name.String() != tt.name {
			t.Fatalf("object %d is %s", i, obj.Name)
		}
		if got := sema.Describe(c.Props.Decl(obj.Name)); got != tt.want {
			t.Errorf("%s bound to %q, want %q", tt.name, got, tt.want)
		}
	}
	inner := objects[2].Name.QualifierName()
	if got := sema.Describe(c.Props.Decl(inner)); got != "local java.lang.String x" {
		t.Errorf("qualifier bound to %q", got)
	}
}

func TestExpressionTypes(t *testing.T) {
	c := newContext(t)
	tree := load(t, c, "T.java", `
class T {
    int[] xs;

    Object f(long n) {
        return n + 1;
    }

    void g() {
        String s = "a" + 1;
        int len = xs.length;
        double d = 1.5 * len;
        boolean b = len < 3 && !false;
        Object o = (Object) s;
        int[][] grid = new int[3][];
        StringBuilder sb = new StringBuilder("x");
    }
}
`)
	if _, err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	block := tree.Types[0].(*ast.ClassDecl).Members[2].(*ast.MethodDecl).Body.(*ast.Block)
	want := []string{
		"java.lang.String",
		"int",
		"double",
		"boolean",
		"java.lang.Object",
		"int[][]",
		"java.lang.StringBuilder",
	}
	for i, stmt := range block.Stmts {
		decl := stmt.(*ast.LocalVarDecl)
		if got := c.Props.Type(decl.Init).String(); got != want[i] {
			t.Errorf("%s initializer has type %s, want %s", decl.Name.Ident, got, want[i])
		}
	}

	ret := tree.Types[0].(*ast.ClassDecl).Members[1].(*ast.MethodDecl).Body.(*ast.Block).Stmts[0].(*ast.ReturnStmt)
	if got := c.Props.Type(ret.Expr).String(); got != "long" {
		t.Errorf("n + 1 has type %s", got)
	}

	alloc := block.Stmts[6].(*ast.LocalVarDecl).Init
	if got := sema.Describe(c.Props.Decl(alloc)); got != "constructor public java.lang.StringBuilder(java.lang.String)" {
		t.Errorf("constructor = %s", got)
	}
}

func TestOverloadSelection(t *testing.T) {
	c := newContext(t)
	tree := load(t, c, "P.java", `
class P {
    void run(StringBuilder sb, char ch) {
        System.out.println(sb);
        System.out.println(ch);
        System.out.println(42);
        System.out.println();
    }
}
`)
	if _, err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	body := tree.Types[0].(*ast.ClassDecl).Members[0].(*ast.MethodDecl).Body.(*ast.Block)
	want := []string{"java.lang.Object", "char", "int", ""}
	for i, stmt := range body.Stmts {
		call := stmt.(*ast.ExprStmt).Expr.(*ast.MethodCallNode)
		m := c.Props.Decl(call.MethodName()).(*sema.MemberDecl)
		got := ""
		if len(m.Params) > 0 {
			got = m.Params[0].Type.String()
		}
		if got != want[i] {
			t.Errorf("call %d chose println(%s), want println(%s)", i, got, want[i])
		}
	}
}

func TestMemberOfUntypedReceiver(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		member string
		cat    sema.Category
	}{
		{"field", "class A { void m() { int x = 0; int y = x[0].length; } }", "length", sema.CategoryField},
		{"method", "class B { void m() { int x = 0; x[0].foo(); } }", "foo", sema.CategoryMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContext(t)
			tree := load(t, c, tt.name+".java", tt.src)

			resolved, err := c.Resolve()
			if len(resolved) != 0 {
				t.Errorf("resolved %d units", len(resolved))
			}
			if stage, _ := c.Stage(tree); stage != StageFailed {
				t.Errorf("stage = %s", stage)
			}
			var unresolved *UnresolvedNameError
			if !errors.As(err, &unresolved) {
				t.Fatalf("error %v is not an UnresolvedNameError", err)
			}
			if unresolved.Name != tt.member || unresolved.Category != tt.cat {
				t.Errorf("unresolved %s %s, want %s %s", unresolved.Category, unresolved.Name, tt.cat, tt.member)
			}
			if diags := c.Diagnostics(); len(diags) != 1 {
				t.Errorf("Diagnostics() = %# v", pretty.Formatter(diags))
			}
		})
	}
}

func TestSubpackagesNeedQualifiedNames(t *testing.T) {
	c := newContext(t)
	load(t, c, "a/b/B.java", "package a.b;\n\npublic class B { }")
	tree := load(t, c, "a/A.java", "package a;\n\nclass A { }")
	if _, err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if d := c.FindDecl(tree, "b"); d != nil {
		t.Errorf("FindDecl(b) = %s", sema.Describe(d))
	}
	if c.FindDecl(tree, "a.b.B") != c.LookupType("a.b.B") {
		t.Errorf("a.b.B not resolved")
	}
	if c.FindDecl(tree, "A") != c.LookupType("a.A") {
		t.Errorf("own package type not visible")
	}
}

func TestImports(t *testing.T) {
	c := newContext(t)
	tree := load(t, c, "I.java", `
import java.util.*;
import java.io.PrintStream;

class I {
    List items = new ArrayList();
    PrintStream out = System.out;
}
`)
	if _, err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	var imported []string
	for _, p := range c.Props.ImportedPackages(tree) {
		imported = append(imported, p.FullName())
	}
	if diff := pretty.Diff(imported, []string{"java.lang", "java.util"}); len(diff) > 0 {
		t.Errorf("imported packages differ:\n%v", diff)
	}
	if c.FindDecl(tree, "List") != c.LookupType("java.util.List") {
		t.Errorf("List not visible through import on demand")
	}
	if c.FindDecl(tree, "java.util.Map") != c.LookupType("java.util.Map") {
		t.Errorf("qualified name not resolved")
	}
	if d := c.FindDecl(tree, "HashSet"); d != nil {
		t.Errorf("FindDecl(HashSet) = %v", d)
	}
	if c.Props.Decl(findName(tree, "java.util")) != c.LookupPackage("java.util") {
		t.Errorf("import name segment not bound to its package")
	}
}

func TestDuplicateDeclarations(t *testing.T) {
	c := newContext(t)
	first := load(t, c, "One.java", "class Twice { }")
	second := load(t, c, "Two.java", "class Twice { }")
	fields := load(t, c, "F.java", "class F { int a; int a; }")

	resolved, err := c.Resolve()
	var dup *DuplicateDeclError
	if !errors.As(err, &dup) {
		t.Fatalf("error %v has no DuplicateDeclError", err)
	}
	if len(resolved) != 1 || resolved[0] != first {
		t.Errorf("resolved %d units", len(resolved))
	}
	for _, tree := range []*ast.CompileUnit{second, fields} {
		if stage, _ := c.Stage(tree); stage != StageFailed {
			t.Errorf("%s stage = %s", tree.File, stage)
		}
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Once.java")
	if err := os.WriteFile(path, []byte("class Once { }"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newContext(t)
	first, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := c.Load(filepath.Join(dir, ".", "Once.java"))
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Errorf("second Load parsed the file again")
	}
	resolved, err := c.Resolve()
	if err != nil || len(resolved) != 1 {
		t.Errorf("Resolve = %d units, %v", len(resolved), err)
	}
}

func TestLoadAndLoadSourceShareUnits(t *testing.T) {
	dir := t.TempDir()
	src := []byte("class Dup { }")
	if err := os.WriteFile(filepath.Join(dir, "Dup.java"), src, 0o644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	c := newContext(t)
	first, err := c.Load("Dup.java")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, path := range []string{"Dup.java", "./Dup.java", filepath.Join(dir, "Dup.java")} {
		second, err := c.LoadSource(path, src)
		if err != nil {
			t.Fatalf("LoadSource(%s): %v", path, err)
		}
		if second != first {
			t.Errorf("LoadSource(%s) parsed the file again", path)
		}
	}
	resolved, err := c.Resolve()
	if err != nil || len(resolved) != 1 {
		t.Errorf("Resolve = %d units, %v", len(resolved), err)
	}
}

func TestLoadErrors(t *testing.T) {
	c := newContext(t)
	_, err := c.Load(filepath.Join(t.TempDir(), "Missing.java"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v", err)
	}

	if _, err := c.LoadSource("Broken.java", []byte("class {")); !errors.As(err, &loadErr) {
		t.Errorf("LoadSource(broken) = %v", err)
	}
	if got := len(c.Diagnostics()); got < 2 {
		t.Errorf("Diagnostics() has %d entries", got)
	}

	good := load(t, c, "Fine.java", "class Fine { }")
	if resolved, _ := c.Resolve(); len(resolved) != 1 || resolved[0] != good {
		t.Errorf("load errors blocked other units")
	}
}

func TestIncrementalResolve(t *testing.T) {
	c := newContext(t)
	first := load(t, c, "First.java", "class First { }")
	if _, err := c.Resolve(); err != nil {
		t.Fatal(err)
	}
	second := load(t, c, "Second.java", "class Second extends First { First f; }")
	resolved, err := c.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 2 || resolved[0] != first || resolved[1] != second {
		t.Errorf("resolved = %v", resolved)
	}
}

func TestNumberMovesUnitsForward(t *testing.T) {
	c := newContext(t)
	tree := load(t, c, "N.java", "class N { int x; }")
	if _, err := c.Resolve(); err != nil {
		t.Fatal(err)
	}
	// CompileUnit, ClassDecl, Name, FieldDecl, PrimitiveType, Name
	if got := c.Number(); got != 6 {
		t.Errorf("Number() = %d, want 6", got)
	}
	if stage, _ := c.Stage(tree); stage != StageNumbered {
		t.Errorf("stage = %s", stage)
	}
	if got := c.Number(); got != 0 {
		t.Errorf("second Number() = %d", got)
	}
}

func TestWithoutCoreLibrary(t *testing.T) {
	c := newContext(t, WithoutCoreLibrary())
	if c.ObjectType() != nil {
		t.Fatal("core library loaded")
	}
	tree := load(t, c, "Bare.java", "class Bare { String s; }")
	if _, err := c.Resolve(); err == nil {
		t.Errorf("String resolved without a core library")
	}
	if stage, _ := c.Stage(tree); stage != StageFailed {
		t.Errorf("stage = %s", stage)
	}
}
