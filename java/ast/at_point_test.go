package ast_test

import (
	"testing"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/parser"
)

const atPointSource = `class A {
    void run() {
        System.out.println(count);
    }
}
`

func TestNameAt(t *testing.T) {
	unit, err := parser.Parse("A.java", []byte(atPointSource))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		line, column int
		want         string
	}{
		{1, 7, "A"},
		{2, 10, "run"},
		{3, 9, "System"},
		{3, 16, "System.out"},
		{3, 20, "System.out.println"},
		{3, 28, "count"},
		{4, 1, ""},
	}
	for _, tt := range tests {
		name := ast.NameAt(unit, tt.line, tt.column)
		got := ""
		if name != nil {
			got = name.String()
		}
		if got != tt.want {
			t.Errorf("NameAt(%d, %d) = %q, want %q", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestPathAt(t *testing.T) {
	unit, err := parser.Parse("A.java", []byte(atPointSource))
	if err != nil {
		t.Fatal(err)
	}

	var kinds []string
	for _, n := range ast.PathAt(unit, 3, 28) {
		kinds = append(kinds, n.Kind().String())
	}
	want := []string{"CompileUnit", "ClassDecl", "MethodDecl", "Block", "ExprStmt", "MethodCall", "Object", "Name"}
	if len(kinds) != len(want) {
		t.Fatalf("path = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("path = %v, want %v", kinds, want)
		}
	}

	if path := ast.PathAt(unit, 10, 1); len(path) != 0 {
		t.Errorf("path past the end = %d nodes", len(path))
	}
}
