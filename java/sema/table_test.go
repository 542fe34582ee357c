package sema

import (
	"strings"
	"testing"

	"github.com/dhamidi/javafront/java/ast"
)

func TestTableTypedSlots(t *testing.T) {
	table := NewTable()
	name := ast.MakeName("x")
	d := local("x")

	if table.Has(name, KeyDecl) {
		t.Fatalf("fresh table has decl")
	}
	table.SetDecl(name, d)
	table.SetNumber(name, 7)

	if table.Decl(name) != d {
		t.Errorf("Decl() lost the declaration")
	}
	if n, ok := table.Number(name); !ok || n != 7 {
		t.Errorf("Number() = %d, %v", n, ok)
	}
	if table.NextNumber() != 8 {
		t.Errorf("NextNumber() = %d, want 8", table.NextNumber())
	}
	if table.Has(name, KeyType) {
		t.Errorf("type slot reported set")
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestTableGenericAPI(t *testing.T) {
	table := NewTable()
	unit := &ast.CompileUnit{Package: ast.Absent}
	pkg := NewUnnamedPackage()
	env := NewEnviron(nil)

	table.Set(unit, KeyThePackage, pkg)
	table.Set(unit, KeyEnviron, env)
	table.Set(unit, KeyImportedPackages, []*PackageDecl{})
	table.Set(unit, KeyNumber, 0)

	tests := []struct {
		key  Key
		want any
	}{
		{KeyThePackage, pkg},
		{KeyEnviron, env},
		{KeyNumber, 0},
	}
	for _, tt := range tests {
		got, ok := table.Get(unit, tt.key)
		if !ok || got != tt.want {
			t.Errorf("Get(%s) = %v, %v", tt.key, got, ok)
		}
	}
	if !table.Has(unit, KeyImportedPackages) {
		t.Errorf("empty imported package list not recorded")
	}
	if table.Has(unit, KeyDecl) {
		t.Errorf("decl slot reported set")
	}
}

func TestTableSetWrongTypePanics(t *testing.T) {
	table := NewTable()
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "decl slot") {
			t.Errorf("recovered %v", r)
		}
	}()
	table.Set(ast.MakeName("x"), KeyDecl, "not a decl")
	t.Fatal("Set did not panic")
}

func TestTableRejectsAbsent(t *testing.T) {
	table := NewTable()
	defer func() {
		if recover() == nil {
			t.Errorf("SetDecl on Absent did not panic")
		}
	}()
	table.SetDecl(ast.Absent, local("x"))
}
