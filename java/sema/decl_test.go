package sema

import (
	"testing"

	"github.com/dhamidi/javafront/java/ast"
)

func TestPackageNames(t *testing.T) {
	root := NewRootPackage()
	lang := root.Subpackage("java").Subpackage("lang")

	if lang.FullName() != "java.lang" {
		t.Errorf("FullName() = %q", lang.FullName())
	}
	if again := root.Subpackage("java").Subpackage("lang"); again != lang {
		t.Errorf("Subpackage created a second java.lang")
	}

	object := NewTypeDecl("Object", CategoryClass, lang, nil)
	if object.FullName() != "java.lang.Object" {
		t.Errorf("FullName() = %q", object.FullName())
	}

	unnamed := NewUnnamedPackage()
	hello := NewTypeDecl("Hello", CategoryClass, unnamed, nil)
	if hello.FullName() != "Hello" {
		t.Errorf("type in unnamed package FullName() = %q", hello.FullName())
	}
	if !unnamed.IsUnnamed() || root.IsUnnamed() {
		t.Errorf("IsUnnamed mismatch")
	}
}

func TestLookupMemberInherited(t *testing.T) {
	pkg := NewUnnamedPackage()
	base := NewTypeDecl("Base", CategoryClass, pkg, nil)
	iface := NewTypeDecl("Named", CategoryInterface, pkg, nil)
	derived := NewTypeDecl("Derived", CategoryClass, pkg, nil)
	derived.Super = base
	derived.Interfaces = []*TypeDecl{iface}

	baseField := NewMemberDecl("x", CategoryField, base, nil)
	base.Scope.Add(baseField)
	name := NewMemberDecl("name", CategoryMethod, iface, nil)
	iface.Scope.Add(name)

	if got := derived.LookupMember("x", CategoryField); got != baseField {
		t.Errorf("inherited field not found")
	}
	if got := derived.LookupMember("name", CategoryMethod); got != name {
		t.Errorf("interface method not found")
	}

	own := NewMemberDecl("x", CategoryField, derived, nil)
	derived.Scope.Add(own)
	if got := derived.LookupMember("x", CategoryField); got != own {
		t.Errorf("own field does not hide inherited one")
	}
	if got := derived.LookupMembers("x", CategoryField); len(got) != 2 {
		t.Errorf("LookupMembers found %d, want 2", len(got))
	}
	if !derived.IsSubtypeOf(iface) || base.IsSubtypeOf(derived) {
		t.Errorf("IsSubtypeOf mismatch")
	}
}

func TestLookupMemberCycle(t *testing.T) {
	pkg := NewUnnamedPackage()
	a := NewTypeDecl("A", CategoryClass, pkg, nil)
	b := NewTypeDecl("B", CategoryClass, pkg, nil)
	a.Super = b
	b.Super = a

	if got := a.LookupMember("missing", CategoryAny); got != nil {
		t.Errorf("LookupMember = %v", got)
	}
	if a.IsSubtypeOf(NewTypeDecl("C", CategoryClass, pkg, nil)) {
		t.Errorf("cyclic hierarchy reported unrelated supertype")
	}
}

func TestCapabilities(t *testing.T) {
	pkg := NewRootPackage().Subpackage("p")
	typ := NewTypeDecl("T", CategoryClass, pkg, nil)
	typ.Modifiers = ast.ModPublic
	field := NewMemberDecl("f", CategoryField, typ, nil)
	field.Type = PrimitiveType(ast.PrimInt)
	field.Modifiers = ast.ModStatic

	tests := []struct {
		name          string
		decl          Decl
		hasType       bool
		hasModifiers  bool
		hasContainer  bool
		wantContainer Decl
	}{
		{"package", pkg, false, false, true, pkg.Container},
		{"type", typ, true, true, true, pkg},
		{"field", field, true, true, true, typ},
		{"local", local("v"), false, true, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := TypeOf(tt.decl); ok != tt.hasType {
				t.Errorf("TypeOf ok = %v, want %v", ok, tt.hasType)
			}
			if _, ok := ModifiersOf(tt.decl); ok != tt.hasModifiers {
				t.Errorf("ModifiersOf ok = %v, want %v", ok, tt.hasModifiers)
			}
			container, ok := ContainerOf(tt.decl)
			if ok != tt.hasContainer {
				t.Errorf("ContainerOf ok = %v, want %v", ok, tt.hasContainer)
			}
			if ok && container != tt.wantContainer {
				t.Errorf("ContainerOf = %v, want %v", container, tt.wantContainer)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	lang := NewRootPackage().Subpackage("java").Subpackage("lang")
	str := NewTypeDecl("String", CategoryClass, lang, nil)
	str.Modifiers = ast.ModPublic | ast.ModFinal
	system := NewTypeDecl("System", CategoryClass, lang, nil)

	printMethod := NewMemberDecl("println", CategoryMethod, system, nil)
	printMethod.Modifiers = ast.ModPublic
	printMethod.Type = PrimitiveType(ast.PrimVoid)
	arg := NewLocalDecl("s", CategoryFormal, nil)
	arg.Type = ClassType(str)
	printMethod.Params = []*LocalDecl{arg}

	ctor := NewMemberDecl("String", CategoryConstructor, str, nil)

	args := NewLocalDecl("args", CategoryFormal, nil)
	args.Type = ArrayOf(ClassType(str))

	tests := []struct {
		decl Decl
		want string
	}{
		{nil, "<unresolved>"},
		{lang, "package java.lang"},
		{NewUnnamedPackage(), "unnamed package"},
		{str, "public final class java.lang.String"},
		{printMethod, "method public void java.lang.System.println(java.lang.String)"},
		{ctor, "constructor java.lang.String()"},
		{args, "parameter java.lang.String[] args"},
	}

	for _, tt := range tests {
		if got := Describe(tt.decl); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
	}
}
