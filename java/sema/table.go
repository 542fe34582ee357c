package sema

import (
	"fmt"

	"github.com/dhamidi/javafront/java/ast"
)

// Key names a property slot.
type Key int

const (
	KeyDecl Key = iota
	KeyType
	KeyNumber
	KeyEnviron
	KeyThePackage
	KeyImportedPackages
)

var keyNames = map[Key]string{
	KeyDecl:             "decl",
	KeyType:             "type",
	KeyNumber:           "number",
	KeyEnviron:          "environ",
	KeyThePackage:       "thePackage",
	KeyImportedPackages: "importedPackages",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

type props struct {
	decl        Decl
	typ         *Type
	number      int
	hasNumber   bool
	environ     *Environ
	thePackage  *PackageDecl
	imported    []*PackageDecl
	hasImported bool
}

// Table records facts computed by passes about tree nodes without
// changing the nodes themselves. Nodes are keyed by identity.
//
// A Table is not safe for concurrent writers.
type Table struct {
	nodes map[ast.Node]*props
	next  int
}

func NewTable() *Table {
	return &Table{nodes: map[ast.Node]*props{}}
}

func (t *Table) lookup(n ast.Node) *props {
	return t.nodes[n]
}

func (t *Table) entry(n ast.Node) *props {
	if ast.IsAbsent(n) {
		panic("sema: property set on absent node")
	}
	p, ok := t.nodes[n]
	if !ok {
		p = &props{}
		t.nodes[n] = p
	}
	return p
}

// Len returns the number of nodes carrying at least one property.
func (t *Table) Len() int {
	return len(t.nodes)
}

func (t *Table) Decl(n ast.Node) Decl {
	if p := t.lookup(n); p != nil {
		return p.decl
	}
	return nil
}

func (t *Table) SetDecl(n ast.Node, d Decl) {
	t.entry(n).decl = d
}

func (t *Table) Type(n ast.Node) *Type {
	if p := t.lookup(n); p != nil {
		return p.typ
	}
	return nil
}

func (t *Table) SetType(n ast.Node, typ *Type) {
	t.entry(n).typ = typ
}

func (t *Table) Number(n ast.Node) (int, bool) {
	if p := t.lookup(n); p != nil && p.hasNumber {
		return p.number, true
	}
	return 0, false
}

// SetNumber records n's ordinal. NextNumber moves past it.
func (t *Table) SetNumber(n ast.Node, number int) {
	p := t.entry(n)
	p.number = number
	p.hasNumber = true
	if number >= t.next {
		t.next = number + 1
	}
}

// NextNumber returns the smallest ordinal greater than every ordinal
// assigned so far.
func (t *Table) NextNumber() int {
	return t.next
}

func (t *Table) Environ(n ast.Node) *Environ {
	if p := t.lookup(n); p != nil {
		return p.environ
	}
	return nil
}

func (t *Table) SetEnviron(n ast.Node, env *Environ) {
	t.entry(n).environ = env
}

func (t *Table) ThePackage(n ast.Node) *PackageDecl {
	if p := t.lookup(n); p != nil {
		return p.thePackage
	}
	return nil
}

func (t *Table) SetThePackage(n ast.Node, pkg *PackageDecl) {
	t.entry(n).thePackage = pkg
}

func (t *Table) ImportedPackages(n ast.Node) []*PackageDecl {
	if p := t.lookup(n); p != nil {
		return p.imported
	}
	return nil
}

func (t *Table) SetImportedPackages(n ast.Node, pkgs []*PackageDecl) {
	p := t.entry(n)
	p.imported = pkgs
	p.hasImported = true
}

// Has reports whether the slot key of n has been set.
func (t *Table) Has(n ast.Node, key Key) bool {
	_, ok := t.Get(n, key)
	return ok
}

// Get returns the value in slot key of n.
func (t *Table) Get(n ast.Node, key Key) (any, bool) {
	p := t.lookup(n)
	if p == nil {
		return nil, false
	}
	switch key {
	case KeyDecl:
		return p.decl, p.decl != nil
	case KeyType:
		return p.typ, p.typ != nil
	case KeyNumber:
		return p.number, p.hasNumber
	case KeyEnviron:
		return p.environ, p.environ != nil
	case KeyThePackage:
		return p.thePackage, p.thePackage != nil
	case KeyImportedPackages:
		return p.imported, p.hasImported
	}
	return nil, false
}

// Set stores value in slot key of n. A value of the wrong type for the
// slot is a programming error and panics.
func (t *Table) Set(n ast.Node, key Key, value any) {
	ok := false
	switch key {
	case KeyDecl:
		var d Decl
		if d, ok = value.(Decl); ok {
			t.SetDecl(n, d)
		}
	case KeyType:
		var typ *Type
		if typ, ok = value.(*Type); ok {
			t.SetType(n, typ)
		}
	case KeyNumber:
		var number int
		if number, ok = value.(int); ok {
			t.SetNumber(n, number)
		}
	case KeyEnviron:
		var env *Environ
		if env, ok = value.(*Environ); ok {
			t.SetEnviron(n, env)
		}
	case KeyThePackage:
		var pkg *PackageDecl
		if pkg, ok = value.(*PackageDecl); ok {
			t.SetThePackage(n, pkg)
		}
	case KeyImportedPackages:
		var pkgs []*PackageDecl
		if pkgs, ok = value.([]*PackageDecl); ok {
			t.SetImportedPackages(n, pkgs)
		}
	}
	if !ok {
		panic(fmt.Sprintf("sema: cannot store %T in %s slot", value, key))
	}
}
