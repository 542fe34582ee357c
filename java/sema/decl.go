package sema

import (
	"github.com/dhamidi/javafront/java/ast"
)

// Decl is a declaration a name can resolve to. The concrete types are
// *PackageDecl, *TypeDecl, *MemberDecl and *LocalDecl.
type Decl interface {
	Name() string
	Category() Category
	decl()
}

type declBase struct {
	name     string
	category Category
}

func (d *declBase) Name() string       { return d.name }
func (d *declBase) Category() Category { return d.category }
func (d *declBase) decl()              {}

type PackageDecl struct {
	declBase
	// Container is the enclosing package; nil for the root.
	Container *PackageDecl
	// Scope binds the subpackages and types of the package.
	Scope   *Environ
	unnamed bool
}

// NewRootPackage returns the nameless package every top-level package
// hangs off.
func NewRootPackage() *PackageDecl {
	return &PackageDecl{
		declBase: declBase{category: CategoryPackage},
		Scope:    NewEnviron(nil),
	}
}

// NewUnnamedPackage returns the package of compilation units that have
// no package clause.
func NewUnnamedPackage() *PackageDecl {
	p := NewRootPackage()
	p.unnamed = true
	return p
}

// IsRoot reports whether p has no enclosing package. Both the root and
// the unnamed package are roots.
func (p *PackageDecl) IsRoot() bool {
	return p.Container == nil
}

func (p *PackageDecl) IsUnnamed() bool {
	return p.unnamed
}

func (p *PackageDecl) FullName() string {
	if p.Container == nil || p.Container.IsRoot() {
		return p.name
	}
	return p.Container.FullName() + "." + p.name
}

// Subpackage returns the subpackage called name, creating and binding it
// in p's scope when it does not exist yet.
func (p *PackageDecl) Subpackage(name string) *PackageDecl {
	if d, ok := p.Scope.LookupLocal(name, CategoryPackage).(*PackageDecl); ok {
		return d
	}
	sub := &PackageDecl{
		declBase:  declBase{name: name, category: CategoryPackage},
		Container: p,
		Scope:     NewEnviron(nil),
	}
	p.Scope.Add(sub)
	return sub
}

// Types returns the types declared directly in p in declaration order.
func (p *PackageDecl) Types() []*TypeDecl {
	var types []*TypeDecl
	for _, d := range p.Scope.Decls() {
		if t, ok := d.(*TypeDecl); ok {
			types = append(types, t)
		}
	}
	return types
}

type TypeDecl struct {
	declBase
	Package   *PackageDecl
	Modifiers ast.Modifier
	// Source is the *ast.ClassDecl or *ast.InterfaceDecl that declared the type.
	Source ast.Node
	// Scope binds the members declared by the type itself.
	Scope      *Environ
	Super      *TypeDecl
	Interfaces []*TypeDecl
}

func NewTypeDecl(name string, category Category, pkg *PackageDecl, source ast.Node) *TypeDecl {
	return &TypeDecl{
		declBase: declBase{name: name, category: category},
		Package:  pkg,
		Source:   source,
		Scope:    NewEnviron(nil),
	}
}

func (t *TypeDecl) IsInterface() bool {
	return t.category == CategoryInterface
}

func (t *TypeDecl) FullName() string {
	if t.Package == nil || t.Package.IsRoot() {
		return t.name
	}
	return t.Package.FullName() + "." + t.name
}

// Supertypes returns the direct superclass (if any) followed by the
// direct superinterfaces.
func (t *TypeDecl) Supertypes() []*TypeDecl {
	var result []*TypeDecl
	if t.Super != nil {
		result = append(result, t.Super)
	}
	return append(result, t.Interfaces...)
}

// LookupMember finds a member declared by t or inherited from one of its
// supertypes. Members of t shadow inherited ones; superclasses are
// searched before superinterfaces. Cyclic hierarchies terminate.
func (t *TypeDecl) LookupMember(name string, cat Category) Decl {
	if all := t.lookupMembers(name, cat, true); len(all) > 0 {
		return all[0]
	}
	return nil
}

// LookupMembers returns every member called name visible in t, nearest
// declarations first. Overloaded methods appear once per declaration.
func (t *TypeDecl) LookupMembers(name string, cat Category) []Decl {
	return t.lookupMembers(name, cat, false)
}

func (t *TypeDecl) lookupMembers(name string, cat Category, first bool) []Decl {
	var result []Decl
	visited := map[*TypeDecl]bool{}
	queue := []*TypeDecl{t}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		result = append(result, current.Scope.LookupAllLocal(name, cat)...)
		if first && len(result) > 0 {
			return result
		}
		queue = append(queue, current.Supertypes()...)
	}
	return result
}

// IsSubtypeOf reports whether t is other or inherits from it.
func (t *TypeDecl) IsSubtypeOf(other *TypeDecl) bool {
	visited := map[*TypeDecl]bool{}
	var walk func(*TypeDecl) bool
	walk = func(d *TypeDecl) bool {
		if d == nil || visited[d] {
			return false
		}
		if d == other {
			return true
		}
		visited[d] = true
		for _, super := range d.Supertypes() {
			if walk(super) {
				return true
			}
		}
		return false
	}
	return walk(t)
}

// MemberDecl is a field, method or constructor.
type MemberDecl struct {
	declBase
	Container *TypeDecl
	Source    ast.Node
	// TypeNode is the declared field type or method return type; nil for
	// constructors.
	TypeNode  ast.Node
	Type      *Type
	Modifiers ast.Modifier
	Params    []*LocalDecl
}

func NewMemberDecl(name string, category Category, container *TypeDecl, source ast.Node) *MemberDecl {
	return &MemberDecl{
		declBase:  declBase{name: name, category: category},
		Container: container,
		Source:    source,
	}
}

func (m *MemberDecl) IsStatic() bool {
	return m.Modifiers.Has(ast.ModStatic)
}

// LocalDecl is a local variable or a formal parameter.
type LocalDecl struct {
	declBase
	Source    ast.Node
	TypeNode  ast.Node
	Type      *Type
	Modifiers ast.Modifier
}

func NewLocalDecl(name string, category Category, source ast.Node) *LocalDecl {
	return &LocalDecl{
		declBase: declBase{name: name, category: category},
		Source:   source,
	}
}

// TypeOf returns the declared type of a member or local.
func TypeOf(d Decl) (*Type, bool) {
	switch d := d.(type) {
	case *MemberDecl:
		return d.Type, d.Type != nil
	case *LocalDecl:
		return d.Type, d.Type != nil
	case *TypeDecl:
		return ClassType(d), true
	}
	return nil, false
}

// ModifiersOf returns the modifiers of declarations that carry them.
func ModifiersOf(d Decl) (ast.Modifier, bool) {
	switch d := d.(type) {
	case *TypeDecl:
		return d.Modifiers, true
	case *MemberDecl:
		return d.Modifiers, true
	case *LocalDecl:
		return d.Modifiers, true
	}
	return 0, false
}

// ContainerOf returns the declaration that encloses d.
func ContainerOf(d Decl) (Decl, bool) {
	switch d := d.(type) {
	case *MemberDecl:
		return d.Container, d.Container != nil
	case *TypeDecl:
		return d.Package, d.Package != nil
	case *PackageDecl:
		if d.Container == nil {
			return nil, false
		}
		return d.Container, true
	}
	return nil, false
}

// SourceOf returns the tree node that introduced d, if any.
func SourceOf(d Decl) ast.Node {
	switch d := d.(type) {
	case *TypeDecl:
		return d.Source
	case *MemberDecl:
		return d.Source
	case *LocalDecl:
		return d.Source
	}
	return nil
}
