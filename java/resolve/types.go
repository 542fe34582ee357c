package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// resolveTypes resolves the supertypes and member signatures of every type
// declared in u. Bodies are left for completion.
func (c *Context) resolveTypes(u *unit) {
	env := c.Props.Environ(u.tree)
	object := c.ObjectType()

	for _, t := range u.types {
		switch n := t.Source.(type) {
		case *ast.ClassDecl:
			if super := c.resolveType(u, n.Super, env); super != nil && super.Kind == sema.TypeClass {
				t.Super = super.Decl
			} else if ast.IsAbsent(n.Super) && object != nil && t != object {
				t.Super = object
			}
			t.Interfaces = c.resolveTypeList(u, n.Interfaces, env)
		case *ast.InterfaceDecl:
			t.Interfaces = c.resolveTypeList(u, n.Extends, env)
		}

		for _, d := range t.Scope.Decls() {
			m, ok := d.(*sema.MemberDecl)
			if !ok {
				continue
			}
			if m.TypeNode != nil {
				m.Type = c.resolveType(u, m.TypeNode, env)
			}
			for _, p := range m.Params {
				p.Type = c.resolveType(u, p.TypeNode, env)
			}
			switch src := m.Source.(type) {
			case *ast.MethodDecl:
				c.resolveTypeList(u, src.Throws, env)
			case *ast.ConstructorDecl:
				c.resolveTypeList(u, src.Throws, env)
			}
		}
	}

	if len(u.errs) > 0 {
		c.setStage(u, StageFailed)
		return
	}
	c.setStage(u, StageTypeResolved)
}

func (c *Context) resolveTypeList(u *unit, nodes []ast.Node, env *sema.Environ) []*sema.TypeDecl {
	var decls []*sema.TypeDecl
	for _, n := range nodes {
		if t := c.resolveType(u, n, env); t != nil && t.Kind == sema.TypeClass {
			decls = append(decls, t.Decl)
		}
	}
	return decls
}

// resolveType resolves a type node, binding the names inside it and
// recording the resulting type on the node. It returns nil for absent
// nodes and for types that do not resolve.
func (c *Context) resolveType(u *unit, n ast.Node, env *sema.Environ) *sema.Type {
	var t *sema.Type
	switch n := n.(type) {
	case *ast.PrimitiveTypeNode:
		t = sema.PrimitiveType(n.Type)
	case *ast.ArrayTypeNode:
		elem := c.resolveType(u, n.Base, env)
		if elem == nil {
			return nil
		}
		t = sema.ArrayOf(elem)
	case *ast.TypeNameNode:
		for _, arg := range n.TypeArgs {
			c.resolveType(u, arg, env)
		}
		d, ok := ResolveName(c.Props, n.Name, env, sema.CategoryType).(*sema.TypeDecl)
		if !ok {
			c.unresolved(u, n.Name, sema.CategoryType)
			return nil
		}
		t = sema.ClassType(d)
	default:
		return nil
	}
	c.Props.SetType(n, t)
	return t
}
