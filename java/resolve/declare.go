package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// declarer enters the package, types and members of one unit into the
// package tree. It is strict: reaching a node it has no method for is a
// bug in the pass.
type declarer struct {
	ast.DefaultVisitor
	c    *Context
	u    *unit
	pkg  *sema.PackageDecl
	self *sema.TypeDecl
}

func (c *Context) declare(u *unit) {
	u.declared = true
	d := &declarer{DefaultVisitor: ast.DefaultVisitor{Mode: ast.Custom}, c: c, u: u}
	ast.Walk(d, u.tree, nil)
	if len(u.errs) > 0 {
		c.setStage(u, StageFailed)
	}
}

func (d *declarer) VisitCompileUnit(n *ast.CompileUnit, args ast.Args) any {
	d.pkg = d.c.unnamed
	if name := n.PackageName(); name != nil {
		d.pkg = d.c.declarePackage(name)
	}
	d.c.Props.SetThePackage(n, d.pkg)
	ast.WalkList(d, n.Types, args)
	return nil
}

// declarePackage creates the packages named by name and binds each segment.
func (c *Context) declarePackage(name *ast.NameNode) *sema.PackageDecl {
	parent := c.root
	if q := name.QualifierName(); q != nil {
		parent = c.declarePackage(q)
	}
	pkg := parent.Subpackage(name.Ident)
	c.Props.SetDecl(name, pkg)
	return pkg
}

func (d *declarer) declareType(n ast.Node, name *ast.NameNode, cat sema.Category, mods ast.Modifier) bool {
	if prev := d.pkg.Scope.LookupLocal(name.Ident, sema.CategoryType); prev != nil {
		d.u.fail(&DuplicateDeclError{File: d.u.path, Name: name.Ident, Category: cat, Pos: name.Pos()})
		return false
	}
	t := sema.NewTypeDecl(name.Ident, cat, d.pkg, n)
	t.Modifiers = mods
	d.pkg.Scope.Add(t)
	d.c.Props.SetDecl(name, t)
	d.c.owner[t] = d.u
	d.u.types = append(d.u.types, t)
	d.self = t
	return true
}

func (d *declarer) VisitClassDecl(n *ast.ClassDecl, args ast.Args) any {
	if d.declareType(n, n.Name, sema.CategoryClass, n.Modifiers) {
		ast.WalkList(d, n.Members, args)
	}
	return nil
}

func (d *declarer) VisitInterfaceDecl(n *ast.InterfaceDecl, args ast.Args) any {
	// Interface members are implicitly public; fields are also static final.
	if d.declareType(n, n.Name, sema.CategoryInterface, n.Modifiers) {
		ast.WalkList(d, n.Members, args)
	}
	return nil
}

func (d *declarer) VisitFieldDecl(n *ast.FieldDecl, args ast.Args) any {
	if prev := d.self.Scope.LookupLocal(n.Name.Ident, sema.CategoryField); prev != nil {
		d.u.fail(&DuplicateDeclError{File: d.u.path, Name: n.Name.Ident, Category: sema.CategoryField, Pos: n.Name.Pos()})
		return nil
	}
	m := sema.NewMemberDecl(n.Name.Ident, sema.CategoryField, d.self, n)
	m.TypeNode = n.Type
	m.Modifiers = n.Modifiers
	if d.self.IsInterface() {
		m.Modifiers |= ast.ModPublic | ast.ModStatic | ast.ModFinal
	}
	d.addMember(n.Name, m)
	return nil
}

func (d *declarer) VisitMethodDecl(n *ast.MethodDecl, args ast.Args) any {
	m := sema.NewMemberDecl(n.Name.Ident, sema.CategoryMethod, d.self, n)
	m.TypeNode = n.ReturnType
	m.Modifiers = n.Modifiers
	if d.self.IsInterface() {
		m.Modifiers |= ast.ModPublic
		if ast.IsAbsent(n.Body) {
			m.Modifiers |= ast.ModAbstract
		}
	}
	m.Params = d.params(n.Params, args)
	d.addMember(n.Name, m)
	return nil
}

func (d *declarer) VisitConstructorDecl(n *ast.ConstructorDecl, args ast.Args) any {
	m := sema.NewMemberDecl(n.Name.Ident, sema.CategoryConstructor, d.self, n)
	m.Modifiers = n.Modifiers
	m.Params = d.params(n.Params, args)
	d.addMember(n.Name, m)
	return nil
}

func (d *declarer) params(nodes []*ast.ParameterNode, args ast.Args) []*sema.LocalDecl {
	params := make([]*sema.LocalDecl, 0, len(nodes))
	for _, result := range ast.WalkList(d, nodes, args) {
		params = append(params, result.(*sema.LocalDecl))
	}
	return params
}

func (d *declarer) VisitParameter(n *ast.ParameterNode, args ast.Args) any {
	p := sema.NewLocalDecl(n.Name.Ident, sema.CategoryFormal, n)
	p.TypeNode = n.Type
	p.Modifiers = n.Modifiers
	d.c.Props.SetDecl(n.Name, p)
	return p
}

func (d *declarer) addMember(name *ast.NameNode, m *sema.MemberDecl) {
	d.self.Scope.Add(m)
	d.c.Props.SetDecl(name, m)
}
