package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// resolvePackage builds the file environment of u. It has three layers,
// innermost first:
//
//	file       single-type imports
//	package    a copy of the types of u's package
//	on-demand  types of implicitly and explicitly imported packages
//
// The on-demand layer's parent is the root package scope, through which
// qualified names reach every top-level package.
func (c *Context) resolvePackage(u *unit) {
	pkg := c.Props.ThePackage(u.tree)

	onDemand := sema.NewEnviron(c.root.Scope)
	var imported []*sema.PackageDecl
	for _, dotted := range c.implicitImports {
		if p := c.LookupPackage(dotted); p != nil {
			imported = append(imported, p)
		} else {
			c.debugf("%s: implicit import %s not found", u.path, dotted)
		}
	}
	for _, imp := range u.tree.Imports {
		if imp, ok := imp.(*ast.ImportOnDemandNode); ok {
			if p := c.resolveImport(u, imp.Name, sema.CategoryPackage); p != nil {
				imported = append(imported, p.(*sema.PackageDecl))
			}
		}
	}
	for _, p := range imported {
		for _, t := range p.Types() {
			onDemand.Add(t)
		}
	}

	// Subpackages are only reachable by their qualified names.
	pkgEnv := sema.NewEnviron(onDemand)
	for _, t := range pkg.Types() {
		pkgEnv.Add(t)
	}

	fileEnv := sema.NewEnviron(pkgEnv)
	for _, imp := range u.tree.Imports {
		if imp, ok := imp.(*ast.ImportNode); ok {
			if t := c.resolveImport(u, imp.Name, sema.CategoryType); t != nil {
				fileEnv.Add(t)
			}
		}
	}

	c.Props.SetEnviron(u.tree, fileEnv)
	c.Props.SetImportedPackages(u.tree, imported)
	c.setStage(u, StagePackageResolved)
}

// resolveImport resolves an import name from the root package, where only
// fully qualified names are visible.
func (c *Context) resolveImport(u *unit, name *ast.NameNode, cat sema.Category) sema.Decl {
	d := ResolveName(c.Props, name, c.root.Scope, cat)
	if d == nil {
		c.unresolved(u, name, cat)
	}
	return d
}

// unresolved records that name could not be bound. A name is reported
// once even if several passes fail on it, and its qualifier segments are
// not reported separately.
func (c *Context) unresolved(u *unit, name *ast.NameNode, cat sema.Category) {
	if c.reported[name] {
		return
	}
	for q := name; q != nil; q = q.QualifierName() {
		c.reported[q] = true
	}
	u.fail(&UnresolvedNameError{File: u.path, Name: name.String(), Category: cat, Pos: name.Pos()})
}
