package resolve

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// complete resolves the bodies of u after completing the units that
// declare its supertypes. A unit becomes fully resolved only when every
// name in it is bound.
func (c *Context) complete(u *unit) {
	if u.stage != StageTypeResolved {
		return
	}
	c.setStage(u, StageCompleting)
	for _, t := range u.types {
		for _, s := range t.Supertypes() {
			if dep := c.owner[s]; dep != nil && dep != u {
				c.complete(dep)
			}
		}
	}

	c.resolveBodies(u)
	c.checkComplete(u)

	if len(u.errs) > 0 {
		c.setStage(u, StageFailed)
		return
	}
	c.setStage(u, StageFullyResolved)
	if !u.library {
		c.resolved = append(c.resolved, u.tree)
	}
}

// completionChecker visits every node of a unit and reports the names
// left without a declaration. Names whose failure was already reported
// are collected in silent.
type completionChecker struct {
	ast.DefaultVisitor
	c      *Context
	u      *unit
	silent []*ast.NameNode
}

func (c *Context) checkComplete(u *unit) {
	v := &completionChecker{c: c, u: u}
	v.DefaultVisitor = ast.DefaultVisitor{
		Mode:    ast.SelfFirst,
		Default: func(ast.Node, ast.Args) any { return nil },
	}
	ast.Walk(v, u.tree, nil)

	// An unbound name always keeps the unit from completing.
	if len(v.silent) > 0 && len(u.errs) == 0 {
		n := v.silent[0]
		u.fail(&UnresolvedNameError{File: u.path, Name: n.String(), Category: sema.CategoryAny, Pos: n.Pos()})
	}
}

func (v *completionChecker) VisitName(n *ast.NameNode, args ast.Args) any {
	if v.c.Props.Decl(n) != nil {
		return nil
	}
	if v.c.reported[n] {
		v.silent = append(v.silent, n)
		return nil
	}
	v.c.unresolved(v.u, n, sema.CategoryAny)
	return nil
}
