// Package passes holds tree passes that run on resolved units.
package passes

import (
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// Numberer assigns every node a distinct ordinal in pre-order: a node is
// numbered before its children, and children left to right. Nodes that
// already carry a number keep it, so a Numberer may be run again after
// new trees are added to the set.
type Numberer struct {
	ast.DefaultVisitor
	props *sema.Table
	count int
}

func NewNumberer(props *sema.Table) *Numberer {
	n := &Numberer{props: props}
	n.DefaultVisitor = ast.DefaultVisitor{Mode: ast.SelfFirst, Default: n.number}
	return n
}

func (n *Numberer) number(node ast.Node, args ast.Args) any {
	if _, ok := n.props.Number(node); ok {
		return nil
	}
	n.props.SetNumber(node, n.props.NextNumber())
	n.count++
	return nil
}

// Number numbers the nodes under roots and returns how many nodes were
// newly numbered.
func (n *Numberer) Number(roots ...ast.Node) int {
	before := n.count
	for _, root := range roots {
		ast.Walk(n, root, nil)
	}
	return n.count - before
}
