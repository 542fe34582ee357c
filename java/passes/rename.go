package passes

import (
	"github.com/dhamidi/javafront/java/ast"
)

// renamer rewrites unqualified identifiers in place. It walks in Custom
// mode; the Default handler descends into all children, and the name
// holders below get their own methods so that no name is skipped.
type renamer struct {
	ast.DefaultVisitor
	mapping map[string]string
	count   int
}

// Rename replaces every unqualified name whose identifier is a key of
// mapping with the mapped identifier. Qualifiers are searched for names
// to rename, but the last identifier of a qualified name is never
// changed. Rename returns the number of identifiers replaced.
func Rename(tree ast.Node, mapping map[string]string) int {
	r := &renamer{mapping: mapping}
	r.DefaultVisitor = ast.DefaultVisitor{Mode: ast.Custom, Default: r.descend}
	ast.Walk(r, tree, nil)
	return r.count
}

func (r *renamer) descend(n ast.Node, args ast.Args) any {
	ast.WalkChildren(r, n, args)
	return nil
}

func (r *renamer) VisitName(n *ast.NameNode, args ast.Args) any {
	if n.IsQualified() {
		ast.Walk(r, n.Qualifier, args)
		return nil
	}
	if to, ok := r.mapping[n.Ident]; ok && to != n.Ident {
		n.Ident = to
		r.count++
	}
	return nil
}

func (r *renamer) VisitTypeName(n *ast.TypeNameNode, args ast.Args) any {
	ast.Walk(r, n.Name, args)
	ast.WalkList(r, n.TypeArgs, args)
	return nil
}

func (r *renamer) VisitArrayType(n *ast.ArrayTypeNode, args ast.Args) any {
	ast.Walk(r, n.Base, args)
	return nil
}

func (r *renamer) VisitObject(n *ast.ObjectNode, args ast.Args) any {
	ast.Walk(r, n.Name, args)
	return nil
}
