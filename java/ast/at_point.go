package ast

// PathAt returns the chain of nodes whose spans contain line:column,
// outermost first. The last element is the innermost node at that point.
// Nodes without positions are skipped along with their subtrees.
func PathAt(root Node, line, column int) []Node {
	var path []Node
	n := root
	for n != nil && n.Range().Contains(line, column) {
		path = append(path, n)
		var next Node
		for _, child := range n.Children() {
			if child.Range().Contains(line, column) {
				next = child
				break
			}
		}
		n = next
	}
	return path
}

// NameAt returns the innermost name at line:column, or nil.
func NameAt(root Node, line, column int) *NameNode {
	path := PathAt(root, line, column)
	for i := len(path) - 1; i >= 0; i-- {
		if name, ok := path[i].(*NameNode); ok {
			return name
		}
	}
	return nil
}
