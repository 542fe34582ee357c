package lsp

import (
	"sort"
	"sync"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/resolve"
	"github.com/dhamidi/javafront/java/sema"
	"github.com/tliron/commonlog"
)

// Workspace holds the open documents and the result of resolving them
// together. Every change re-resolves all open documents in a fresh
// resolve.Context, since one edit can break or fix names in other files.
type Workspace struct {
	mu      sync.Mutex
	options []resolve.Option
	log     commonlog.Logger

	docs  map[string][]byte
	ctx   *resolve.Context
	trees map[string]*ast.CompileUnit
	diags map[string][]resolve.Diagnostic
}

func NewWorkspace(opts ...resolve.Option) *Workspace {
	return &Workspace{
		options: opts,
		log:     commonlog.GetLogger("javafront.lsp"),
		docs:    map[string][]byte{},
		trees:   map[string]*ast.CompileUnit{},
		diags:   map[string][]resolve.Diagnostic{},
	}
}

// Update replaces the text of the document at path and re-resolves.
func (w *Workspace) Update(path string, text []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[path] = text
	return w.analyze()
}

// Close forgets the document at path and re-resolves the rest.
func (w *Workspace) Close(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
	return w.analyze()
}

// Paths lists the open documents.
func (w *Workspace) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	paths := make([]string, 0, len(w.docs))
	for path := range w.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Text returns the current text of the document at path.
func (w *Workspace) Text(path string) []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.docs[path]
}

func (w *Workspace) analyze() error {
	ctx, err := resolve.NewContext(w.options...)
	if err != nil {
		return err
	}
	w.ctx = ctx
	w.trees = map[string]*ast.CompileUnit{}
	w.diags = map[string][]resolve.Diagnostic{}

	paths := make([]string, 0, len(w.docs))
	for path := range w.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if tree, err := ctx.LoadSource(path, w.docs[path]); err == nil {
			w.trees[path] = tree
		}
	}
	resolved, _ := ctx.Resolve()
	for _, d := range ctx.Diagnostics() {
		w.diags[d.File] = append(w.diags[d.File], d)
	}
	w.log.Debugf("resolved %d of %d documents", len(resolved), len(paths))
	return nil
}

// Diagnostics returns the errors found in the document at path.
func (w *Workspace) Diagnostics(path string) []resolve.Diagnostic {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.diags[path]
}

// Hover describes what is at line:column of the document at path: the
// declaration a name is bound to, or else the static type of the
// innermost typed expression. The span is the extent of the described
// node.
func (w *Workspace) Hover(path string, line, column int) (string, ast.Span, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	tree := w.trees[path]
	if tree == nil {
		return "", ast.Span{}, false
	}
	props := w.ctx.Props
	nodes := ast.PathAt(tree, line, column)
	for i := len(nodes) - 1; i >= 0; i-- {
		if d := props.Decl(nodes[i]); d != nil {
			return sema.Describe(d), nodes[i].Range(), true
		}
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		if t := props.Type(nodes[i]); t != nil {
			return "type " + t.String(), nodes[i].Range(), true
		}
	}
	return "", ast.Span{}, false
}
