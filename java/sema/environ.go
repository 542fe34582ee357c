package sema

type binding struct {
	name string
	decl Decl
}

// Environ is one scope: an ordered list of name bindings with an optional
// parent scope. Lookups consult the environment's own bindings before the
// parent chain, and within one environment a later binding shadows an
// earlier one of the same name.
type Environ struct {
	parent   *Environ
	bindings []binding
}

func NewEnviron(parent *Environ) *Environ {
	return &Environ{parent: parent}
}

func (e *Environ) Parent() *Environ {
	return e.parent
}

// Add binds d under its own name.
func (e *Environ) Add(d Decl) {
	e.bindings = append(e.bindings, binding{name: d.Name(), decl: d})
}

// Len returns the number of bindings in e itself.
func (e *Environ) Len() int {
	return len(e.bindings)
}

// Names returns the distinct names bound in e itself, in the order they
// were first bound.
func (e *Environ) Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, b := range e.bindings {
		if !seen[b.name] {
			seen[b.name] = true
			names = append(names, b.name)
		}
	}
	return names
}

// Decls returns the declarations bound in e itself in binding order.
func (e *Environ) Decls() []Decl {
	result := make([]Decl, len(e.bindings))
	for i, b := range e.bindings {
		result[i] = b.decl
	}
	return result
}

// LookupLocal searches e's own bindings only.
func (e *Environ) LookupLocal(name string, cat Category) Decl {
	for i := len(e.bindings) - 1; i >= 0; i-- {
		b := e.bindings[i]
		if b.name == name && b.decl.Category().Matches(cat) {
			return b.decl
		}
	}
	return nil
}

// LookupAllLocal returns every matching binding of e itself, newest first.
func (e *Environ) LookupAllLocal(name string, cat Category) []Decl {
	var result []Decl
	for i := len(e.bindings) - 1; i >= 0; i-- {
		b := e.bindings[i]
		if b.name == name && b.decl.Category().Matches(cat) {
			result = append(result, b.decl)
		}
	}
	return result
}

// Lookup returns the innermost declaration called name whose category is
// in cat, or nil when the chain has none.
func (e *Environ) Lookup(name string, cat Category) Decl {
	for env := e; env != nil; env = env.parent {
		if d := env.LookupLocal(name, cat); d != nil {
			return d
		}
	}
	return nil
}

// LookupAll returns every matching declaration along the chain, innermost
// first. Method overloads are found this way.
func (e *Environ) LookupAll(name string, cat Category) []Decl {
	var result []Decl
	for env := e; env != nil; env = env.parent {
		result = append(result, env.LookupAllLocal(name, cat)...)
	}
	return result
}

// CopyDeclList appends a snapshot of src's own bindings to e. Bindings
// added to src afterwards are not seen through e.
func (e *Environ) CopyDeclList(src *Environ) {
	e.bindings = append(e.bindings, src.bindings...)
}
