// Package resolve binds the names of parsed compilation units to their
// declarations.
//
// A Context owns everything one run produces: the package tree, the
// loaded units, the property table and the list of fully-resolved units.
// Units move through the stages Loaded, PackageResolved, TypeResolved and
// FullyResolved; Number moves fully-resolved units to Numbered.
//
// Resolve first collects the declarations of every pending unit, so that
// units may refer to each other's types regardless of load order. Only then
// are imports, supertypes, signatures and bodies resolved.
package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/corelib"
	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/passes"
	"github.com/dhamidi/javafront/java/sema"
)

type Option func(*Context)

// WithLogger replaces the default "javafront.resolve" logger.
func WithLogger(log commonlog.Logger) Option {
	return func(c *Context) {
		c.log = log
	}
}

// WithCorePackage names the package that declares Object and String.
// The default is java.lang.
func WithCorePackage(name string) Option {
	return func(c *Context) {
		c.corePackage = name
	}
}

// WithImplicitImports replaces the packages every unit imports on demand
// without saying so. The default is the core package alone.
func WithImplicitImports(names ...string) Option {
	return func(c *Context) {
		c.implicitImports = names
		c.implicitSet = true
	}
}

// WithoutCoreLibrary skips loading the embedded core library stubs.
func WithoutCoreLibrary() Option {
	return func(c *Context) {
		c.loadCore = false
	}
}

// WithLibrary loads additional library sources. Library units are resolved
// along with the core library and never appear in Resolved.
func WithLibrary(sources ...corelib.Source) Option {
	return func(c *Context) {
		c.extra = append(c.extra, sources...)
	}
}

type unit struct {
	tree     *ast.CompileUnit
	path     string
	library  bool
	declared bool
	stage    Stage
	types    []*sema.TypeDecl
	errs     []error
}

func (u *unit) fail(err error) {
	u.errs = append(u.errs, err)
}

type Context struct {
	// ID tells the log lines of different runs apart.
	ID uuid.UUID
	// Props holds every fact the pipeline attaches to tree nodes.
	Props *sema.Table

	root    *sema.PackageDecl
	unnamed *sema.PackageDecl

	units    map[string]*unit
	byTree   map[*ast.CompileUnit]*unit
	owner    map[*sema.TypeDecl]*unit
	order    []*unit
	resolved []*ast.CompileUnit
	loadErrs []error
	reported map[*ast.NameNode]bool

	corePackage     string
	implicitImports []string
	implicitSet     bool
	loadCore        bool
	extra           []corelib.Source
	classes         []*classfile.ClassFile
	compiled        []compiledType

	numberer *passes.Numberer
	log      commonlog.Logger
}

// NewContext returns a context with the core library loaded and resolved.
func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		ID:          uuid.New(),
		Props:       sema.NewTable(),
		root:        sema.NewRootPackage(),
		unnamed:     sema.NewUnnamedPackage(),
		units:       map[string]*unit{},
		byTree:      map[*ast.CompileUnit]*unit{},
		owner:       map[*sema.TypeDecl]*unit{},
		reported:    map[*ast.NameNode]bool{},
		corePackage: "java.lang",
		loadCore:    true,
		log:         commonlog.GetLogger("javafront.resolve"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.implicitSet {
		c.implicitImports = []string{c.corePackage}
	}
	c.numberer = passes.NewNumberer(c.Props)

	var library []corelib.Source
	if c.loadCore {
		files, err := corelib.Files()
		if err != nil {
			return nil, fmt.Errorf("core library: %w", err)
		}
		library = files
	}
	library = append(library, c.extra...)
	for _, src := range library {
		if _, err := c.load(src.Path, src.Text, true); err != nil {
			return nil, fmt.Errorf("library: %w", err)
		}
	}
	if err := c.resolvePending(true); err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	c.debugf("context ready with %d library units", len(library))
	return c, nil
}

func (c *Context) debugf(format string, args ...any) {
	c.log.Debugf("[%s] "+format, append([]any{c.ID.String()[:8]}, args...)...)
}

// Load parses the file at path and registers it as a pending unit. Loading
// a file a second time returns the unit loaded the first time.
func (c *Context) Load(path string) (*ast.CompileUnit, error) {
	key := unitKey(path, false)
	if u, ok := c.units[key]; ok {
		c.debugf("%s already loaded", path)
		return u.tree, nil
	}
	tree, err := parser.ParseFile(path)
	if err != nil {
		err = &LoadError{File: path, Err: err}
		c.loadErrs = append(c.loadErrs, err)
		return nil, err
	}
	return c.register(key, path, tree, false), nil
}

// LoadSource registers src under path as if it had been read from disk.
func (c *Context) LoadSource(path string, src []byte) (*ast.CompileUnit, error) {
	return c.load(path, src, false)
}

func (c *Context) load(path string, src []byte, library bool) (*ast.CompileUnit, error) {
	key := unitKey(path, library)
	if u, ok := c.units[key]; ok {
		c.debugf("%s already loaded", path)
		return u.tree, nil
	}
	tree, err := parser.Parse(path, src)
	if err != nil {
		err = &LoadError{File: path, Err: err}
		if !library {
			c.loadErrs = append(c.loadErrs, err)
		}
		return nil, err
	}
	return c.register(key, path, tree, library), nil
}

// unitKey identifies a loaded file. Source paths are made absolute so the
// same file is found whatever spelling loaded it; library paths are kept
// apart from the file system.
func unitKey(path string, library bool) string {
	if library {
		return "library:" + filepath.Clean(path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (c *Context) register(key, path string, tree *ast.CompileUnit, library bool) *ast.CompileUnit {
	u := &unit{tree: tree, path: path, library: library, stage: StageLoaded}
	c.units[key] = u
	c.byTree[tree] = u
	c.order = append(c.order, u)
	c.debugf("%s %s", path, u.stage)
	return tree
}

// Resolve runs every pending unit through the pipeline. It returns all
// fully-resolved units in the order they were completed, and the errors
// of the units that failed in this run.
func (c *Context) Resolve() ([]*ast.CompileUnit, error) {
	err := c.resolvePending(false)
	return c.Resolved(), err
}

func (c *Context) resolvePending(library bool) error {
	var pending []*unit
	for _, u := range c.order {
		if u.library == library && !u.declared {
			pending = append(pending, u)
		}
	}

	// Every declaration must exist before any reference is resolved.
	for _, u := range pending {
		c.declare(u)
	}
	if library {
		c.declareClasses()
		c.linkClasses()
	}
	for _, u := range c.active(pending) {
		c.resolvePackage(u)
	}
	for _, u := range c.active(pending) {
		c.resolveTypes(u)
	}
	for _, u := range c.active(pending) {
		c.complete(u)
	}

	var errs []error
	for _, u := range pending {
		errs = append(errs, u.errs...)
	}
	return errors.Join(errs...)
}

func (c *Context) active(units []*unit) []*unit {
	var result []*unit
	for _, u := range units {
		if u.stage != StageFailed {
			result = append(result, u)
		}
	}
	return result
}

func (c *Context) setStage(u *unit, stage Stage) {
	u.stage = stage
	c.debugf("%s %s", u.path, stage)
}

// Resolved returns the fully-resolved user units in completion order.
func (c *Context) Resolved() []*ast.CompileUnit {
	return append([]*ast.CompileUnit(nil), c.resolved...)
}

// Stage reports how far tree has progressed. Trees the context did not
// load report StageFailed and false.
func (c *Context) Stage(tree *ast.CompileUnit) (Stage, bool) {
	u, ok := c.byTree[tree]
	if !ok {
		return StageFailed, false
	}
	return u.stage, true
}

// Errors returns the errors recorded for tree.
func (c *Context) Errors(tree *ast.CompileUnit) []error {
	if u, ok := c.byTree[tree]; ok {
		return u.errs
	}
	return nil
}

// Diagnostics returns every load and resolution error of the user units
// loaded so far.
func (c *Context) Diagnostics() []Diagnostic {
	var ds []Diagnostic
	for _, err := range c.loadErrs {
		ds = append(ds, Diagnose(err)...)
	}
	for _, u := range c.order {
		if u.library {
			continue
		}
		for _, err := range u.errs {
			ds = append(ds, Diagnose(err)...)
		}
	}
	return ds
}

// Root returns the package every named top-level package belongs to.
func (c *Context) Root() *sema.PackageDecl {
	return c.root
}

// UnnamedPackage returns the package of units without a package clause.
func (c *Context) UnnamedPackage() *sema.PackageDecl {
	return c.unnamed
}

// LookupPackage finds an existing package by dotted name.
func (c *Context) LookupPackage(dotted string) *sema.PackageDecl {
	pkg := c.root
	for _, part := range strings.Split(dotted, ".") {
		next, ok := pkg.Scope.LookupLocal(part, sema.CategoryPackage).(*sema.PackageDecl)
		if !ok {
			return nil
		}
		pkg = next
	}
	return pkg
}

// LookupType finds a type by its fully qualified name. Types of the unnamed
// package are found by their simple name.
func (c *Context) LookupType(dotted string) *sema.TypeDecl {
	i := strings.LastIndex(dotted, ".")
	if i < 0 {
		t, _ := c.unnamed.Scope.LookupLocal(dotted, sema.CategoryType).(*sema.TypeDecl)
		return t
	}
	pkg := c.LookupPackage(dotted[:i])
	if pkg == nil {
		return nil
	}
	t, _ := pkg.Scope.LookupLocal(dotted[i+1:], sema.CategoryType).(*sema.TypeDecl)
	return t
}

// FindDecl resolves a dotted name as it would be resolved inside tree,
// through tree's file environment. The tree must have reached
// StagePackageResolved.
func (c *Context) FindDecl(tree *ast.CompileUnit, dotted string) sema.Decl {
	env := c.Props.Environ(tree)
	if env == nil {
		return nil
	}
	decls := lookupChain(ast.MakeName(dotted), env, sema.CategoryPackage|sema.CategoryType)
	if decls == nil {
		return nil
	}
	return decls[len(decls)-1]
}

// ObjectType returns the root of the class hierarchy, or nil when no core
// library is loaded.
func (c *Context) ObjectType() *sema.TypeDecl {
	return c.LookupType(c.corePackage + ".Object")
}

// StringType returns the type of string literals.
func (c *Context) StringType() *sema.TypeDecl {
	return c.LookupType(c.corePackage + ".String")
}

// Number assigns ordinals to every fully-resolved unit that has none yet
// and moves those units to StageNumbered. It returns the number of nodes
// numbered.
func (c *Context) Number() int {
	count := 0
	for _, tree := range c.resolved {
		u := c.byTree[tree]
		if u.stage != StageFullyResolved {
			continue
		}
		count += c.numberer.Number(tree)
		c.setStage(u, StageNumbered)
	}
	return count
}
