package resolve

import (
	"strconv"
	"strings"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// WithClassFiles adds compiled classes as library types. Nested classes
// and classes whose name is already declared are skipped. Supertypes and
// member signatures may refer to any library type; a member whose
// signature names an unknown type is left out, and an unknown superclass
// is replaced by the root class.
func WithClassFiles(classes ...*classfile.ClassFile) Option {
	return func(c *Context) {
		c.classes = append(c.classes, classes...)
	}
}

// compiledType is a type declared from a class file whose supertypes and
// members are not linked yet.
type compiledType struct {
	decl  *sema.TypeDecl
	class *classfile.ClassFile
}

// declareClasses binds a TypeDecl for each class in its package.
func (c *Context) declareClasses() {
	for _, cf := range c.classes {
		if cf.IsNested() || cf.AccessFlags.IsModule() || cf.SimpleName() == "package-info" {
			continue
		}
		pkg := c.unnamed
		if dotted := cf.Package(); dotted != "" {
			pkg = c.root
			for _, part := range strings.Split(dotted, ".") {
				pkg = pkg.Subpackage(part)
			}
		}
		if pkg.Scope.LookupLocal(cf.SimpleName(), sema.CategoryType) != nil {
			c.debugf("class %s is already declared", cf.SourceName())
			continue
		}
		cat := sema.CategoryClass
		if cf.IsInterface() {
			cat = sema.CategoryInterface
		}
		t := sema.NewTypeDecl(cf.SimpleName(), cat, pkg, nil)
		t.Modifiers = modifiersOf(cf.AccessFlags)
		pkg.Scope.Add(t)
		c.compiled = append(c.compiled, compiledType{decl: t, class: cf})
	}
	c.classes = nil
}

// linkClasses resolves the supertypes and member signatures of the
// declared classes. It runs after every library type is declared.
func (c *Context) linkClasses() {
	for _, ct := range c.compiled {
		c.linkClass(ct.decl, ct.class)
	}
	c.debugf("linked %d compiled classes", len(c.compiled))
	c.compiled = nil
}

func (c *Context) linkClass(t *sema.TypeDecl, cf *classfile.ClassFile) {
	object := c.ObjectType()
	if cf.SuperName != "" && !t.IsInterface() {
		t.Super = c.LookupType(classfile.InternalToSourceName(cf.SuperName))
		if t.Super == nil && object != t {
			t.Super = object
		}
	}
	for _, name := range cf.Interfaces {
		if iface := c.LookupType(classfile.InternalToSourceName(name)); iface != nil {
			t.Interfaces = append(t.Interfaces, iface)
		}
	}

	for _, f := range cf.Fields {
		if f.AccessFlags.IsSynthetic() {
			continue
		}
		ft, err := classfile.ParseFieldDescriptor(f.Descriptor)
		if err != nil {
			c.debugf("%s.%s: %v", cf.SourceName(), f.Name, err)
			continue
		}
		typ := c.compiledType(ft)
		if typ == nil {
			continue
		}
		m := sema.NewMemberDecl(f.Name, sema.CategoryField, t, nil)
		m.Type = typ
		m.Modifiers = modifiersOf(f.AccessFlags)
		t.Scope.Add(m)
	}

	for _, method := range cf.Methods {
		if method.AccessFlags.IsSynthetic() || method.IsStaticInitializer() {
			continue
		}
		if m := c.compiledMethod(t, cf, &method); m != nil {
			t.Scope.Add(m)
		}
	}
}

func (c *Context) compiledMethod(t *sema.TypeDecl, cf *classfile.ClassFile, method *classfile.Member) *sema.MemberDecl {
	md, err := classfile.ParseMethodDescriptor(method.Descriptor)
	if err != nil {
		c.debugf("%s.%s: %v", cf.SourceName(), method.Name, err)
		return nil
	}

	var m *sema.MemberDecl
	if method.IsConstructor() {
		m = sema.NewMemberDecl(t.Name(), sema.CategoryConstructor, t, nil)
	} else {
		m = sema.NewMemberDecl(method.Name, sema.CategoryMethod, t, nil)
		m.Type = sema.PrimitiveType(ast.PrimVoid)
		if md.Return != nil {
			if m.Type = c.compiledType(*md.Return); m.Type == nil {
				return nil
			}
		}
	}
	m.Modifiers = modifiersOf(method.AccessFlags)
	for i, p := range md.Params {
		typ := c.compiledType(p)
		if typ == nil {
			return nil
		}
		formal := sema.NewLocalDecl(paramName(i), sema.CategoryFormal, nil)
		formal.Type = typ
		m.Params = append(m.Params, formal)
	}
	return m
}

// compiledType converts a descriptor type, or returns nil when it names
// a class that is not declared.
func (c *Context) compiledType(ft classfile.FieldType) *sema.Type {
	var typ *sema.Type
	if ft.ClassName != "" {
		d := c.LookupType(classfile.InternalToSourceName(ft.ClassName))
		if d == nil {
			return nil
		}
		typ = sema.ClassType(d)
	} else {
		typ = sema.PrimitiveType(descriptorPrimitives[ft.Base])
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		typ = sema.ArrayOf(typ)
	}
	return typ
}

var descriptorPrimitives = map[byte]ast.Primitive{
	'B': ast.PrimByte,
	'C': ast.PrimChar,
	'D': ast.PrimDouble,
	'F': ast.PrimFloat,
	'I': ast.PrimInt,
	'J': ast.PrimLong,
	'S': ast.PrimShort,
	'Z': ast.PrimBoolean,
}

var accessModifiers = []struct {
	flag classfile.AccessFlags
	mod  ast.Modifier
}{
	{classfile.AccPublic, ast.ModPublic},
	{classfile.AccProtected, ast.ModProtected},
	{classfile.AccPrivate, ast.ModPrivate},
	{classfile.AccStatic, ast.ModStatic},
	{classfile.AccFinal, ast.ModFinal},
	{classfile.AccAbstract, ast.ModAbstract},
	{classfile.AccNative, ast.ModNative},
}

// modifiersOf maps access flags to modifiers. Flags that mean different
// things on classes, fields and methods (volatile/bridge,
// transient/varargs) are dropped.
func modifiersOf(flags classfile.AccessFlags) ast.Modifier {
	var mods ast.Modifier
	for _, entry := range accessModifiers {
		if flags&entry.flag != 0 {
			mods |= entry.mod
		}
	}
	return mods
}

// Class files without debug information do not name parameters.
func paramName(i int) string {
	return "arg" + strconv.Itoa(i)
}
