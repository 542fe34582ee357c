package resolve

import (
	"testing"

	"github.com/dhamidi/javafront/classfile"
	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

func acmeClasses() []*classfile.ClassFile {
	public := classfile.AccPublic
	return []*classfile.ClassFile{
		{
			AccessFlags: public,
			Name:        "com/acme/Widget",
			SuperName:   "com/acme/Base",
			Interfaces:  []string{"java/lang/Runnable"},
			Fields: []classfile.Member{
				{AccessFlags: public | classfile.AccStatic | classfile.AccFinal, Name: "MAX", Descriptor: "I"},
				{AccessFlags: public, Name: "names", Descriptor: "[Ljava/lang/String;"},
				{AccessFlags: public, Name: "fn", Descriptor: "Ljava/util/function/Function;"},
				{AccessFlags: classfile.AccSynthetic, Name: "this$0", Descriptor: "Lcom/acme/Base;"},
			},
			Methods: []classfile.Member{
				{AccessFlags: classfile.AccStatic, Name: "<clinit>", Descriptor: "()V"},
				{AccessFlags: public, Name: "<init>", Descriptor: "()V"},
				{AccessFlags: public, Name: "<init>", Descriptor: "(I)V"},
				{AccessFlags: public, Name: "run", Descriptor: "()V"},
				{AccessFlags: public, Name: "load", Descriptor: "(Ljava/lang/String;[I)J", Exceptions: []string{"java/io/IOException"}},
				{AccessFlags: public, Name: "apply", Descriptor: "(Ljava/util/function/Function;)V"},
			},
		},
		{
			AccessFlags: public,
			Name:        "com/acme/Base",
			SuperName:   "java/lang/Object",
			Methods: []classfile.Member{
				{AccessFlags: public, Name: "describe", Descriptor: "()Ljava/lang/String;"},
			},
		},
		{AccessFlags: public, Name: "com/acme/Widget$Part", SuperName: "java/lang/Object"},
		{AccessFlags: public | classfile.AccInterface | classfile.AccAbstract, Name: "com/acme/Sized", SuperName: "java/lang/Object"},
		{AccessFlags: public, Name: "com/acme/Orphan", SuperName: "org/missing/Parent"},
		{AccessFlags: public | classfile.AccFinal, Name: "java/lang/String", SuperName: "java/lang/Object"},
	}
}

func TestClassFilesAsLibraryTypes(t *testing.T) {
	c := newContext(t, WithClassFiles(acmeClasses()...))

	widget := c.LookupType("com.acme.Widget")
	base := c.LookupType("com.acme.Base")
	if widget == nil || base == nil {
		t.Fatalf("Widget = %v, Base = %v", widget, base)
	}
	if widget.Super != base || base.Super != c.ObjectType() {
		t.Errorf("Widget.Super = %v, Base.Super = %v", widget.Super, base.Super)
	}
	if len(widget.Interfaces) != 1 || widget.Interfaces[0] != c.LookupType("java.lang.Runnable") {
		t.Errorf("Widget.Interfaces = %v", widget.Interfaces)
	}
	if got := sema.Describe(widget); got != "public class com.acme.Widget" {
		t.Errorf("Describe(Widget) = %q", got)
	}
	if sized := c.LookupType("com.acme.Sized"); sized == nil || !sized.IsInterface() || sized.Super != nil {
		t.Errorf("Sized = %v", sized)
	}
	if orphan := c.LookupType("com.acme.Orphan"); orphan == nil || orphan.Super != c.ObjectType() {
		t.Errorf("Orphan = %v", orphan)
	}
	if c.LookupType("com.acme.Widget$Part") != nil {
		t.Errorf("nested class declared")
	}
	if c.StringType().Source == nil {
		t.Errorf("String was replaced by the class file")
	}

	tests := []struct {
		name string
		cat  sema.Category
		want string
	}{
		{"MAX", sema.CategoryField, "field public static final int com.acme.Widget.MAX"},
		{"names", sema.CategoryField, "field public java.lang.String[] com.acme.Widget.names"},
		{"load", sema.CategoryMethod, "method public long com.acme.Widget.load(java.lang.String, int[])"},
		{"describe", sema.CategoryMethod, "method public java.lang.String com.acme.Base.describe()"},
		{"fn", sema.CategoryField, "<unresolved>"},
		{"this$0", sema.CategoryField, "<unresolved>"},
		{"apply", sema.CategoryMethod, "<unresolved>"},
		{"<clinit>", sema.CategoryMethod, "<unresolved>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sema.Describe(widget.LookupMember(tt.name, tt.cat)); got != tt.want {
				t.Errorf("member %s = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
	if ctors := widget.Scope.LookupAllLocal("Widget", sema.CategoryConstructor); len(ctors) != 2 {
		t.Errorf("Widget has %d constructors", len(ctors))
	}
}

func TestSourceUsesClassFiles(t *testing.T) {
	c := newContext(t, WithClassFiles(acmeClasses()...))
	tree := load(t, c, "app/Use.java", `package app;

import com.acme.Widget;

class Use {
    long f(Widget w) {
        String s = w.describe();
        int m = Widget.MAX + w.names.length;
        Widget other = new Widget(m);
        return w.load(s, new int[m]);
    }
}
`)
	if _, err := c.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got := sema.Describe(c.Props.Decl(findName(tree, "w.load"))); got != "method public long com.acme.Widget.load(java.lang.String, int[])" {
		t.Errorf("w.load bound to %q", got)
	}

	var alloc *ast.AllocateNode
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if a, ok := n.(*ast.AllocateNode); ok {
			alloc = a
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(tree)
	if got := sema.Describe(c.Props.Decl(alloc)); got != "constructor public com.acme.Widget(int)" {
		t.Errorf("new Widget(m) bound to %q", got)
	}
}
