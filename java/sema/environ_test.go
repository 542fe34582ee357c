package sema

import (
	"testing"

	"github.com/kr/pretty"
)

func local(name string) *LocalDecl {
	return NewLocalDecl(name, CategoryLocal, nil)
}

func TestEnvironShadowing(t *testing.T) {
	outer := NewEnviron(nil)
	inner := NewEnviron(outer)

	d1 := local("x")
	d2 := local("x")
	inner.Add(d1)
	outer.Add(d2)

	if got := inner.Lookup("x", CategoryAny); got != d1 {
		t.Errorf("inner lookup = %p, want inner binding %p", got, d1)
	}
	if got := outer.Lookup("x", CategoryAny); got != d2 {
		t.Errorf("outer lookup = %p, want outer binding %p", got, d2)
	}
}

func TestEnvironLaterBindingWins(t *testing.T) {
	env := NewEnviron(nil)
	first := local("x")
	second := local("x")
	env.Add(first)
	env.Add(second)

	if got := env.Lookup("x", CategoryAny); got != second {
		t.Errorf("lookup returned the earlier binding")
	}
	if diff := pretty.Diff(env.Names(), []string{"x"}); len(diff) > 0 {
		t.Errorf("Names differ:\n%v", diff)
	}
	if env.Len() != 2 {
		t.Errorf("Len() = %d, want 2", env.Len())
	}
}

func TestEnvironCategoryFilter(t *testing.T) {
	pkg := NewRootPackage().Subpackage("util")
	env := NewEnviron(nil)
	typ := NewTypeDecl("util", CategoryClass, pkg, nil)
	env.Add(pkg.Container)
	env.Add(pkg)
	env.Add(typ)

	if got := env.Lookup("util", CategoryPackage); got != pkg {
		t.Errorf("package lookup = %v", got)
	}
	if got := env.Lookup("util", CategoryType); got != typ {
		t.Errorf("type lookup = %v", got)
	}
	if got := env.Lookup("util", CategoryVariable); got != nil {
		t.Errorf("variable lookup = %v, want nil", got)
	}
}

func TestEnvironCopyDeclListIsSnapshot(t *testing.T) {
	src := NewEnviron(nil)
	a := local("a")
	src.Add(a)

	dest := NewEnviron(nil)
	dest.CopyDeclList(src)

	b := local("b")
	src.Add(b)

	if got := dest.Lookup("a", CategoryAny); got != a {
		t.Errorf("copied binding not visible")
	}
	if got := dest.Lookup("b", CategoryAny); got != nil {
		t.Errorf("binding added after copy is visible: %v", got)
	}
	if dest.Parent() != nil {
		t.Errorf("CopyDeclList re-parented the destination")
	}
}

func TestEnvironLookupAll(t *testing.T) {
	outer := NewEnviron(nil)
	inner := NewEnviron(outer)
	o := local("f")
	i1 := local("f")
	i2 := local("f")
	outer.Add(o)
	inner.Add(i1)
	inner.Add(i2)

	got := inner.LookupAll("f", CategoryAny)
	want := []Decl{i2, i1, o}
	if len(got) != len(want) {
		t.Fatalf("got %d decls, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("decl %d out of order", i)
		}
	}
}

func TestEnvironLookupMissing(t *testing.T) {
	env := NewEnviron(NewEnviron(nil))
	if got := env.Lookup("nothing", CategoryAny); got != nil {
		t.Errorf("Lookup = %v, want nil", got)
	}
}
