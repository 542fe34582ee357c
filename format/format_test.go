package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/parser"
	"github.com/dhamidi/javafront/java/sema"
)

func parse(t *testing.T, src string) *ast.CompileUnit {
	t.Helper()
	unit, err := parser.Parse("Test.java", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return unit
}

func TestTreeEncoder(t *testing.T) {
	unit := parse(t, "class A { int x = 1 + 2; }")
	props := sema.NewTable()
	field := unit.Types[0].(*ast.ClassDecl).Members[0].(*ast.FieldDecl)
	props.SetNumber(field, 3)
	props.SetType(field.Init, sema.PrimitiveType(ast.PrimInt))
	decl := sema.NewMemberDecl("x", sema.CategoryField, nil, field)
	decl.Type = sema.PrimitiveType(ast.PrimInt)
	props.SetDecl(field.Name, decl)

	var buf bytes.Buffer
	if err := NewTreeEncoder(&buf, props).Encode(unit); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"CompileUnit Test.java",
		"  ClassDecl",
		"    Name A",
		"    FieldDecl #3",
		"      PrimitiveType int",
		"      Name x -> field int ?.x",
		"      BinaryOp + : int",
		"        Literal 1",
		"        Literal 2",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestASTJSONEncoder(t *testing.T) {
	unit := parse(t, "class A { }")
	props := sema.NewTable()
	props.SetNumber(unit, 0)

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf, props).Encode(unit); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Kind     string
		Number   *int
		Children []struct {
			Kind string
			Span struct{ Start struct{ Line, Column int } }
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if decoded.Kind != "CompileUnit" || decoded.Number == nil || *decoded.Number != 0 {
		t.Errorf("root = %+v", decoded)
	}
	if len(decoded.Children) != 1 || decoded.Children[0].Kind != "ClassDecl" {
		t.Fatalf("children = %+v", decoded.Children)
	}
	if start := decoded.Children[0].Span.Start; start.Line != 1 || start.Column != 1 {
		t.Errorf("class starts at %+v", start)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		if _, err := New(name, &bytes.Buffer{}, nil); err != nil {
			t.Errorf("New(%s): %v", name, err)
		}
	}
	if _, err := New("yaml", &bytes.Buffer{}, nil); err == nil {
		t.Errorf("New(yaml) succeeded")
	}
}

const roundTripSource = `package demo.app;

import java.util.List;
import java.io.*;

public class Demo extends Base implements Runnable, Comparable {
    private static final int LIMIT = 10;
    List<String> names;

    public Demo(int n) throws Exception {
        this.count = n;
    }

    public void run() {
        int total = 0;
        for (int i = 0, j = 1; i < LIMIT; i++, j--) {
            total += i * (j + 1);
        }
        while (total > 0)
            total = total - 1;
        if (total == 0) {
            System.out.println("zero");
        } else if (total < 0) {
            return;
        } else {
            ;
        }
        int[][] grid = new int[3][];
        grid[0] = new int[LIMIT];
        Object o = (Object) names.get(0);
        boolean flag = !(total > 1 && total < 5) || - -total == 2;
        long big = (long) (total + 1) << 2;
    }

    abstract int size();
}

interface Shape extends Comparable {
    double area();
}
`

func TestJavaEncoderRoundTrip(t *testing.T) {
	first := NewJavaEncoder(nil).Source(parse(t, roundTripSource))
	second := NewJavaEncoder(nil).Source(parse(t, first))
	if first != second {
		t.Errorf("printing is not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if first != roundTripSource {
		t.Errorf("canonical source changed:\n%s", first)
	}
}

func TestJavaEncoderParentheses(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"(a + b) * c", "(a + b) * c"},
		{"a + (b * c)", "a + b * c"},
		{"a - (b - c)", "a - (b - c)"},
		{"(a - b) - c", "a - b - c"},
		{"a = b = c", "a = b = c"},
		{"(a = b) + 1", "(a = b) + 1"},
		{"-(-a)", "- -a"},
		{"(foo()).bar", "foo().bar"},
		{"((String) o).length()", "((String) o).length()"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpression("expr", []byte(tt.src))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := NewJavaEncoder(nil).Source(expr); got != tt.want {
				t.Errorf("Source = %q, want %q", got, tt.want)
			}
		})
	}
}
