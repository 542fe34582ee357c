package format

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

// TreeEncoder writes one line per node, indented by depth:
//
//	Name println #12 : ? -> method public void java.io.PrintStream.println(java.lang.String)
//
// Ordinals, static types and declarations appear when props records them.
type TreeEncoder struct {
	ast.DefaultVisitor
	w     io.Writer
	props *sema.Table
	out   *bufio.Writer
}

func NewTreeEncoder(w io.Writer, props *sema.Table) *TreeEncoder {
	e := &TreeEncoder{w: w, props: props}
	e.DefaultVisitor = ast.DefaultVisitor{Mode: ast.Custom, Default: e.line}
	return e
}

func (e *TreeEncoder) Encode(unit *ast.CompileUnit) error {
	text, err := e.MarshalNode(unit)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

// MarshalNode renders the subtree rooted at n.
func (e *TreeEncoder) MarshalNode(n ast.Node) ([]byte, error) {
	var sb strings.Builder
	e.out = bufio.NewWriter(&sb)
	ast.Walk(e, n, ast.Args{0})
	if err := e.out.Flush(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (e *TreeEncoder) line(n ast.Node, args ast.Args) any {
	depth := args.Arg(0).(int)
	e.out.WriteString(strings.Repeat("  ", depth))
	e.out.WriteString(n.Kind().String())
	if d := detail(n); d != "" {
		e.out.WriteString(" " + d)
	}
	if e.props != nil {
		if num, ok := e.props.Number(n); ok {
			fmt.Fprintf(e.out, " #%d", num)
		}
		if t := e.props.Type(n); t != nil {
			e.out.WriteString(" : " + t.String())
		}
		if d := e.props.Decl(n); d != nil {
			e.out.WriteString(" -> " + sema.Describe(d))
		}
	}
	e.out.WriteByte('\n')
	ast.WalkChildren(e, n, ast.Args{depth + 1})
	return nil
}
