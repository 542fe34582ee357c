package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/sema"
)

type ASTJSONEncoder struct {
	w     io.Writer
	props *sema.Table
}

func NewASTJSONEncoder(w io.Writer, props *sema.Table) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, props: props}
}

func (e *ASTJSONEncoder) Encode(unit *ast.CompileUnit) error {
	text, err := e.MarshalNode(unit)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalNode(n ast.Node) ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(n), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Span     *astJSONSpan   `json:"span,omitempty"`
	Detail   string         `json:"detail,omitempty"`
	Number   *int           `json:"number,omitempty"`
	Type     string         `json:"type,omitempty"`
	Decl     string         `json:"decl,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONSpan struct {
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *ASTJSONEncoder) nodeToJSON(n ast.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:   n.Kind().String(),
		Detail: detail(n),
	}

	span := n.Range()
	if span.Start.IsValid() {
		jn.Span = &astJSONSpan{
			Start: astJSONPosition{Line: span.Start.Line, Column: span.Start.Column},
			End:   astJSONPosition{Line: span.End.Line, Column: span.End.Column},
		}
	}

	if e.props != nil {
		if num, ok := e.props.Number(n); ok {
			jn.Number = &num
		}
		if t := e.props.Type(n); t != nil {
			jn.Type = t.String()
		}
		if d := e.props.Decl(n); d != nil {
			jn.Decl = sema.Describe(d)
		}
	}

	children := n.Children()
	if len(children) > 0 {
		jn.Children = make([]*astJSONNode, len(children))
		for i, child := range children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}

	return jn
}
