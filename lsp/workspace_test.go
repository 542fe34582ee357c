package lsp

import (
	"strings"
	"testing"

	"github.com/dhamidi/javafront/java/ast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const greeter = `package demo;

public class Greeter {
    String name;

    void greet() {
        System.out.println(name);
    }
}
`

func TestWorkspaceHover(t *testing.T) {
	w := NewWorkspace()
	if err := w.Update("/src/demo/Greeter.java", []byte(greeter)); err != nil {
		t.Fatal(err)
	}
	if ds := w.Diagnostics("/src/demo/Greeter.java"); len(ds) != 0 {
		t.Fatalf("unexpected diagnostics: %v", ds)
	}

	tests := []struct {
		line, column int
		want         string
	}{
		{3, 14, "public class demo.Greeter"},
		{7, 28, "field java.lang.String demo.Greeter.name"},
		{7, 20, "method public native void java.io.PrintStream.println(java.lang.String)"},
		{7, 16, "field public static java.io.PrintStream java.lang.System.out"},
	}
	for _, tt := range tests {
		got, _, ok := w.Hover("/src/demo/Greeter.java", tt.line, tt.column)
		if !ok || got != tt.want {
			t.Errorf("Hover(%d, %d) = %q, %v, want %q", tt.line, tt.column, got, ok, tt.want)
		}
	}

	if _, _, ok := w.Hover("/src/demo/Missing.java", 1, 1); ok {
		t.Errorf("hover in an unknown document")
	}
}

func TestWorkspaceCrossFileDiagnostics(t *testing.T) {
	w := NewWorkspace()
	user := "package demo;\n\nclass User {\n    Helper helper;\n}\n"
	if err := w.Update("/src/demo/User.java", []byte(user)); err != nil {
		t.Fatal(err)
	}
	ds := w.Diagnostics("/src/demo/User.java")
	if len(ds) != 1 || !strings.Contains(ds[0].Message, "Helper") {
		t.Fatalf("diagnostics = %v", ds)
	}

	if err := w.Update("/src/demo/Helper.java", []byte("package demo;\n\nclass Helper {\n}\n")); err != nil {
		t.Fatal(err)
	}
	if ds := w.Diagnostics("/src/demo/User.java"); len(ds) != 0 {
		t.Fatalf("diagnostics after adding Helper = %v", ds)
	}

	if err := w.Close("/src/demo/Helper.java"); err != nil {
		t.Fatal(err)
	}
	if ds := w.Diagnostics("/src/demo/User.java"); len(ds) != 1 {
		t.Fatalf("diagnostics after closing Helper = %v", ds)
	}
	if paths := w.Paths(); len(paths) != 1 || paths[0] != "/src/demo/User.java" {
		t.Errorf("Paths = %v", paths)
	}
}

func TestWorkspaceSyntaxError(t *testing.T) {
	w := NewWorkspace()
	if err := w.Update("Broken.java", []byte("class Broken {\n    int x = ;\n}\n")); err != nil {
		t.Fatal(err)
	}
	ds := w.Diagnostics("Broken.java")
	if len(ds) == 0 {
		t.Fatal("no diagnostics for a syntax error")
	}
	if ds[0].Pos.Line != 2 {
		t.Errorf("diagnostic at %v, want line 2", ds[0].Pos)
	}
}

func TestToProtocolDiagnostics(t *testing.T) {
	w := NewWorkspace()
	text := []byte("class A {\n    Missing m;\n}\n")
	if err := w.Update("A.java", text); err != nil {
		t.Fatal(err)
	}
	ds := toProtocolDiagnostics(text, w.Diagnostics("A.java"))
	if len(ds) != 1 {
		t.Fatalf("diagnostics = %v", ds)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 4},
		End:   protocol.Position{Line: 1, Character: 11},
	}
	if ds[0].Range != want {
		t.Errorf("range = %+v, want %+v", ds[0].Range, want)
	}
	if ds[0].Severity == nil || *ds[0].Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v", ds[0].Severity)
	}
}

func TestPositions(t *testing.T) {
	pos := toProtocolPosition(ast.Position{Line: 3, Column: 5})
	if pos.Line != 2 || pos.Character != 4 {
		t.Errorf("toProtocolPosition = %+v", pos)
	}
	if line, column := fromProtocolPosition(pos); line != 3 || column != 5 {
		t.Errorf("fromProtocolPosition = %d:%d", line, column)
	}
}

func TestURIs(t *testing.T) {
	path, err := uriToPath("file:///home/me/src/A.java")
	if err != nil || path != "/home/me/src/A.java" {
		t.Errorf("uriToPath = %q, %v", path, err)
	}
	if uri := pathToURI("/home/me/src/A.java"); uri != "file:///home/me/src/A.java" {
		t.Errorf("pathToURI = %q", uri)
	}
}
