// Package lsp serves resolution results over the Language Server
// Protocol: diagnostics for open documents and hover text for names.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/javafront/java/ast"
	"github.com/dhamidi/javafront/java/resolve"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "javafront"

type Server struct {
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewServer returns a server whose workspace resolves documents with
// opts.
func NewServer(version string, debug bool, opts ...resolve.Option) *Server {
	s := &Server{
		workspace: NewWorkspace(opts...),
		version:   version,
	}

	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentHover:     s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, debug)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return s.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return s.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	return s.update(ctx, params.TextDocument.URI, []byte(*params.Text))
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := s.workspace.Close(path); err != nil {
		return err
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	s.publish(ctx)
	return nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text []byte) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	if err := s.workspace.Update(path, text); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// publish sends the diagnostics of every open document. An empty list
// clears what the client showed before.
func (s *Server) publish(ctx *glsp.Context) {
	for _, path := range s.workspace.Paths() {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         pathToURI(path),
			Diagnostics: toProtocolDiagnostics(s.workspace.Text(path), s.workspace.Diagnostics(path)),
		})
	}
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	line, column := fromProtocolPosition(params.Position)
	text, span, ok := s.workspace.Hover(path, line, column)
	if !ok {
		return nil, nil
	}
	rng := protocol.Range{Start: toProtocolPosition(span.Start), End: toProtocolPosition(span.End)}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```java\n" + text + "\n```",
		},
		Range: &rng,
	}, nil
}

func toProtocolDiagnostics(text []byte, diags []resolve.Diagnostic) []protocol.Diagnostic {
	result := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, d := range diags {
		start := protocol.Position{}
		if d.Pos.IsValid() {
			start = toProtocolPosition(d.Pos)
		}
		end := start
		end.Character += protocol.UInteger(wordLength(text, d.Pos))
		result = append(result, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return result
}

// wordLength is the length of the identifier starting at pos, or 1 if
// there is none.
func wordLength(text []byte, pos ast.Position) int {
	if !pos.IsValid() || pos.Offset >= len(text) {
		return 1
	}
	n := 0
	for _, ch := range text[pos.Offset:] {
		if ch == '_' || ch == '$' || ch >= '0' && ch <= '9' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= 0x80 {
			n++
			continue
		}
		break
	}
	if n == 0 {
		return 1
	}
	return n
}

// Protocol positions are zero-based; tree positions are one-based.
func toProtocolPosition(pos ast.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(pos.Line-1, 0)),
		Character: protocol.UInteger(max(pos.Column-1, 0)),
	}
}

func fromProtocolPosition(pos protocol.Position) (line, column int) {
	return int(pos.Line) + 1, int(pos.Character) + 1
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if !filepath.IsAbs(path) {
		return path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
