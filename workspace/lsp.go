package workspace

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/bannockburn/config"
	"github.com/dhamidi/bannockburn/lexer"
	"github.com/dhamidi/bannockburn/parser"
	"github.com/dhamidi/bannockburn/project"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "bannock"

// LSPServer publishes parse diagnostics and document outlines over the
// language server protocol.
type LSPServer struct {
	ws      *Workspace
	opts    []parser.Option
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    opts,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	ls.ws = New(loadProject(rootDir), ls.opts...)
	p := ls.ws.Project()
	log.Infof("serving %s", p.RootDir)

	capabilities := ls.handler.CreateServerCapabilities()
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
			Version: &ls.version,
		},
	}, nil
}

// loadProject falls back to the default configuration rooted at dir when
// the project configuration cannot be read, so editing keeps working.
func loadProject(dir string) *project.Project {
	p, err := project.LoadFrom(dir)
	if err == nil {
		return p
	}
	log.Errorf("load project %s: %s", dir, err)
	if abs, aerr := filepath.Abs(dir); aerr == nil {
		dir = abs
	}
	return &project.Project{RootDir: dir, Config: config.Default()}
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if ls.ws == nil {
		return nil
	}
	if err := ls.ws.ScanAll(); err != nil {
		log.Errorf("scan %s: %s", ls.ws.RootDir(), err)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ls.update(ctx, params.TextDocument.URI, content)
}

// A closed document falls back to its saved contents.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || ls.ws == nil {
		return nil
	}
	if _, err := ls.ws.ScanFile(path); err != nil {
		ls.ws.Remove(path)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) error {
	path, err := uriToPath(uri)
	if err != nil || ls.ws == nil {
		return nil
	}
	doc := ls.ws.Update(path, content)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(doc.Diagnostics),
	})
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil || ls.ws == nil {
		return nil, nil
	}
	doc := ls.ws.Document(path)
	if doc == nil {
		return nil, nil
	}
	return toDocumentSymbols(doc.Outline()), nil
}

func toProtocolDiagnostics(diags []Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		source := lsName
		if d.Source != "" {
			source = lsName + " " + d.Source
		}
		out = append(out, protocol.Diagnostic{
			Range:    toProtocolRange(d.Loc),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

func toDocumentSymbols(symbols []*Symbol) []protocol.DocumentSymbol {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, s := range symbols {
		ds := protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           toProtocolSymbolKind(s.Kind),
			Range:          toProtocolRange(s.Loc),
			SelectionRange: toProtocolRange(s.NameLoc),
			Children:       toDocumentSymbols(s.Children),
		}
		if s.Detail != "" {
			detail := s.Detail
			ds.Detail = &detail
		}
		out = append(out, ds)
	}
	return out
}

func toProtocolSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolFunction:
		return protocol.SymbolKindFunction
	case SymbolParameter, SymbolVariable:
		return protocol.SymbolKindVariable
	case SymbolLabel:
		return protocol.SymbolKindKey
	default:
		return protocol.SymbolKindNull
	}
}

// toProtocolRange converts an inclusive 1-based location to the exclusive
// 0-based range the protocol uses. Columns are byte offsets.
func toProtocolRange(loc lexer.Location) protocol.Range {
	return protocol.Range{
		Start: toProtocolPosition(loc.Start, 0),
		End:   toProtocolPosition(loc.End, 1),
	}
}

func toProtocolPosition(p lexer.Position, shift int) protocol.Position {
	line := max(p.Line-1, 0)
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(p.Col + shift),
	}
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

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
