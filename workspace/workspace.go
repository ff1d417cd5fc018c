// Package workspace keeps parsed scripts of a project in memory and serves
// them to the file watcher and the language server.
package workspace

import (
	"os"
	"sort"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/bannockburn/ast"
	"github.com/dhamidi/bannockburn/parser"
	"github.com/dhamidi/bannockburn/project"
)

var log = commonlog.GetLogger("bannock.workspace")

type Workspace struct {
	mu      sync.RWMutex
	project *project.Project
	parser  *parser.Parser
	docs    map[string]*Document
}

// Document is one parsed script. Err is the parse failure, if any; AST is
// nil when parsing failed.
type Document struct {
	Path        string
	Content     []byte
	AST         []*ast.Node
	Err         error
	Diagnostics []Diagnostic
}

func (d *Document) Failed() bool {
	return d.Err != nil
}

// Outline lists the functions, labels and variables of the document.
func (d *Document) Outline() []*Symbol {
	return Outline(d.AST)
}

func New(p *project.Project, opts ...parser.Option) *Workspace {
	return &Workspace{
		project: p,
		parser:  p.Parser(nil, opts...),
		docs:    make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.project.RootDir
}

func (w *Workspace) Project() *project.Project {
	return w.project
}

// ScanAll parses every script below the project root. Files that cannot
// be read are logged and skipped.
func (w *Workspace) ScanAll() error {
	paths, err := w.project.Scripts()
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := w.ScanFile(path); err != nil {
			log.Warningf("skipping %s: %s", path, err)
		}
	}
	return nil
}

// ScanFile reads and parses path.
func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.Update(path, content), nil
}

// Update parses content as the new text of path and stores the result.
func (w *Workspace) Update(path string, content []byte) *Document {
	doc := &Document{Path: path, Content: content}
	doc.AST, doc.Err = w.parser.Parse(string(content))
	if doc.Err != nil {
		log.Debugf("%s: %s", path, doc.Err)
		doc.Diagnostics = Diagnose(doc.Err)
	}

	w.mu.Lock()
	w.docs[path] = doc
	w.mu.Unlock()

	log.Infof("updated %s", path)
	return doc
}

func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.docs[path]; ok {
		delete(w.docs, path)
		log.Infof("removed %s", path)
	}
}

func (w *Workspace) Document(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Documents returns all documents ordered by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	docs := make([]*Document, 0, len(w.docs))
	for _, d := range w.docs {
		docs = append(docs, d)
	}
	w.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs
}

// Failed returns the documents that did not parse, ordered by path.
func (w *Workspace) Failed() []*Document {
	var failed []*Document
	for _, d := range w.Documents() {
		if d.Failed() {
			failed = append(failed, d)
		}
	}
	return failed
}
