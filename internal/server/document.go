package server

import (
	"io"
	"sync"

	"github.com/sflorezs1/IJack-nand2tetris/compiler"
	"github.com/sflorezs1/IJack-nand2tetris/lexer"
	"github.com/sflorezs1/IJack-nand2tetris/outline"
)

// discard is an io.Writer that throws away VM output; the server only
// needs the outline and diagnostics a compile produces, never the .vm
// text itself.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

var _ io.Writer = discard{}

// Document holds the content and analysis results for a single open
// .ijk file.
type Document struct {
	URI     string
	Content string

	Outline *outline.ClassOutline
	LexErrs []*lexer.LexError
	CompErr error // *compiler.ParseError, *lexer.IndentError, or nil
}

// analyze lexes and compiles the document content, keeping only the
// outline byproduct and any diagnostics.
func (d *Document) analyze() {
	d.Outline = nil
	d.LexErrs = nil
	d.CompErr = nil

	out, err := compiler.Compile(d.Content, discard{})
	d.Outline = out
	d.CompErr = err

	// Re-lex separately to surface non-fatal illegal-character errors
	// even when the compile itself failed early.
	l := lexer.New(d.Content)
	for {
		tok, lexErr := l.NextToken()
		if lexErr != nil {
			break
		}
		if tok.Type.String() == "EOF" {
			break
		}
	}
	d.LexErrs = l.Errors()
}

// DocumentStore is a thread-safe store of open documents.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentStore creates an empty document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]*Document),
	}
}

// Open adds or replaces a document in the store and analyzes it.
func (s *DocumentStore) Open(uri, content string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := &Document{URI: uri, Content: content}
	doc.analyze()
	s.docs[uri] = doc
	return doc
}

// Update updates the content of an existing document and re-analyzes
// it.
func (s *DocumentStore) Update(uri, content string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		doc = &Document{URI: uri}
		s.docs[uri] = doc
	}
	doc.Content = content
	doc.analyze()
	return doc
}

// Get returns a document by URI.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}
