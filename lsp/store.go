package lsp

import (
	"context"
	"fmt"
	"sync"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/rs/zerolog"
)

// Document is an open text document and the result of its last parse.
type Document struct {
	Item        protocol.TextDocumentItem
	Script      *ast.Script // nil when the text does not parse
	Err         error
	Diagnostics []protocol.Diagnostic
}

// Store holds the open documents of an editor session. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	docs   map[protocol.DocumentURI]*Document
	logger zerolog.Logger
}

// NewStore returns an empty store that logs with logger.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		docs:   map[protocol.DocumentURI]*Document{},
		logger: logger,
	}
}

// Open parses a newly opened document and returns its diagnostics.
func (s *Store) Open(ctx context.Context, item protocol.TextDocumentItem) []protocol.Diagnostic {
	doc := s.parse(ctx, item)
	s.mu.Lock()
	s.docs[item.URI] = doc
	s.mu.Unlock()
	return doc.Diagnostics
}

// Change replaces the text of an open document. Changes older than the
// stored version are ignored.
func (s *Store) Change(ctx context.Context, uri protocol.DocumentURI, version int32, text string) ([]protocol.Diagnostic, error) {
	prev, err := s.Get(uri)
	if err != nil {
		return nil, err
	}
	if version <= prev.Item.Version {
		s.logger.Debug().
			Str("uri", string(uri)).
			Int32("version", version).
			Int32("current", prev.Item.Version).
			Msg("stale change ignored")
		return prev.Diagnostics, nil
	}
	item := prev.Item
	item.Version = version
	item.Text = text
	doc := s.parse(ctx, item)

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.docs[uri]; !ok || cur.Item.Version >= version {
		return doc.Diagnostics, nil
	}
	s.docs[uri] = doc
	return doc.Diagnostics, nil
}

// Get returns the open document with the given URI.
func (s *Store) Get(uri protocol.DocumentURI) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return nil, fmt.Errorf("document not open: %s", uri)
	}
	return doc, nil
}

// Close forgets a document.
func (s *Store) Close(uri protocol.DocumentURI) {
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()
}

// Completions returns the completion items for an open document. A document
// that does not parse completes the fixed vocabulary only.
func (s *Store) Completions(uri protocol.DocumentURI) ([]protocol.CompletionItem, error) {
	doc, err := s.Get(uri)
	if err != nil {
		s.logger.Error().Err(err).Str("call", "Completions").Msg("failed to get document")
		return nil, err
	}
	return Completions(doc.Script), nil
}

func (s *Store) parse(ctx context.Context, item protocol.TextDocumentItem) *Document {
	script, diags, err := analyze(ctx, item.URI, item.Text)
	if err != nil {
		s.logger.Debug().Err(err).Str("uri", string(item.URI)).Msg("parse failed")
	}
	return &Document{
		Item:        item,
		Script:      script,
		Err:         err,
		Diagnostics: diags,
	}
}
