// Package store resolves document identifiers to content documents.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/alnah/go-narrate/internal/content"
)

// ErrNotFound indicates no document exists for the requested identifier.
var ErrNotFound = errors.New("document not found")

// Resolver looks up documents by identifier.
type Resolver interface {
	Document(ctx context.Context, id string) (content.Document, error)
}

// Compile-time interface implementation checks.
var (
	_ Resolver = (*MemoryStore)(nil)
	_ Resolver = (*SQLiteStore)(nil)
)

// MemoryStore is a Resolver backed by a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]content.Document
}

// NewMemoryStore creates a store holding docs.
func NewMemoryStore(docs ...content.Document) *MemoryStore {
	s := &MemoryStore{docs: make(map[string]content.Document, len(docs))}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

// Put adds or replaces doc.
func (s *MemoryStore) Put(doc content.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

// Document implements Resolver.
func (s *MemoryStore) Document(ctx context.Context, id string) (content.Document, error) {
	if err := ctx.Err(); err != nil {
		return content.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return content.Document{}, ErrNotFound
	}
	return doc, nil
}

// IDs returns every stored identifier in sorted order.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
