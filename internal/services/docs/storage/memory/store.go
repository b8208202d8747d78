// Package memory provides an in-process document namespace for tests and
// ephemeral servers.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/john129er/cms-project/internal/services/docs/storage"
)

// Store keeps documents in a map.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

// List returns every document name.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Exists reports whether name is stored.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	_, ok := s.docs[name]
	s.mu.RUnlock()
	return ok, nil
}

// Read returns a copy of the stored content.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	content, ok := s.docs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, storage.ErrNotFound
	}
	return slices.Clone(content), nil
}

// Create stores content under a new name.
func (s *Store) Create(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; ok {
		return storage.ErrAlreadyExists
	}
	s.docs[name] = cloneContent(content)
	return nil
}

// Write stores content, replacing any previous value.
func (s *Store) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[name] = cloneContent(content)
	s.mu.Unlock()
	return nil
}

// Remove deletes name.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.docs, name)
	return nil
}

// Stored content is never nil so empty documents still read back as present.
func cloneContent(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	return slices.Clone(content)
}

var _ storage.Namespace = (*Store)(nil)
