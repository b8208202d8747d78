// Package storage defines persistence contracts for documents.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates a requested document is missing.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists indicates an exclusive create hit an existing document.
	ErrAlreadyExists = errors.New("document already exists")
)

// Namespace persists named documents in a flat namespace.
//
// Create must be exclusive: it fails with ErrAlreadyExists instead of
// replacing an existing document, even when two callers race.
type Namespace interface {
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, name string) (bool, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Create(ctx context.Context, name string, content []byte) error
	Write(ctx context.Context, name string, content []byte) error
	Remove(ctx context.Context, name string) error
}
