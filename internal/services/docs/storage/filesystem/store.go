// Package filesystem stores documents as regular files in one directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/john129er/cms-project/internal/services/docs/storage"
)

const filePerm = 0o644

// Store persists documents under a root directory. Every access goes through
// an os.Root, so names can never resolve outside that directory.
type Store struct {
	dir  string
	root *os.Root
}

// Open creates dir when missing and opens it as a document namespace.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	cleanDir := filepath.Clean(dir)
	if err := os.MkdirAll(cleanDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	root, err := os.OpenRoot(cleanDir)
	if err != nil {
		return nil, fmt.Errorf("open storage dir: %w", err)
	}
	return &Store{dir: cleanDir, root: root}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	if s == nil {
		return ""
	}
	return s.dir
}

// Close releases the directory handle.
func (s *Store) Close() error {
	if s == nil || s.root == nil {
		return nil
	}
	return s.root.Close()
}

// List returns the names of the regular files in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// Exists reports whether name is a regular file.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if err := s.check(ctx); err != nil {
		return false, err
	}
	info, err := s.root.Stat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the file content.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	file, err := s.root.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return nil, storage.ErrNotFound
	}
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return content, nil
}

// Create writes a new file, failing when name already exists.
func (s *Store) Create(ctx context.Context, name string, content []byte) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	file, err := s.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return storage.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := writeAndClose(file, content); err != nil {
		// The name was free before this call, so the partial file is ours to drop.
		_ = s.root.Remove(name)
		return fmt.Errorf("create %s: %w", name, err)
	}
	return nil
}

// Write replaces the content of name, creating it when missing.
func (s *Store) Write(ctx context.Context, name string, content []byte) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	file, err := s.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := writeAndClose(file, content); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Remove deletes name. Anything but a regular file is reported as not found.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	info, err := s.root.Lstat(name)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return storage.ErrNotFound
	}
	err = s.root.Remove(name)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.root == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func writeAndClose(file *os.File, content []byte) error {
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

var _ storage.Namespace = (*Store)(nil)
