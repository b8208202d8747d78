package credential

import (
	"context"
	"maps"
	"sync"
)

// MemoryBackend keeps credentials in a map.
type MemoryBackend struct {
	mu     sync.RWMutex
	hashes map[string]string
}

// NewMemoryBackend returns a backend seeded with hashes.
func NewMemoryBackend(hashes map[string]string) *MemoryBackend {
	seeded := make(map[string]string, len(hashes))
	maps.Copy(seeded, hashes)
	return &MemoryBackend{hashes: seeded}
}

// Lookup returns the hash for username.
func (b *MemoryBackend) Lookup(ctx context.Context, username string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	hash, ok := b.hashes[username]
	return hash, ok, nil
}

// Insert stores hash unless username exists.
func (b *MemoryBackend) Insert(ctx context.Context, username, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.hashes[username]; ok {
		return ErrTaken
	}
	b.hashes[username] = hash
	return nil
}

var _ Backend = (*MemoryBackend)(nil)
