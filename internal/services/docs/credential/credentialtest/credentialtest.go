// Package credentialtest checks credential.Backend implementations.
package credentialtest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/john129er/cms-project/internal/services/docs/credential"
)

// AdminHash is the bcrypt hash of "secret" shipped in the original users.yml.
const AdminHash = "$2a$10$XSyY62jdyxrhANvP2yWAVeDyEirtwDzCgx9Q5cAhufPhH0OYhlVXi"

// Run exercises a fresh backend returned by open for every subtest.
func Run(t *testing.T, open func(t *testing.T) credential.Backend) {
	t.Helper()

	t.Run("missing user", func(t *testing.T) {
		b := open(t)
		hash, ok, err := b.Lookup(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if ok || hash != "" {
			t.Fatalf("lookup = (%q, %v), want missing", hash, ok)
		}
	})

	t.Run("insert then lookup", func(t *testing.T) {
		b := open(t)
		ctx := context.Background()
		if err := b.Insert(ctx, "admin", AdminHash); err != nil {
			t.Fatalf("insert: %v", err)
		}
		hash, ok, err := b.Lookup(ctx, "admin")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if !ok || hash != AdminHash {
			t.Fatalf("lookup = (%q, %v), want (%q, true)", hash, ok, AdminHash)
		}
	})

	t.Run("insert is exclusive", func(t *testing.T) {
		b := open(t)
		ctx := context.Background()
		if err := b.Insert(ctx, "admin", AdminHash); err != nil {
			t.Fatalf("insert: %v", err)
		}
		err := b.Insert(ctx, "admin", "other")
		if !errors.Is(err, credential.ErrTaken) {
			t.Fatalf("second insert = %v, want %v", err, credential.ErrTaken)
		}
		hash, _, err := b.Lookup(ctx, "admin")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if hash != AdminHash {
			t.Fatalf("hash = %q, want original", hash)
		}
	})

	t.Run("racing inserts have one winner", func(t *testing.T) {
		b := open(t)
		ctx := context.Background()

		const racers = 8
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			wins  int
			taken int
		)
		for range racers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := b.Insert(ctx, "racer", AdminHash)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					wins++
				case errors.Is(err, credential.ErrTaken):
					taken++
				default:
					t.Errorf("insert: %v", err)
				}
			}()
		}
		wg.Wait()
		if wins != 1 || taken != racers-1 {
			t.Fatalf("wins = %d, taken = %d, want 1 and %d", wins, taken, racers-1)
		}
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		b := open(t)
		ctx := context.Background()
		if err := b.Insert(ctx, "admin", AdminHash); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if err := b.Insert(ctx, "Admin", AdminHash); err != nil {
			t.Fatalf("insert Admin: %v", err)
		}
	})
}
