// Package storagetest checks storage.Namespace implementations against the
// shared contract.
package storagetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/john129er/cms-project/internal/services/docs/storage"
)

// Run exercises a fresh namespace returned by open for every subtest.
func Run(t *testing.T, open func(t *testing.T) storage.Namespace) {
	t.Helper()

	t.Run("create then read", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		if err := ns.Create(ctx, "history.txt", []byte("Magic core set")); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := ns.Read(ctx, "history.txt")
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != "Magic core set" {
			t.Fatalf("content = %q, want %q", got, "Magic core set")
		}
		ok, err := ns.Exists(ctx, "history.txt")
		if err != nil || !ok {
			t.Fatalf("exists = (%v, %v), want true", ok, err)
		}
	})

	t.Run("empty content is a document", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		if err := ns.Create(ctx, "blank.md", nil); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := ns.Read(ctx, "blank.md")
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("content = %q, want empty", got)
		}
	})

	t.Run("create is exclusive", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		if err := ns.Create(ctx, "file.txt", []byte("first")); err != nil {
			t.Fatalf("create: %v", err)
		}
		err := ns.Create(ctx, "file.txt", []byte("second"))
		if !errors.Is(err, storage.ErrAlreadyExists) {
			t.Fatalf("second create = %v, want %v", err, storage.ErrAlreadyExists)
		}
		got, err := ns.Read(ctx, "file.txt")
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != "first" {
			t.Fatalf("content = %q, want unchanged %q", got, "first")
		}
	})

	t.Run("racing creates yield one winner", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		const racers = 8
		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			wins   int
			losses int
		)
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := ns.Create(ctx, "race(2).txt", []byte("copy"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					wins++
				case errors.Is(err, storage.ErrAlreadyExists):
					losses++
				default:
					t.Errorf("create: %v", err)
				}
			}()
		}
		wg.Wait()
		if wins != 1 || losses != racers-1 {
			t.Fatalf("wins = %d, losses = %d, want 1 and %d", wins, losses, racers-1)
		}
	})

	t.Run("write upserts", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		if err := ns.Write(ctx, "changes.txt", []byte("v1 is longer")); err != nil {
			t.Fatalf("write new: %v", err)
		}
		if err := ns.Write(ctx, "changes.txt", []byte("v2")); err != nil {
			t.Fatalf("overwrite: %v", err)
		}
		got, err := ns.Read(ctx, "changes.txt")
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(got) != "v2" {
			t.Fatalf("content = %q, want %q", got, "v2")
		}
	})

	t.Run("missing documents", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		if _, err := ns.Read(ctx, "nope.txt"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("read = %v, want %v", err, storage.ErrNotFound)
		}
		if err := ns.Remove(ctx, "nope.txt"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("remove = %v, want %v", err, storage.ErrNotFound)
		}
		ok, err := ns.Exists(ctx, "nope.txt")
		if err != nil || ok {
			t.Fatalf("exists = (%v, %v), want false", ok, err)
		}
	})

	t.Run("list and remove", func(t *testing.T) {
		ns := open(t)
		ctx := context.Background()
		for _, name := range []string{"b.md", "a.txt", "c.txt"} {
			if err := ns.Create(ctx, name, []byte(name)); err != nil {
				t.Fatalf("create %s: %v", name, err)
			}
		}
		if err := ns.Remove(ctx, "b.md"); err != nil {
			t.Fatalf("remove: %v", err)
		}
		names, err := ns.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(names) != 2 || names[0] != "a.txt" || names[1] != "c.txt" {
			t.Fatalf("names = %v, want [a.txt c.txt]", names)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ns := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := ns.Create(ctx, "x.txt", nil); !errors.Is(err, context.Canceled) {
			t.Fatalf("create = %v, want %v", err, context.Canceled)
		}
	})
}
