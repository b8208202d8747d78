package memory

import (
	"context"
	"testing"

	"github.com/john129er/cms-project/internal/services/docs/storage"
	"github.com/john129er/cms-project/internal/services/docs/storage/storagetest"
)

func TestStoreContract(t *testing.T) {
	t.Parallel()

	storagetest.Run(t, func(*testing.T) storage.Namespace { return New() })
}

func TestReadReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	if err := s.Create(ctx, "a.txt", []byte("abc")); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := s.Read(ctx, "a.txt")
	got[0] = 'z'
	again, _ := s.Read(ctx, "a.txt")
	if string(again) != "abc" {
		t.Fatalf("stored content mutated: %q", again)
	}
}
