package document

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/filename"
	"github.com/john129er/cms-project/internal/services/docs/storage/memory"
)

func newTestStore(t *testing.T) (*Store, *memory.Store) {
	t.Helper()
	ns := memory.New()
	store, err := NewStore(ns)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, ns
}

func seed(t *testing.T, store *Store, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		if _, err := store.Create(context.Background(), name, []byte(content)); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

func TestNewStoreRequiresNamespace(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(nil); err == nil {
		t.Fatal("expected error for nil namespace")
	}
}

func TestParseSortOrder(t *testing.T) {
	t.Parallel()

	cases := map[string]SortOrder{
		"":           Ascending,
		"ascending":  Ascending,
		"descending": Descending,
		"Descending": Descending,
		"sideways":   Ascending,
	}
	for raw, want := range cases {
		if got := ParseSortOrder(raw); got != want {
			t.Fatalf("ParseSortOrder(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	names, err := store.List(ctx, Ascending)
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("List empty = %v, want none", names)
	}

	seed(t, store, map[string]string{"changes.txt": "", "about.md": "", "history.txt": ""})

	names, err = store.List(ctx, Ascending)
	if err != nil {
		t.Fatalf("List ascending: %v", err)
	}
	if want := []string{"about.md", "changes.txt", "history.txt"}; !slices.Equal(names, want) {
		t.Fatalf("List ascending = %v, want %v", names, want)
	}

	names, err = store.List(ctx, Descending)
	if err != nil {
		t.Fatalf("List descending: %v", err)
	}
	if want := []string{"history.txt", "changes.txt", "about.md"}; !slices.Equal(names, want) {
		t.Fatalf("List descending = %v, want %v", names, want)
	}
}

func TestCreateAndRead(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	outcome, err := store.Create(ctx, "new.md", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if outcome.Name != "new.md" || outcome.Message != "new.md has been created." {
		t.Fatalf("outcome = %+v", outcome)
	}
	content, err := store.Read(ctx, "new.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(content) != 0 {
		t.Fatalf("content = %q, want empty", content)
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	store, ns := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		code    apperrors.Code
		message string
	}{
		{name: "", code: apperrors.CodeEmptyName, message: "A name is required."},
		{name: "   ", code: apperrors.CodeEmptyName, message: "A name is required."},
		{name: "test.pdf", code: apperrors.CodeUnsupportedExtension, message: "Please use a valid file extension: .txt, .md."},
		{name: "notes", code: apperrors.CodeUnsupportedExtension, message: "Please use a valid file extension: .txt, .md."},
		{name: "../escape.txt", code: apperrors.CodeInvalidName, message: "../escape.txt is not a valid name."},
	}
	for _, tc := range tests {
		_, err := store.Create(ctx, tc.name, []byte("x"))
		if got := apperrors.CodeOf(err); got != tc.code {
			t.Fatalf("Create(%q) code = %v, want %v", tc.name, got, tc.code)
		}
		if got := apperrors.Message(err); got != tc.message {
			t.Fatalf("Create(%q) message = %q, want %q", tc.name, got, tc.message)
		}
	}

	names, err := ns.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("namespace = %v, want untouched", names)
	}
}

func TestCreateExistingLeavesContent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, store, map[string]string{"test.txt": "original"})

	_, err := store.Create(ctx, "test.txt", []byte("replacement"))
	if !errors.Is(err, apperrors.Sentinel(apperrors.CodeAlreadyExists)) {
		t.Fatalf("Create existing = %v, want AlreadyExists", err)
	}
	if got := apperrors.Message(err); got != "test.txt already exists." {
		t.Fatalf("message = %q", got)
	}
	content, err := store.Read(ctx, "test.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(content) != "original" {
		t.Fatalf("content = %q, want original", content)
	}
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	const racers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		already int
	)
	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, "race.txt", []byte("x"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case apperrors.HasCode(err, apperrors.CodeAlreadyExists):
				already++
			}
		}()
	}
	wg.Wait()
	if wins != 1 || already != racers-1 {
		t.Fatalf("wins = %d, already = %d, want 1 and %d", wins, already, racers-1)
	}
}

func TestReadMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	_, err := store.Read(context.Background(), "notafile.ext")
	if !errors.Is(err, apperrors.Sentinel(apperrors.CodeNotFound)) {
		t.Fatalf("Read missing = %v, want NotFound", err)
	}
	if got := apperrors.Message(err); got != "notafile.ext does not exist." {
		t.Fatalf("message = %q", got)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, store, map[string]string{"changes.txt": "old"})

	outcome, err := store.Update(ctx, "changes.txt", []byte("new content"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if outcome.Message != "changes.txt has been updated." {
		t.Fatalf("message = %q", outcome.Message)
	}
	content, err := store.Read(ctx, "changes.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(content) != "new content" {
		t.Fatalf("content = %q, want new content", content)
	}

	if _, err := store.Update(ctx, "fresh.md", []byte("# hi")); err != nil {
		t.Fatalf("Update missing: %v", err)
	}
	if ok, err := store.Exists(ctx, "fresh.md"); err != nil || !ok {
		t.Fatalf("Exists fresh.md = %v, %v, want true", ok, err)
	}

	if _, err := store.Update(ctx, "image.png", nil); !apperrors.HasCode(err, apperrors.CodeUnsupportedExtension) {
		t.Fatalf("Update unsupported = %v, want UnsupportedExtension", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, store, map[string]string{"test.txt": ""})

	outcome, err := store.Delete(ctx, "test.txt")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if outcome.Message != "test.txt has been deleted." {
		t.Fatalf("message = %q", outcome.Message)
	}
	if ok, _ := store.Exists(ctx, "test.txt"); ok {
		t.Fatal("expected test.txt to be gone")
	}
	if _, err := store.Delete(ctx, "test.txt"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Delete missing = %v, want NotFound", err)
	}
}

func TestDuplicate(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, store, map[string]string{"report.txt": "body"})

	outcome, err := store.Duplicate(ctx, "report.txt")
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if outcome.Name != "report(2).txt" || outcome.Message != "report(2).txt has been created." {
		t.Fatalf("outcome = %+v", outcome)
	}
	content, err := store.Read(ctx, "report(2).txt")
	if err != nil {
		t.Fatalf("Read copy: %v", err)
	}
	if string(content) != "body" {
		t.Fatalf("copy content = %q, want body", content)
	}

	outcome, err = store.Duplicate(ctx, "report(2).txt")
	if err != nil {
		t.Fatalf("Duplicate copy: %v", err)
	}
	if outcome.Name != "report(3).txt" {
		t.Fatalf("second copy = %q, want report(3).txt", outcome.Name)
	}
}

func TestDuplicateTargetTaken(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	seed(t, store, map[string]string{"report.txt": "a", "report(2).txt": "b"})

	_, err := store.Duplicate(ctx, "report.txt")
	if !apperrors.HasCode(err, apperrors.CodeAlreadyExists) {
		t.Fatalf("Duplicate = %v, want AlreadyExists", err)
	}
	if got := apperrors.Message(err); got != "report(2).txt already exists." {
		t.Fatalf("message = %q", got)
	}
	if ok, _ := store.Exists(ctx, "report(3).txt"); ok {
		t.Fatal("duplicate must not fall through to report(3).txt")
	}
}

func TestDuplicateMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	_, err := store.Duplicate(context.Background(), "ghost.md")
	if !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Duplicate missing = %v, want NotFound", err)
	}
}

func TestNestedNamesAreNotDocuments(t *testing.T) {
	t.Parallel()

	store, ns := newTestStore(t)
	ctx := context.Background()
	if err := ns.Create(ctx, "sub/hidden.txt", []byte("nested")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := store.Read(ctx, "sub/hidden.txt"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Read nested = %v, want NotFound", err)
	} else if got := apperrors.Message(err); got != "sub/hidden.txt does not exist." {
		t.Fatalf("message = %q", got)
	}
	if ok, err := store.Exists(ctx, "sub/hidden.txt"); err != nil || ok {
		t.Fatalf("Exists nested = %v, %v, want false", ok, err)
	}
	if _, err := store.Duplicate(ctx, "sub/hidden.txt"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Duplicate nested = %v, want NotFound", err)
	}
	if _, err := store.Delete(ctx, "sub/hidden.txt"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Delete nested = %v, want NotFound", err)
	}
	if ok, _ := ns.Exists(ctx, "sub/hidden.txt"); !ok {
		t.Fatal("nested entry must be left alone")
	}
	if _, err := store.Delete(ctx, ".."); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Fatalf("Delete .. = %v, want NotFound", err)
	}
}

func TestWithPolicyAcceptsRegisteredExtension(t *testing.T) {
	t.Parallel()

	policy := filename.NewPolicy()
	policy.Register(".markdown", filename.KindMarkdown)
	store, err := NewStore(memory.New(), WithPolicy(policy))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Policy() != policy {
		t.Fatal("Policy() must return the configured policy")
	}
	if _, err := store.Create(context.Background(), "notes.markdown", []byte("# hi")); err != nil {
		t.Fatalf("Create notes.markdown: %v", err)
	}

	plain, _ := newTestStore(t)
	if _, err := plain.Create(context.Background(), "notes.markdown", nil); !apperrors.HasCode(err, apperrors.CodeUnsupportedExtension) {
		t.Fatalf("default policy Create = %v, want UnsupportedExtension", err)
	}
}
