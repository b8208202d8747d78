package credential_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/credential"
	"github.com/john129er/cms-project/internal/services/docs/credential/credentialtest"
)

func TestMemoryBackendContract(t *testing.T) {
	t.Parallel()

	credentialtest.Run(t, func(t *testing.T) credential.Backend {
		return credential.NewMemoryBackend(nil)
	})
}

func newRegistry(t *testing.T, seed map[string]string) *credential.Registry {
	t.Helper()
	registry, err := credential.NewRegistry(credential.NewMemoryBackend(seed), credential.BcryptHasher{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return registry
}

func TestNewRegistryRequiresBackend(t *testing.T) {
	t.Parallel()

	if _, err := credential.NewRegistry(nil, nil); err == nil {
		t.Fatal("expected error for nil backend")
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, map[string]string{"admin": credentialtest.AdminHash})
	ctx := context.Background()

	if !registry.Verify(ctx, "admin", "secret") {
		t.Fatal("Verify(admin, secret) = false, want true")
	}
	if registry.Verify(ctx, "admin", "wrong") {
		t.Fatal("Verify(admin, wrong) = true, want false")
	}
	if registry.Verify(ctx, "nobody", "secret") {
		t.Fatal("Verify(nobody) = true, want false")
	}
}

type failingBackend struct{}

func (failingBackend) Lookup(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingBackend) Insert(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestVerifyBackendFailure(t *testing.T) {
	t.Parallel()

	registry, err := credential.NewRegistry(failingBackend{}, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if registry.Verify(context.Background(), "admin", "secret") {
		t.Fatal("Verify with failing backend = true, want false")
	}
	if _, err := registry.UsernameTaken(context.Background(), "admin"); err == nil {
		t.Fatal("UsernameTaken with failing backend: expected error")
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, map[string]string{"admin": credentialtest.AdminHash})
	ctx := context.Background()

	if err := registry.Register(ctx, "alice", "hunter22"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	taken, err := registry.UsernameTaken(ctx, "alice")
	if err != nil {
		t.Fatalf("UsernameTaken: %v", err)
	}
	if !taken {
		t.Fatal("UsernameTaken(alice) = false, want true")
	}
	if !registry.Verify(ctx, "alice", "hunter22") {
		t.Fatal("Verify(alice) = false, want true")
	}
}

func TestRegisterFailures(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, map[string]string{"admin": credentialtest.AdminHash})
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		code     apperrors.Code
		message  string
	}{
		{name: "taken", username: "admin", password: "secret", code: apperrors.CodeUsernameTaken, message: "Username already exists."},
		{name: "short password", username: "bob", password: "abc", code: apperrors.CodeInvalidPassword, message: "Password is invalid."},
		{name: "punctuation", username: "bob", password: "pass word!", code: apperrors.CodeInvalidPassword, message: "Password is invalid."},
		{name: "non ascii", username: "bob", password: "pässwörd", code: apperrors.CodeInvalidPassword, message: "Password is invalid."},
		{name: "blank username", username: "  ", password: "secret", code: apperrors.CodeUsernameEmpty, message: "A username is required."},
		{name: "longer than bcrypt accepts", username: "bob", password: strings.Repeat("a", 80), code: apperrors.CodeInvalidPassword, message: "Password is invalid."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := registry.Register(ctx, tc.username, tc.password)
			if got := apperrors.CodeOf(err); got != tc.code {
				t.Fatalf("code = %v, want %v", got, tc.code)
			}
			if got := apperrors.Message(err); got != tc.message {
				t.Fatalf("message = %q, want %q", got, tc.message)
			}
		})
	}

	if taken, _ := registry.UsernameTaken(ctx, "bob"); taken {
		t.Fatal("failed registrations must not persist")
	}
}

type racingBackend struct {
	*credential.MemoryBackend
}

func (b racingBackend) Lookup(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func TestRegisterRacingInsertIsTaken(t *testing.T) {
	t.Parallel()

	backend := racingBackend{credential.NewMemoryBackend(map[string]string{"admin": credentialtest.AdminHash})}
	registry, err := credential.NewRegistry(backend, credential.BcryptHasher{Cost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	err = registry.Register(context.Background(), "admin", "secret")
	if !apperrors.HasCode(err, apperrors.CodeUsernameTaken) {
		t.Fatalf("Register = %v, want UsernameTaken", err)
	}
	if !errors.Is(err, credential.ErrTaken) {
		t.Fatalf("Register = %v, want cause %v", err, credential.ErrTaken)
	}
}

func TestRegisterLongestPassword(t *testing.T) {
	t.Parallel()

	registry := newRegistry(t, nil)
	ctx := context.Background()
	password := strings.Repeat("a", 72)
	if err := registry.Register(ctx, "bob", password); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !registry.Verify(ctx, "bob", password) {
		t.Fatal("expected 72 byte password to verify")
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"secret":     true,
		"abcde":      true,
		"a_b_c1":     true,
		"abcd":       false,
		"":           false,
		"with space": false,
		strings.Repeat("a", 72): true,
		strings.Repeat("a", 73): false,
	}
	for password, want := range cases {
		if got := credential.ValidPassword(password); got != want {
			t.Fatalf("ValidPassword(%q) = %v, want %v", password, got, want)
		}
	}
}
