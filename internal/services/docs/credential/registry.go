// Package credential stores username/password-hash pairs and answers sign-in
// and sign-up questions against them.
package credential

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
)

// ErrTaken is returned by Backend.Insert when the username already has a hash.
var ErrTaken = errors.New("credential: username taken")

// Backend persists username -> hash pairs.
type Backend interface {
	// Lookup returns the stored hash for username.
	Lookup(ctx context.Context, username string) (hash string, ok bool, err error)
	// Insert stores hash for username; ErrTaken when username exists.
	Insert(ctx context.Context, username, hash string) error
}

// Hasher hashes and compares passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher hashes with bcrypt at Cost (bcrypt.DefaultCost when zero).
type BcryptHasher struct {
	Cost int
}

// Hash returns the bcrypt hash of password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether password matches hash.
func (BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// bcrypt rejects passwords longer than 72 bytes.
var passwordPattern = regexp.MustCompile(`^[A-Za-z0-9_]{5,72}$`)

// ValidPassword reports whether password satisfies the sign-up policy.
func ValidPassword(password string) bool {
	return passwordPattern.MatchString(password)
}

// Registry verifies and registers credentials.
type Registry struct {
	backend Backend
	hasher  Hasher
}

// NewRegistry returns a registry over backend. A nil hasher uses bcrypt.
func NewRegistry(backend Backend, hasher Hasher) (*Registry, error) {
	if backend == nil {
		return nil, fmt.Errorf("credential backend is required")
	}
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &Registry{backend: backend, hasher: hasher}, nil
}

// Verify reports whether username exists and password matches its hash.
func (r *Registry) Verify(ctx context.Context, username, password string) bool {
	hash, ok, err := r.backend.Lookup(ctx, username)
	if err != nil {
		log.Printf("credential lookup failed user=%q err=%v", username, err)
		return false
	}
	if !ok {
		return false
	}
	return r.hasher.Compare(hash, password)
}

// UsernameTaken reports whether username is registered.
func (r *Registry) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, ok, err := r.backend.Lookup(ctx, username)
	if err != nil {
		return false, fmt.Errorf("lookup %s: %w", username, err)
	}
	return ok, nil
}

// Register stores a new credential for username.
func (r *Registry) Register(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.New(apperrors.CodeUsernameEmpty, i18n.Sprintf(i18n.KeyUsernameRequired))
	}
	taken, err := r.UsernameTaken(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return usernameTaken(username, nil)
	}
	if !ValidPassword(password) {
		return apperrors.New(apperrors.CodeInvalidPassword, i18n.Sprintf(i18n.KeyPasswordInvalid))
	}
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := r.backend.Insert(ctx, username, hash); err != nil {
		if errors.Is(err, ErrTaken) {
			return usernameTaken(username, err)
		}
		return fmt.Errorf("insert credential %s: %w", username, err)
	}
	return nil
}

func usernameTaken(username string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeUsernameTaken,
		i18n.Sprintf(i18n.KeyUsernameTaken), map[string]string{"username": username}, cause)
}
