// Package app is the document manager's core boundary. Every call takes the
// caller's session, enforces the sign-in gate on mutations, and stages the
// outcome as the session's one-shot message.
package app

import (
	"context"
	"fmt"
	"log"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/authgate"
	"github.com/john129er/cms-project/internal/services/docs/credential"
	"github.com/john129er/cms-project/internal/services/docs/document"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
	"github.com/john129er/cms-project/internal/services/docs/render"
	"github.com/john129er/cms-project/internal/services/docs/session"
)

// Service wires the document store, renderer and credential registry.
type Service struct {
	docs     *document.Store
	renderer *render.Renderer
	registry *credential.Registry
}

// New returns a service. A nil renderer renders with the store's policy.
func New(docs *document.Store, renderer *render.Renderer, registry *credential.Registry) (*Service, error) {
	if docs == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("credential registry is required")
	}
	if renderer == nil {
		renderer = render.New(docs.Policy())
	}
	return &Service{docs: docs, renderer: renderer, registry: registry}, nil
}

// Extensions returns the accepted document extensions.
func (s *Service) Extensions() []string {
	return s.docs.Policy().Extensions()
}

// ListDocuments returns every document name in the requested order.
func (s *Service) ListDocuments(ctx context.Context, order document.SortOrder) ([]string, error) {
	return s.docs.List(ctx, order)
}

// ViewDocument reads and renders name. Anyone may view.
func (s *Service) ViewDocument(ctx context.Context, sess session.Session, name string) (render.Rendered, error) {
	content, err := s.docs.Read(ctx, name)
	if err != nil {
		return render.Rendered{}, stage(sess, err)
	}
	rendered, err := s.renderer.Render(name, content)
	if err != nil {
		return render.Rendered{}, stage(sess, err)
	}
	return rendered, nil
}

// NewDocumentForm checks that the caller may open the new-document form.
func (s *Service) NewDocumentForm(sess session.Session) error {
	return stage(sess, authgate.RequireSignedIn(sess))
}

// EditDocument returns the raw content of name for the edit form.
func (s *Service) EditDocument(ctx context.Context, sess session.Session, name string) ([]byte, error) {
	if err := authgate.RequireSignedIn(sess); err != nil {
		return nil, stage(sess, err)
	}
	content, err := s.docs.Read(ctx, name)
	if err != nil {
		return nil, stage(sess, err)
	}
	return content, nil
}

// CreateDocument stores a new document.
func (s *Service) CreateDocument(ctx context.Context, sess session.Session, name string, content []byte) (document.Outcome, error) {
	return s.mutate(sess, func() (document.Outcome, error) {
		return s.docs.Create(ctx, name, content)
	})
}

// UpdateDocument overwrites name.
func (s *Service) UpdateDocument(ctx context.Context, sess session.Session, name string, content []byte) (document.Outcome, error) {
	return s.mutate(sess, func() (document.Outcome, error) {
		return s.docs.Update(ctx, name, content)
	})
}

// DeleteDocument removes name.
func (s *Service) DeleteDocument(ctx context.Context, sess session.Session, name string) (document.Outcome, error) {
	return s.mutate(sess, func() (document.Outcome, error) {
		return s.docs.Delete(ctx, name)
	})
}

// DuplicateDocument copies name to its next duplicate name.
func (s *Service) DuplicateDocument(ctx context.Context, sess session.Session, name string) (document.Outcome, error) {
	return s.mutate(sess, func() (document.Outcome, error) {
		return s.docs.Duplicate(ctx, name)
	})
}

// SignIn signs the caller in when the credentials verify.
func (s *Service) SignIn(ctx context.Context, sess session.Session, username, password string) error {
	if !s.registry.Verify(ctx, username, password) {
		return stage(sess, apperrors.New(apperrors.CodeInvalidCredentials, i18n.Sprintf(i18n.KeyInvalidCredentials)))
	}
	session.SignIn(sess, username)
	session.SetMessage(sess, i18n.Sprintf(i18n.KeyWelcome, username))
	log.Printf("signed in user=%q", username)
	return nil
}

// SignOut forgets the signed-in user.
func (s *Service) SignOut(ctx context.Context, sess session.Session) {
	if username, ok := session.Username(sess); ok {
		log.Printf("signed out user=%q", username)
	}
	session.SignOut(sess)
	session.SetMessage(sess, i18n.Sprintf(i18n.KeySignedOut))
}

// SignUp registers a new credential. The caller is not signed in.
func (s *Service) SignUp(ctx context.Context, sess session.Session, username, password string) error {
	if err := s.registry.Register(ctx, username, password); err != nil {
		return stage(sess, err)
	}
	session.SetMessage(sess, i18n.Sprintf(i18n.KeySignupSuccess))
	log.Printf("registered user=%q", username)
	return nil
}

func (s *Service) mutate(sess session.Session, op func() (document.Outcome, error)) (document.Outcome, error) {
	if err := authgate.RequireSignedIn(sess); err != nil {
		return document.Outcome{}, stage(sess, err)
	}
	outcome, err := op()
	if err != nil {
		return document.Outcome{}, stage(sess, err)
	}
	session.SetMessage(sess, outcome.Message)
	return outcome, nil
}

// stage records the user-facing message of a domain error. Errors outside the
// taxonomy are returned untouched.
func stage(sess session.Session, err error) error {
	if err == nil {
		return nil
	}
	if message := apperrors.Message(err); message != "" {
		session.SetMessage(sess, message)
	}
	return err
}
