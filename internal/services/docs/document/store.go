// Package document implements the document store: named CRUD over a
// namespace plus single-shot duplication, with user-facing outcome messages.
package document

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/john129er/cms-project/internal/platform/errors"
	"github.com/john129er/cms-project/internal/services/docs/filename"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
	"github.com/john129er/cms-project/internal/services/docs/storage"
)

const tracerName = "github.com/john129er/cms-project/internal/services/docs/document"

// SortOrder selects the lexicographic order of List.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// ParseSortOrder maps the index sort parameter; anything but "descending" is
// ascending.
func ParseSortOrder(raw string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(raw), "descending") {
		return Descending
	}
	return Ascending
}

// String returns the query parameter value for o.
func (o SortOrder) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// Outcome reports a successful mutation.
type Outcome struct {
	Name    string
	Message string
}

// Store manages documents in a namespace.
type Store struct {
	ns     storage.Namespace
	policy *filename.Policy
	tracer trace.Tracer
}

// Option customizes a Store.
type Option func(*Store)

// WithPolicy replaces the default filename policy.
func WithPolicy(policy *filename.Policy) Option {
	return func(s *Store) {
		if policy != nil {
			s.policy = policy
		}
	}
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Store) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewStore returns a store over ns.
func NewStore(ns storage.Namespace, opts ...Option) (*Store, error) {
	if ns == nil {
		return nil, fmt.Errorf("document namespace is required")
	}
	s := &Store{
		ns:     ns,
		policy: filename.NewPolicy(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Policy returns the filename policy used for validation.
func (s *Store) Policy() *filename.Policy {
	return s.policy
}

// List returns every document name in the requested order.
func (s *Store) List(ctx context.Context, order SortOrder) (names []string, err error) {
	ctx, span := s.tracer.Start(ctx, "document.List", trace.WithAttributes(attribute.String("document.sort", order.String())))
	defer func() { endSpan(span, err) }()

	names, err = s.ns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	slices.Sort(names)
	if order == Descending {
		slices.Reverse(names)
	}
	span.SetAttributes(attribute.Int("document.count", len(names)))
	return names, nil
}

// Exists reports whether name is stored.
func (s *Store) Exists(ctx context.Context, name string) (ok bool, err error) {
	ctx, span := s.start(ctx, "document.Exists", name)
	defer func() { endSpan(span, err) }()

	if filename.ValidateName(name) != nil {
		return false, nil
	}
	ok, err = s.ns.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check document %s: %w", name, err)
	}
	return ok, nil
}

// Read returns the content of name. Names outside the flat namespace are
// reported as NotFound.
func (s *Store) Read(ctx context.Context, name string) (content []byte, err error) {
	ctx, span := s.start(ctx, "document.Read", name)
	defer func() { endSpan(span, err) }()

	if err := filename.ValidateName(name); err != nil {
		return nil, notFound(name, err)
	}
	content, err = s.ns.Read(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, notFound(name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}
	return content, nil
}

// Create stores a new document. It fails when name is invalid or taken and
// leaves the namespace untouched in both cases.
func (s *Store) Create(ctx context.Context, name string, content []byte) (outcome Outcome, err error) {
	ctx, span := s.start(ctx, "document.Create", name)
	defer func() { endSpan(span, err) }()

	if _, err := s.policy.Validate(name); err != nil {
		return Outcome{}, err
	}
	return s.create(ctx, name, content)
}

// Update overwrites name, creating it when missing.
func (s *Store) Update(ctx context.Context, name string, content []byte) (outcome Outcome, err error) {
	ctx, span := s.start(ctx, "document.Update", name)
	defer func() { endSpan(span, err) }()

	if _, err := s.policy.Validate(name); err != nil {
		return Outcome{}, err
	}
	if err := s.ns.Write(ctx, name, content); err != nil {
		return Outcome{}, fmt.Errorf("update document %s: %w", name, err)
	}
	return Outcome{Name: name, Message: i18n.Sprintf(i18n.KeyUpdated, name)}, nil
}

// Delete removes name.
func (s *Store) Delete(ctx context.Context, name string) (outcome Outcome, err error) {
	ctx, span := s.start(ctx, "document.Delete", name)
	defer func() { endSpan(span, err) }()

	if err := filename.ValidateName(name); err != nil {
		return Outcome{}, notFound(name, err)
	}
	err = s.ns.Remove(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return Outcome{}, notFound(name, err)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("delete document %s: %w", name, err)
	}
	return Outcome{Name: name, Message: i18n.Sprintf(i18n.KeyDeleted, name)}, nil
}

// Duplicate copies name to NextDuplicateName(name). A taken target is
// reported as AlreadyExists; higher counters are not tried.
func (s *Store) Duplicate(ctx context.Context, name string) (outcome Outcome, err error) {
	ctx, span := s.start(ctx, "document.Duplicate", name)
	defer func() { endSpan(span, err) }()

	content, err := s.Read(ctx, name)
	if err != nil {
		return Outcome{}, err
	}
	target := filename.NextDuplicateName(name)
	span.SetAttributes(attribute.String("document.target", target))
	if _, err := s.policy.Validate(target); err != nil {
		return Outcome{}, err
	}
	return s.create(ctx, target, content)
}

func (s *Store) create(ctx context.Context, name string, content []byte) (Outcome, error) {
	err := s.ns.Create(ctx, name, content)
	if errors.Is(err, storage.ErrAlreadyExists) {
		return Outcome{}, apperrors.WrapWithMetadata(apperrors.CodeAlreadyExists,
			i18n.Sprintf(i18n.KeyAlreadyExists, name), map[string]string{"name": name}, err)
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("create document %s: %w", name, err)
	}
	return Outcome{Name: name, Message: i18n.Sprintf(i18n.KeyCreated, name)}, nil
}

func (s *Store) start(ctx context.Context, spanName, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, spanName, trace.WithAttributes(attribute.String("document.name", name)))
}

func notFound(name string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeNotFound,
		i18n.Sprintf(i18n.KeyNotFound, name), map[string]string{"name": name}, cause)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
	}
	span.End()
}
