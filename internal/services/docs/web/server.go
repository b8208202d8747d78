// Package web serves the document manager over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/john129er/cms-project/internal/platform/timeouts"
	"github.com/john129er/cms-project/internal/services/docs/app"
	"github.com/john129er/cms-project/internal/services/docs/i18n"
	"github.com/john129er/cms-project/internal/services/docs/session"
	"github.com/john129er/cms-project/internal/services/docs/web/httpx"
	"github.com/john129er/cms-project/internal/services/docs/web/requestmeta"
	"github.com/john129er/cms-project/internal/services/docs/web/templates"
)

const defaultSessionTTL = 24 * time.Hour

// Config defines the web server dependencies.
type Config struct {
	Service *app.Service
	// SessionSecret signs session cookies. A random secret is generated when
	// empty, which signs everybody out on restart.
	SessionSecret       []byte
	SessionTTL          time.Duration
	TrustForwardedProto bool
	TracerProvider      trace.TracerProvider
}

// Server routes HTTP requests to the core service.
type Server struct {
	svc          *app.Service
	sessions     *sessionStore
	tokens       *tokenCodec
	schemePolicy requestmeta.SchemePolicy
	tracer       trace.Tracer
	handler      http.Handler
}

// New builds a server from cfg.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("service is required")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	tokens, err := newTokenCodec(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	s := &Server{
		svc:          cfg.Service,
		sessions:     newSessionStore(ttl),
		tokens:       tokens,
		schemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		tracer:       tp.Tracer("github.com/john129er/cms-project/internal/services/docs/web"),
	}
	s.handler = httpx.Chain(s.routes(),
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.Trace(s.tracer),
		httpx.Logging(),
	)
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.withSession(s.handleIndex))

	mux.HandleFunc("GET /users/signin", s.withSession(s.handleSignInForm))
	mux.HandleFunc("POST /users/signin", s.withSession(s.handleSignIn))
	mux.HandleFunc("POST /users/signout", s.withSession(s.handleSignOut))
	mux.HandleFunc("GET /signup", s.withSession(s.handleSignUpForm))
	mux.HandleFunc("POST /signup", s.withSession(s.handleSignUp))

	mux.HandleFunc("GET /new", s.withSession(s.handleNewForm))
	mux.HandleFunc("POST /create", s.withSession(s.handleCreate))

	mux.HandleFunc("GET /{filename}", s.withSession(s.handleView))
	mux.HandleFunc("GET /{filename}/edit", s.withSession(s.handleEditForm))
	mux.HandleFunc("POST /{filename}", s.withSession(s.handleUpdate))
	mux.HandleFunc("POST /{filename}/destroy", s.withSession(s.handleDestroy))
	mux.HandleFunc("POST /{filename}/duplicate", s.withSession(s.handleDuplicate))
	return mux
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess session.Session)

func (s *Server) withSession(next sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r, s.loadSession(w, r))
	}
}

// page builds the layout state, consuming the one-shot message.
func (s *Server) page(sess session.Session, title string) templates.PageContext {
	username, _ := session.Username(sess)
	message, _ := session.PopMessage(sess)
	return templates.PageContext{
		Title:    title,
		Username: username,
		Message:  message,
		Loc:      i18n.Printer(i18n.Default()),
	}
}

func writePage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	log.Printf("cms listening on %s", addr)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
