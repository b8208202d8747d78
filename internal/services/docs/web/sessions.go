package web

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/john129er/cms-project/internal/services/docs/session"
	"github.com/john129er/cms-project/internal/services/docs/web/requestmeta"
	"github.com/john129er/cms-project/internal/services/docs/web/sessioncookie"
)

const tokenIssuer = "cms"

// storedSession is one caller's bag with its expiry.
type storedSession struct {
	bag       *session.Bag
	expiresAt time.Time
}

// sessionStore is a thread-safe in-memory session store keyed by session id.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(ttl time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*storedSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// create stores bag under a fresh id and prunes expired sessions.
func (s *sessionStore) create(bag *session.Bag) (string, time.Time) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, stored := range s.sessions {
		if now.After(stored.expiresAt) {
			delete(s.sessions, key)
		}
	}
	expiresAt := now.Add(s.ttl)
	s.sessions[id] = &storedSession{bag: bag, expiresAt: expiresAt}
	return id, expiresAt
}

// get returns the bag for id, or nil if missing or expired.
func (s *sessionStore) get(id string) *session.Bag {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if s.now().After(stored.expiresAt) {
		delete(s.sessions, id)
		return nil
	}
	return stored.bag
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// sessionClaims is the signed cookie payload. Subject carries the session id.
type sessionClaims struct {
	jwt.RegisteredClaims
}

var errInvalidSessionToken = errors.New("invalid session token")

// tokenCodec signs and verifies session cookie tokens with HS256.
type tokenCodec struct {
	secret []byte
	now    func() time.Time
}

func newTokenCodec(secret []byte) (*tokenCodec, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return &tokenCodec{secret: secret, now: time.Now}, nil
}

func (c *tokenCodec) sign(sessionID string, expiresAt time.Time) (string, error) {
	claims := sessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sessionID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(c.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// parse returns the session id carried by token.
func (c *tokenCodec) parse(token string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidSessionToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", errInvalidSessionToken)
	}
	return claims.Subject, nil
}

// requestSession binds one request to its session. The store entry and cookie
// are created on the first write, so anonymous reads never allocate a session.
type requestSession struct {
	w      http.ResponseWriter
	r      *http.Request
	store  *sessionStore
	codec  *tokenCodec
	policy requestmeta.SchemePolicy
	bag    *session.Bag
	saved  bool
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) *requestSession {
	rs := &requestSession{
		w:      w,
		r:      r,
		store:  s.sessions,
		codec:  s.tokens,
		policy: s.schemePolicy,
	}
	if token, ok := sessioncookie.Read(r); ok {
		if id, err := s.tokens.parse(token); err == nil {
			if bag := s.sessions.get(id); bag != nil {
				rs.bag = bag
				rs.saved = true
			}
		}
	}
	if rs.bag == nil {
		rs.bag = session.NewBag()
	}
	return rs
}

func (rs *requestSession) Get(key string) (string, bool) {
	return rs.bag.Get(key)
}

func (rs *requestSession) Set(key, value string) {
	rs.bag.Set(key, value)
	rs.persist()
}

func (rs *requestSession) Delete(key string) {
	rs.bag.Delete(key)
}

func (rs *requestSession) persist() {
	if rs.saved {
		return
	}
	id, expiresAt := rs.store.create(rs.bag)
	token, err := rs.codec.sign(id, expiresAt)
	if err != nil {
		log.Printf("session persist failed err=%v", err)
		return
	}
	rs.saved = true
	sessioncookie.WriteWithPolicy(rs.w, rs.r, token, rs.store.ttl, rs.policy)
}

var _ session.Session = (*requestSession)(nil)
