// Package session defines the narrow view the document manager has of a
// caller's session: a string key/value bag holding the signed-in username
// and a one-shot message.
package session

import (
	"maps"
	"sync"
)

// Well-known keys.
const (
	KeyUsername = "username"
	KeyMessage  = "message"
)

// Session is the per-caller key/value bag owned by the session mechanism.
type Session interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// Bag is a concurrency-safe in-memory Session.
type Bag struct {
	mu     sync.Mutex
	values map[string]string
}

// NewBag returns an empty bag.
func NewBag() *Bag {
	return &Bag{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (b *Bag) Get(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.values[key]
	return value, ok
}

// Set stores value under key.
func (b *Bag) Set(key, value string) {
	b.mu.Lock()
	b.values[key] = value
	b.mu.Unlock()
}

// Delete removes key.
func (b *Bag) Delete(key string) {
	b.mu.Lock()
	delete(b.values, key)
	b.mu.Unlock()
}

// Values returns a snapshot of the bag.
func (b *Bag) Values() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.values)
}

// Username returns the signed-in username, if any.
func Username(s Session) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.Get(KeyUsername)
}

// SignIn records username as the signed-in user.
func SignIn(s Session, username string) {
	s.Set(KeyUsername, username)
}

// SignOut forgets the signed-in user.
func SignOut(s Session) {
	s.Delete(KeyUsername)
}

// SetMessage stages a one-shot message, replacing any unread one.
func SetMessage(s Session, message string) {
	if s == nil || message == "" {
		return
	}
	s.Set(KeyMessage, message)
}

// PopMessage returns the staged message and clears it.
func PopMessage(s Session) (string, bool) {
	if s == nil {
		return "", false
	}
	message, ok := s.Get(KeyMessage)
	if !ok {
		return "", false
	}
	s.Delete(KeyMessage)
	return message, true
}

// PeekMessage returns the staged message without clearing it.
func PeekMessage(s Session) (string, bool) {
	if s == nil {
		return "", false
	}
	return s.Get(KeyMessage)
}
