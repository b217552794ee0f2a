// Package registry holds the rule and page collections in memory and
// implements the list, fetch, create and update operations on them.
package registry

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"archive-keeper/models"
)

const (
	idLength   = 6
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	// maxIDAttempts bounds the retries when a generated id is already taken.
	maxIDAttempts = 16
)

// ErrIDSpaceExhausted is returned when no free identifier was found.
var ErrIDSpaceExhausted = errors.New("could not generate an unused identifier")

// Registry owns both collections. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	rules models.RuleDocument
	pages models.PageDocument

	newID func() string
	now   func() time.Time
}

// Option customises a Registry.
type Option func(*Registry)

// WithIDGenerator replaces the random identifier source.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) { r.newID = gen }
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// New builds a Registry from loaded documents. The registry keeps its own
// copies; later changes to rules or pages are not observed.
func New(rules models.RuleDocument, pages models.PageDocument, opts ...Option) *Registry {
	r := &Registry{
		rules: rules.Clone(),
		pages: pages.Clone(),
		newID: RandomID,
		now:   time.Now,
	}
	r.rules.Normalize()
	r.pages.Normalize()
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RandomID returns six characters drawn uniformly from [a-z0-9].
func RandomID() string {
	id, err := readID(rand.Reader)
	if err != nil {
		panic(fmt.Sprintf("registry: reading random bytes: %v", err))
	}
	return id
}

// readID maps bytes from src onto the alphabet. Bytes at or above the
// largest multiple of the alphabet size are skipped so every character is
// equally likely.
func readID(src io.Reader) (string, error) {
	limit := 256 - 256%len(idAlphabet)
	id := make([]byte, 0, idLength)
	buf := make([]byte, idLength*2)
	for len(id) < idLength {
		n, err := src.Read(buf)
		if err != nil {
			return "", err
		}
		for _, b := range buf[:n] {
			if int(b) >= limit {
				continue
			}
			id = append(id, idAlphabet[int(b)%len(idAlphabet)])
			if len(id) == idLength {
				break
			}
		}
	}
	return string(id), nil
}

// freshID must be called with the write lock held.
func (r *Registry) freshID(taken func(string) bool) (string, error) {
	for range maxIDAttempts {
		id := r.newID()
		if !taken(id) {
			return id, nil
		}
	}
	return "", ErrIDSpaceExhausted
}

// RuleDocument returns a copy of the whole rule collection.
func (r *Registry) RuleDocument() models.RuleDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules.Clone()
}

// PageDocument returns a copy of the whole page collection.
func (r *Registry) PageDocument() models.PageDocument {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pages.Clone()
}
