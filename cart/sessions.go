package cart

import (
	"context"
	"sync"
	"time"
)

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Sessions keeps one cart per shopper session. Carts are only created by
// writes; idle ones are dropped by Sweep.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*session
	now   func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{carts: make(map[string]*session), now: time.Now}
}

// Get returns the session's cart, creating it on first use.
func (s *Sessions) Get(sessionID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[sessionID]
	if !ok {
		sess = &session{cart: New()}
		s.carts[sessionID] = sess
	}
	sess.lastSeen = s.now()
	return sess.cart
}

// Lookup returns the session's cart without creating one.
func (s *Sessions) Lookup(sessionID string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[sessionID]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.cart, true
}

// Sweep drops carts not touched for longer than maxIdle.
func (s *Sessions) Sweep(maxIdle time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	for id, sess := range s.carts {
		if sess.lastSeen.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

// Janitor sweeps every interval until ctx is done.
func (s *Sessions) Janitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(maxIdle)
		}
	}
}

// Len is the number of live carts.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
