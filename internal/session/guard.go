package session

import (
	"log"
	"time"
)

// Guard enforces the admin session lifetime. The rule is a pure function
// of the stored start timestamp versus the current time: a session that
// has lasted the full TTL or longer is expired and its state cleared the
// next time it is checked.
type Guard struct {
	store *Store
	ttl   time.Duration

	// Now is the clock used for expiry decisions; replaceable in tests.
	Now func() time.Time
}

// NewGuard returns a Guard over the given store with the session TTL
// expressed in hours (24 in production).
func NewGuard(store *Store, ttlHours int) *Guard {
	return &Guard{
		store: store,
		ttl:   time.Duration(ttlHours) * time.Hour,
		Now:   time.Now,
	}
}

// Begin records a fresh authenticated session starting now.
func (g *Guard) Begin() error {
	return g.store.Write(State{
		Authenticated: true,
		SessionStart:  g.Now().UnixMilli(),
	})
}

// Check reports whether an unexpired admin session exists. A session at
// or past the TTL is force-expired: the stored state is cleared and the
// check fails. Read errors fail closed.
func (g *Guard) Check() bool {
	st, err := g.store.Read()
	if err != nil {
		log.Printf("session: read failed: %v", err)
		return false
	}
	if !st.Authenticated {
		return false
	}
	elapsed := g.Now().UnixMilli() - st.SessionStart
	if elapsed >= g.ttl.Milliseconds() {
		if err := g.store.Clear(); err != nil {
			log.Printf("session: clear after expiry failed: %v", err)
		}
		return false
	}
	return true
}

// Logout clears the session state unconditionally.
func (g *Guard) Logout() error {
	return g.store.Clear()
}
