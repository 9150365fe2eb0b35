package session

import (
	"sync"
	"time"
)

// State is the session guard's explicit state. Using one tagged value instead
// of independent flags makes contradictory combinations unrepresentable.
type State int

const (
	// Unauthenticated: no usable session is held.
	Unauthenticated State = iota
	// Authenticated: a token is held and its expiry was in the future at the
	// last observation.
	Authenticated
	// Expired: a guarded access found the held token past its expiry. The
	// guard leaves this state immediately by clearing the session.
	Expired
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "unauthenticated"
	}
}

// Decision is the outcome of a guarded access check. When access is denied
// Destination carries the originally requested target, so the caller can
// retry it after a fresh login.
type Decision struct {
	Allowed     bool
	State       State
	Destination string
}

// Guard gatekeeps privileged destinations against the held session. All state
// reads and transitions happen under one mutex, so a check never observes a
// half-updated session.
type Guard struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time

	state State
	data  Data
}

// NewGuard builds a guard over the store and restores any previously
// persisted session: present and unexpired means Authenticated. A persisted
// session found already past its expiry is cleared right here, so a restart
// never leaves the stale token/user/expiry entries behind.
func NewGuard(store Store) (*Guard, error) {
	g := &Guard{store: store, now: time.Now}
	d, ok, err := store.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return g, nil
	}
	if !g.now().Before(d.ExpiresAt) {
		if err := store.Clear(); err != nil {
			return nil, err
		}
		return g, nil
	}
	g.state = Authenticated
	g.data = d
	return g, nil
}

// State reports the current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Current returns the cached user identity while authenticated.
func (g *Guard) Current() (User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Authenticated {
		return User{}, false
	}
	return g.data.User, true
}

// Token returns the held token string, or "" when none is held. Used by the
// request authenticator; the guard stays the single owner of the session.
func (g *Guard) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != Authenticated {
		return ""
	}
	return g.data.Token
}

// SetAuthenticated persists a fresh session and enters Authenticated.
func (g *Guard) SetAuthenticated(d Data) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Save(d); err != nil {
		return err
	}
	g.state = Authenticated
	g.data = d
	return nil
}

// Check decides whether the destination may be entered: a token must be
// present and its expiry in the future. On a detected expiry the guard passes
// through Expired, clears the stored session at once, and lands in
// Unauthenticated; the denial carries the requested destination.
func (g *Guard) Check(destination string) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == Authenticated && g.now().Before(g.data.ExpiresAt) {
		return Decision{Allowed: true, State: Authenticated}
	}

	if g.state == Authenticated {
		g.state = Expired
	}
	if g.state == Expired {
		// logout-on-expiry is immediate, not deferred
		_ = g.store.Clear()
		g.state = Unauthenticated
		g.data = Data{}
	}
	return Decision{Allowed: false, State: g.state, Destination: destination}
}

// Logout clears the session unconditionally.
func (g *Guard) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.store.Clear()
	g.state = Unauthenticated
	g.data = Data{}
	return err
}
