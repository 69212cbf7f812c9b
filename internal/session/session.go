// Package session owns the portal's belief about who is logged in.
// The Manager is the only writer of the credential store and the only
// component that interprets gateway results; everything else reads
// snapshots.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/starter-squad/lms-portal/internal/credstore"
	"github.com/starter-squad/lms-portal/internal/gateway"
)

type Status int

const (
	StatusUninitialized Status = iota
	StatusVerifying
	StatusAuthenticated
	StatusAnonymous
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusVerifying:
		return "verifying"
	case StatusAuthenticated:
		return "authenticated"
	case StatusAnonymous:
		return "anonymous"
	}
	return "invalid"
}

type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
}

// Snapshot is a point-in-time copy of the session state. Holding one
// never blocks the manager.
type Snapshot struct {
	Status Status
	User   *User
	Token  string
}

// Gateway is the slice of the remote API client the manager needs.
type Gateway interface {
	Login(ctx context.Context, email, password string) gateway.LoginResult
	FetchUser(ctx context.Context, email string) gateway.FetchResult
	Logout(ctx context.Context)
}

type Manager struct {
	mu          sync.Mutex
	status      Status
	user        *User
	token       string
	initialized bool
	subs        []func(Snapshot)

	store credstore.Store
	gw    Gateway
}

func NewManager(store credstore.Store, gw Gateway) *Manager {
	return &Manager{
		status: StatusUninitialized,
		store:  store,
		gw:     gw,
	}
}

// Current returns a snapshot of the session state.
func (m *Manager) Current() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Subscribe registers fn to be called synchronously after every state
// transition. Subscribers must not call back into the manager.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Initialize resolves the stored credential record into a live session.
// It runs the startup verification at most once per process; later
// calls just report the current state. With no usable record it settles
// on anonymous without touching the network, discarding any partial
// record it found.
func (m *Manager) Initialize(ctx context.Context) Snapshot {
	m.mu.Lock()
	if m.initialized {
		snap := m.snapshotLocked()
		m.mu.Unlock()
		return snap
	}
	m.initialized = true
	m.mu.Unlock()

	rec, err := m.store.Load(ctx)
	if err != nil {
		log.Printf("Failed to read credential store, starting anonymous: %v", err)
		rec = nil
	}

	if rec == nil {
		return m.transition(StatusAnonymous, nil, "")
	}

	if rec.Token == "" || rec.Email == "" {
		// A partial record can't be verified and must not outlive the
		// restart; drop it like a failed verification.
		log.Printf("Stored credential record is incomplete, discarding it")
		return m.invalidate(ctx)
	}

	m.transition(StatusVerifying, nil, "")

	res := m.gw.FetchUser(ctx, rec.Email)
	if !res.Success {
		log.Printf("Session verification failed: %s", res.Error)
		return m.invalidate(ctx)
	}

	user, err := userFromPayload(res.User, rec)
	if err != nil {
		// A verified session without a usable role can't pass any
		// role gate, so it counts as a failed verification.
		log.Printf("Session verification returned an unusable user: %v", err)
		return m.invalidate(ctx)
	}

	if err := m.store.Save(ctx, recordFor(user, rec.Token)); err != nil {
		log.Printf("Failed to refresh credential store after verification: %v", err)
	}

	return m.transition(StatusAuthenticated, user, rec.Token)
}

// Login exchanges credentials for an authenticated session. On failure
// the state is left untouched and the server's message (or a generic
// fallback) comes back as the error. There are no retries.
func (m *Manager) Login(ctx context.Context, email, password string) (Snapshot, error) {
	res := m.gw.Login(ctx, email, password)
	if !res.Success {
		return m.Current(), errors.New(res.Error)
	}

	user, err := userFromPayload(res.User, nil)
	if err != nil {
		log.Printf("Login succeeded but the payload was unusable: %v", err)
		return m.Current(), errors.New("Login failed")
	}

	if err := m.store.Save(ctx, recordFor(user, res.Token)); err != nil {
		// The in-memory session is still good; only persistence across
		// a restart is affected.
		log.Printf("Failed to persist credential record: %v", err)
	}

	return m.transition(StatusAuthenticated, user, res.Token), nil
}

// Logout tears the session down. The remote call is best-effort; from
// the caller's perspective this always succeeds.
func (m *Manager) Logout(ctx context.Context) Snapshot {
	m.gw.Logout(ctx)

	if err := m.store.Clear(ctx); err != nil {
		log.Printf("Failed to clear credential store on logout: %v", err)
	}

	return m.transition(StatusAnonymous, nil, "")
}

// invalidate clears local state after a failed verification so no
// partial credentials linger.
func (m *Manager) invalidate(ctx context.Context) Snapshot {
	if err := m.store.Clear(ctx); err != nil {
		log.Printf("Failed to clear credential store after invalid session: %v", err)
	}
	return m.transition(StatusAnonymous, nil, "")
}

func (m *Manager) transition(status Status, user *User, token string) Snapshot {
	m.mu.Lock()
	m.status = status
	m.user = user
	m.token = token
	snap := m.snapshotLocked()
	subs := make([]func(Snapshot), len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}

	return snap
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{Status: m.status, Token: m.token}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// userFromPayload turns a wire user into a domain user. The role must
// parse; id and name may fall back to the stored record when the
// verify response omits them.
func userFromPayload(p gateway.UserPayload, stored *credstore.Record) (*User, error) {
	role, err := ParseRole(p.Role)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:    p.ID.String(),
		Name:  p.Name,
		Email: p.Email,
		Role:  role,
	}

	if stored != nil {
		if u.ID == "" {
			u.ID = stored.ID
		}
		if u.Name == "" {
			u.Name = stored.Name
		}
		if u.Email == "" {
			u.Email = stored.Email
		}
	}

	return u, nil
}

func recordFor(u *User, token string) credstore.Record {
	return credstore.Record{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		Token: token,
	}
}
