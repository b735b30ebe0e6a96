package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxPlayers is used when a session is created without an explicit
// player cap.
const DefaultMaxPlayers = 6

// DefaultSessionTTL is how long a never-joined session survives before the
// sweep reaps it.
const DefaultSessionTTL = time.Hour

// Registry owns every active session and the player-to-session mapping. It is
// constructed at process start and passed explicitly to whatever dispatches
// commands; there is no package-level instance.
//
// Lock order is registry before session; command handlers that already hold a
// session lock never call back into the registry.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	players    map[string]string // player id -> session id
	sessionTTL time.Duration
}

type RegistryOpt func(*Registry)

// WithSessionTTL sets how long an empty, never-started session is retained.
func WithSessionTTL(d time.Duration) RegistryOpt {
	return func(r *Registry) {
		r.sessionTTL = d
	}
}

func NewRegistry(opts ...RegistryOpt) *Registry {
	r := &Registry{
		sessions:   map[string]*Session{},
		players:    map[string]string{},
		sessionTTL: DefaultSessionTTL,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create makes a new empty session from the board template and returns its
// id. A non-positive maxPlayers falls back to DefaultMaxPlayers. Create never
// fails.
func (r *Registry) Create(maxPlayers int) string {
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}

	id := uuid.NewString()[:8]
	sess := newSession(id, maxPlayers)

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	slog.Info("created session", "session", id, "max_players", maxPlayers)
	return id
}

// Join admits a player into a session. Join order fixes turn order.
func (r *Registry) Join(sessionID string, p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Started {
		return ErrAlreadyStarted
	}
	if sess.PlayerCount() >= sess.MaxPlayers {
		return ErrSessionFull
	}

	sess.addPlayer(p)
	r.players[p.ID] = sessionID

	slog.Info("player joined", "session", sessionID, "player", p.ID, "name", p.Name)
	return nil
}

// Leave removes a player from its session, deleting the session when its
// last player departs. The player-to-session mapping is always cleared.
// Unknown players are ignored.
func (r *Registry) Leave(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessionID, ok := r.players[playerID]
	if !ok {
		return
	}
	delete(r.players, playerID)

	sess, ok := r.sessions[sessionID]
	if !ok {
		return
	}

	sess.Lock()
	sess.removePlayer(playerID)
	empty := sess.PlayerCount() == 0
	sess.Unlock()

	if empty {
		delete(r.sessions, sessionID)
		slog.Info("deleted empty session", "session", sessionID)
	}
}

// Start begins a session's game. Requires at least two players and a session
// that has not already started.
func (r *Registry) Start(sessionID string) error {
	r.mu.RLock()
	sess, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.start(); err != nil {
		return err
	}

	slog.Info("started session", "session", sessionID, "players", sess.PlayerCount())
	return nil
}

// Get returns the session with the given id, or nil. Absence is a normal
// outcome, not an error.
func (r *Registry) Get(sessionID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sessions[sessionID]
}

// ByPlayer returns the session the given player belongs to, or nil.
func (r *Registry) ByPlayer(playerID string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessionID, ok := r.players[playerID]
	if !ok {
		return nil
	}
	return r.sessions[sessionID]
}

// Sweep reaps sessions that were created but never joined and have outlived
// ttl. Sessions with players are removed on their last Leave instead.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, sess := range r.sessions {
		sess.Lock()
		stale := sess.PlayerCount() == 0 && sess.CreatedAt.Before(cutoff)
		sess.Unlock()

		if stale {
			delete(r.sessions, id)
			removed++
			slog.Info("reaped abandoned session", "session", id)
		}
	}
	return removed
}

// Tick runs one sweep pass with the configured TTL. It satisfies the driver
// Manager interface.
func (r *Registry) Tick(ctx context.Context) error {
	r.Sweep(r.sessionTTL)
	return nil
}
