// Package session holds the client-side view of the authenticated user and
// the route guard that consults it.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/greatochuko/fobeworkLMS/internal/domain"
)

// State describes what the client currently knows about the session.
type State int

const (
	// StateUnresolved means the initial session probe has not completed yet.
	StateUnresolved State = iota
	// StateAbsent means there is no authenticated session.
	StateAbsent
	// StatePresent means a user is authenticated.
	StatePresent
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateAbsent:
		return "absent"
	case StatePresent:
		return "present"
	default:
		return "unknown"
	}
}

// Resolver fetches the current session's user from the server.
type Resolver func(ctx context.Context) (*domain.User, error)

// Store is the process-wide session state. It starts Unresolved; Bootstrap
// performs exactly one session probe per process regardless of how many
// callers ask, and every failure mode of that probe resolves to Absent.
type Store struct {
	mu      sync.RWMutex
	state   State
	user    *domain.User
	once    sync.Once
	resolve Resolver
	logger  *slog.Logger
}

// NewStore creates a session store. The resolver is typically api.Client.Session.
func NewStore(resolve Resolver, logger *slog.Logger) *Store {
	return &Store{
		state:   StateUnresolved,
		resolve: resolve,
		logger:  logger,
	}
}

// Bootstrap resolves the initial session state. Concurrent callers block
// until the single underlying probe finishes; later callers return
// immediately with the already-resolved state.
func (s *Store) Bootstrap(ctx context.Context) State {
	s.once.Do(func() {
		user, err := s.resolve(ctx)
		if err != nil {
			// No session, expired session, or an unreachable server all look
			// the same to the client: not authenticated.
			s.logger.DebugContext(ctx, "session bootstrap resolved to absent",
				slog.String("error", err.Error()),
			)
			s.set(StateAbsent, nil)
			return
		}
		s.set(StatePresent, user)
	})

	state, _ := s.Current()
	return state
}

// Current returns the session state and, when present, the user.
func (s *Store) Current() (State, *domain.User) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.user
}

// SetIdentity records a newly authenticated or freshly updated user. Called
// after login, register, and profile updates.
func (s *Store) SetIdentity(user *domain.User) {
	s.set(StatePresent, user)
}

// Clear drops the session, moving the store to Absent. Called after logout
// and after the server rejects the session.
func (s *Store) Clear() {
	s.set(StateAbsent, nil)
}

func (s *Store) set(state State, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
}
