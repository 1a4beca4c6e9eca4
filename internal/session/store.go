// Package session implements the server-side session store: login against
// the ATS, persistence to SQLite, startup rehydration, and observer
// notification. The store is the single writer of session storage; every
// other component reads sessions through it.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"talentboard/internal/db/repository"
	"talentboard/internal/domain"
)

// Authenticator verifies credentials against the ATS and returns the
// authenticated identity.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (domain.Identity, error)
}

// EventKind discriminates session lifecycle events.
type EventKind string

const (
	EventLogin  EventKind = "login"
	EventLogout EventKind = "logout"
)

// Event describes a session state change. Session is the zero value for
// logout events.
type Event struct {
	Kind      EventKind
	SessionID string
	Session   domain.Session
}

// Listener receives session events. Listeners are called synchronously
// after the change has been persisted, so a listener that reads back
// through the store always observes the new state.
type Listener func(Event)

type entry struct {
	sess      domain.Session
	expiresAt time.Time
}

// Store manages authenticated sessions. Sessions are kept in memory for
// fast lookup and persisted as JSON payloads so they survive restarts.
type Store struct {
	repo   *repository.SessionRepo
	auth   Authenticator
	ttl    time.Duration
	logger *slog.Logger

	// Injectable for tests.
	now   func() time.Time
	newID func() string

	mu        sync.RWMutex
	sessions  map[string]entry
	ready     bool
	listeners []Listener
}

// NewStore creates a Store. The store is not ready until Rehydrate has run.
func NewStore(repo *repository.SessionRepo, auth Authenticator, ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		repo:     repo,
		auth:     auth,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]entry),
	}
}

// Rehydrate loads every active persisted session into memory. Payloads that
// fail to deserialize or validate are discarded from storage; the holder is
// simply logged out next time they show up. Protected views stay pending
// until this has completed once.
func (s *Store) Rehydrate(ctx context.Context) error {
	payloads, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}

	loaded := make(map[string]entry, len(payloads))
	for id, payload := range payloads {
		sess, err := decodeSession(payload)
		if err != nil {
			s.logger.Warn("discarding unreadable session", "session_id", id, "error", err)
			if derr := s.repo.Delete(ctx, id); derr != nil {
				s.logger.Error("failed to discard session", "session_id", id, "error", derr)
			}
			continue
		}
		loaded[id] = entry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	}

	s.mu.Lock()
	s.sessions = loaded
	s.ready = true
	s.mu.Unlock()

	s.logger.Info("session store rehydrated", "sessions", len(loaded))
	return nil
}

// Ready reports whether the initial rehydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Restore returns the session for sid. Absent or expired sessions yield a
// NotFoundError. An unreadable persisted payload is discarded and yields a
// MalformedSessionError, which callers surface as an ordinary "session
// expired" notice rather than a failure.
func (s *Store) Restore(ctx context.Context, sid string) (domain.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[sid]
	s.mu.RUnlock()

	if ok {
		if s.now().After(e.expiresAt) {
			_ = s.Logout(ctx, sid)
			return domain.Session{}, domain.ErrNotFound("session %s expired", sid)
		}
		return e.sess, nil
	}

	// Not in memory. The row may still exist if it was written before the
	// last restart but after rehydration listed rows (or if memory was
	// pruned); fall back to storage.
	payload, err := s.repo.GetPayload(ctx, sid)
	if err != nil {
		return domain.Session{}, err
	}
	sess, err := decodeSession(payload)
	if err != nil {
		s.logger.Warn("discarding unreadable session", "session_id", sid, "error", err)
		if derr := s.repo.Delete(ctx, sid); derr != nil {
			return domain.Session{}, derr
		}
		return domain.Session{}, domain.ErrMalformedSession("session %s unreadable: %v", sid, err)
	}

	s.mu.Lock()
	s.sessions[sid] = entry{sess: sess, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return sess, nil
}

// Login authenticates the credentials against the ATS, binds the
// client-asserted role, persists the session, and only then notifies
// listeners. On any failure, existing state is left untouched.
func (s *Store) Login(ctx context.Context, username, password string, role domain.Role) (string, domain.Session, error) {
	if !role.Valid() {
		return "", domain.Session{}, domain.ErrValidation("unknown role %q", role)
	}

	identity, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return "", domain.Session{}, err
	}

	sess := domain.Session{
		Identity:  identity,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := sess.Validate(); err != nil {
		return "", domain.Session{}, err
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return "", domain.Session{}, err
	}

	sid := s.newID()
	expiresAt := s.now().Add(s.ttl)
	if err := s.repo.Save(ctx, sid, payload, expiresAt); err != nil {
		return "", domain.Session{}, err
	}

	s.mu.Lock()
	s.sessions[sid] = entry{sess: sess, expiresAt: expiresAt}
	s.mu.Unlock()

	s.logger.Info("login", "session_id", sid, "username", identity.Username, "role", role)
	s.notify(Event{Kind: EventLogin, SessionID: sid, Session: sess})

	return sid, sess, nil
}

// Logout removes the session. Logging out an absent session is a no-op and
// produces no event.
func (s *Store) Logout(ctx context.Context, sid string) error {
	if err := s.repo.Delete(ctx, sid); err != nil {
		return err
	}

	s.mu.Lock()
	_, existed := s.sessions[sid]
	delete(s.sessions, sid)
	s.mu.Unlock()

	if existed {
		s.logger.Info("logout", "session_id", sid)
		s.notify(Event{Kind: EventLogout, SessionID: sid})
	}
	return nil
}

// Subscribe registers a listener for session lifecycle events.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// PruneExpired drops expired sessions from storage and memory.
func (s *Store) PruneExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	s.mu.Lock()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	return n, nil
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// decodeSession unmarshals and validates a persisted payload. Any failure
// means the payload is unusable as a whole; partial sessions never escape.
func decodeSession(payload []byte) (domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.Session{}, err
	}
	if err := sess.Validate(); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}
