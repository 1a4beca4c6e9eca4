package query

import (
	"sync"
	"time"
)

// DefaultIdleTTL is how long a controller may sit unused before eviction.
const DefaultIdleTTL = 30 * time.Minute

type registryEntry struct {
	ctrl     *Controller
	lastUsed time.Time
}

// Registry maps session IDs to their query controllers, creating them on
// first use and closing them on logout or after sitting idle.
type Registry struct {
	factory func() *Controller
	idleTTL time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewRegistry creates a Registry. factory builds a fresh controller for a
// session seen for the first time.
func NewRegistry(factory func() *Controller, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{
		factory: factory,
		idleTTL: idleTTL,
		now:     time.Now,
		entries: make(map[string]*registryEntry),
	}
}

// Get returns the controller for the session, creating one if needed.
func (r *Registry) Get(sessionID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		e = &registryEntry{ctrl: r.factory()}
		r.entries[sessionID] = e
	}
	e.lastUsed = r.now()
	return e.ctrl
}

// Close closes and removes the session's controller, if present.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()

	if ok {
		e.ctrl.Close()
	}
}

// EvictIdle closes controllers unused for longer than the idle TTL and
// reports how many were evicted.
func (r *Registry) EvictIdle() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*Controller
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			evicted = append(evicted, e.ctrl)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, ctrl := range evicted {
		ctrl.Close()
	}
	return len(evicted)
}

// Len reports how many controllers are live.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
