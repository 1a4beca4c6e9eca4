// Package query implements the candidate list query controller. Each
// authenticated session gets one controller holding its search term, page,
// and last good result set. Term edits are debounced, and fetches carry a
// monotonically increasing sequence number so that only the most recently
// dispatched fetch may update state, regardless of arrival order.
package query

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"talentboard/internal/domain"
)

// DefaultDebounce is how long a term edit sits before it triggers a fetch.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher loads candidate pages from the ATS.
type Fetcher interface {
	ListCandidates(ctx context.Context, skip, limit int) (domain.CandidatePage, error)
	SearchCandidates(ctx context.Context, query string) (domain.CandidatePage, error)
}

// Status is the controller's loading state.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller. On a failed fetch, Items and Total
// keep their previous values so the view never blanks out under the user.
type State struct {
	Term   string
	Page   domain.PageRequest
	Items  []domain.Candidate
	Total  int
	Status Status
	Err    error
}

type timer interface {
	Stop() bool
}

type clock interface {
	AfterFunc(d time.Duration, fn func()) timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) timer { return time.AfterFunc(d, fn) }

// Controller serializes query state changes for one session.
type Controller struct {
	fetcher  Fetcher
	logger   *slog.Logger
	debounce time.Duration
	clock    clock

	mu        sync.Mutex
	state     State
	seq       uint64
	pending   timer
	closed    bool
	listeners []func(State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce overrides the term-edit debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func withClock(cl clock) Option {
	return func(c *Controller) { c.clock = cl }
}

// NewController creates a Controller over the given fetcher.
func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:  fetcher,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		clock:    realClock{},
		state: State{
			Page: domain.PageRequest{PageSize: domain.DefaultPageSize},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a listener called after every state change.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// EditTerm records a term edit. A changed term resets the page to the first
// one. The fetch fires only after the debounce interval passes with no
// further edits; a burst of keystrokes produces a single fetch carrying the
// final term.
func (c *Controller) EditTerm(ctx context.Context, term string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if term != c.state.Term {
		c.state.Term = term
		c.state.Page.PageIndex = 0
	}
	if c.pending != nil {
		c.pending.Stop()
	}
	c.pending = c.clock.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		c.pending = nil
		if c.closed {
			c.mu.Unlock()
			return
		}
		seq := c.beginLocked()
		term, page := c.state.Term, c.state.Page
		c.mu.Unlock()
		go c.fetch(ctx, seq, term, page)
	})
	c.mu.Unlock()
	c.notify()
}

// SetPage moves to the given page for the current term and fetches
// immediately. Debounce applies to typing, not to paging.
func (c *Controller) SetPage(ctx context.Context, pageIndex int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	c.state.Page.PageIndex = pageIndex
	seq := c.beginLocked()
	term, page := c.state.Term, c.state.Page
	c.mu.Unlock()
	c.notify()
	go c.fetch(ctx, seq, term, page)
}

// Query sets the term and page together and fetches in the calling
// goroutine, returning the resulting state. It is the request/response
// surface used by the web and JSON handlers, which receive term and page
// already settled; EditTerm and SetPage are the edit-driven surface for
// callers streaming raw input. The fetch still runs through the sequence
// check, so an overlapping slower fetch cannot clobber it.
func (c *Controller) Query(ctx context.Context, term string, pageIndex int) State {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return State{Status: StatusIdle}
	}
	if term != c.state.Term {
		c.state.Term = term
		c.state.Page.PageIndex = 0
	} else if pageIndex >= 0 {
		c.state.Page.PageIndex = pageIndex
	}
	seq := c.beginLocked()
	page := c.state.Page
	c.mu.Unlock()

	c.fetch(ctx, seq, term, page)
	return c.Snapshot()
}

// Close discards any pending debounce and in-flight fetches. A closed
// controller ignores all further calls.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	// Bump past every dispatched fetch so none of them can apply.
	c.seq++
}

// beginLocked claims the next sequence number and marks the state loading.
// Caller holds c.mu.
func (c *Controller) beginLocked() uint64 {
	c.seq++
	c.state.Status = StatusLoading
	return c.seq
}

func (c *Controller) fetch(ctx context.Context, seq uint64, term string, page domain.PageRequest) {
	var (
		result domain.CandidatePage
		err    error
	)
	if term == "" {
		result, err = c.fetcher.ListCandidates(ctx, page.Offset(), page.Limit())
	} else {
		result, err = c.fetcher.SearchCandidates(ctx, term)
		if err == nil {
			result = slicePage(result, page)
		}
	}

	c.mu.Lock()
	if c.closed || seq != c.seq {
		// A newer fetch was dispatched, or the controller closed. This
		// result is stale; drop it on the floor.
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.logger.Warn("candidate fetch failed", "term", term, "page", page.PageIndex, "error", err)
		c.state.Status = StatusError
		c.state.Err = err
	} else {
		c.state.Items = result.Items
		c.state.Total = result.Total
		c.state.Status = StatusReady
		c.state.Err = nil
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	listeners := make([]func(State), len(c.listeners))
	copy(listeners, c.listeners)
	state := c.state
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// slicePage pages a full search result set locally. The ATS search endpoint
// returns all matches at once, so paging happens here.
func slicePage(full domain.CandidatePage, page domain.PageRequest) domain.CandidatePage {
	page = page.Clamp(full.Total)
	start := page.Offset()
	if start > len(full.Items) {
		start = len(full.Items)
	}
	end := start + page.Limit()
	if end > len(full.Items) {
		end = len(full.Items)
	}
	return domain.CandidatePage{Items: full.Items[start:end], Total: full.Total}
}
