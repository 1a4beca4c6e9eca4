// Package guard decides whether a request may see a protected view. The
// decision logic is a pure function over the store readiness, the current
// session, and the roles a route admits; the HTTP middleware only carries
// the decision out.
package guard

import (
	"net/http"

	"talentboard/internal/domain"
)

// Decision is the outcome of evaluating a protected route.
type Decision int

const (
	// Pending means session rehydration has not completed; render a
	// neutral loading state rather than guessing logged-in or logged-out.
	Pending Decision = iota
	// Render means the session may see the view.
	Render
	// RedirectToLogin means no session is present.
	RedirectToLogin
	// RedirectToDefault means a session is present but its role does not
	// admit this view; send it to its own landing page instead.
	RedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDefault:
		return "redirect_to_default"
	default:
		return "unknown"
	}
}

// Evaluate decides what to do with a request for a view admitting the given
// roles. An empty allowed set admits every authenticated session.
func Evaluate(ready bool, sess *domain.Session, allowed []domain.Role) Decision {
	if !ready {
		return Pending
	}
	if sess == nil || sess.Validate() != nil {
		return RedirectToLogin
	}
	if len(allowed) == 0 || sess.Role.In(allowed) {
		return Render
	}
	return RedirectToDefault
}

// DefaultPath is the landing page for a role, used when a session is
// redirected away from a view its role does not admit.
func DefaultPath(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}

// ReadyFunc reports whether the session store has finished rehydrating.
type ReadyFunc func() bool

// RequireRoles builds middleware enforcing the guard decision for a route.
// The session, if any, must already be on the request context.
func RequireRoles(ready ReadyFunc, allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *domain.Session
			if s, ok := domain.SessionFromContext(r.Context()); ok {
				sess = &s
			}

			switch Evaluate(ready(), sess, allowed) {
			case Render:
				next.ServeHTTP(w, r)
			case Pending:
				w.Header().Set("Retry-After", "1")
				http.Error(w, "warming up, retry shortly", http.StatusServiceUnavailable)
			case RedirectToLogin:
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			case RedirectToDefault:
				http.Redirect(w, r, DefaultPath(sess.Role), http.StatusSeeOther)
			}
		})
	}
}
