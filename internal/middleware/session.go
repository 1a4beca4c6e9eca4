// Package middleware provides HTTP middleware for session authentication,
// request IDs, and rate limiting.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"talentboard/internal/domain"
	"talentboard/internal/notify"
	"talentboard/internal/session"
)

// SessionRestorer resolves a session ID back to a full session.
type SessionRestorer interface {
	Restore(ctx context.Context, sid string) (domain.Session, error)
}

// SessionAuth returns middleware that restores the session named by the
// request's cookie and puts it on the context. Requests without a usable
// session pass through anonymous; route guards downstream decide what that
// means. A stale or unreadable cookie is cleared so it is not re-presented
// on every request.
func SessionAuth(store SessionRestorer, secret []byte, secure bool, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sid, err := session.ParseToken(secret, cookie.Value)
			if err != nil {
				session.ClearCookie(w, secure)
				next.ServeHTTP(w, r)
				return
			}

			sess, err := store.Restore(r.Context(), sid)
			if err != nil {
				session.ClearCookie(w, secure)

				var malformed *domain.MalformedSessionError
				var notFound *domain.NotFoundError
				switch {
				case errors.As(err, &malformed):
					// Recovered by discarding; to the user this is just an
					// expired session.
					notify.Info(w, "Your session has expired. Please sign in again.")
				case errors.As(err, &notFound):
					// Expired or logged out elsewhere; nothing to say.
				default:
					logger.Error("session restore failed", "session_id", sid, "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), sess)))
		})
	}
}

// SessionID returns the session ID carried by the request cookie, or "".
// Handlers that key per-session state (the candidate query controllers) use
// this without re-restoring the session.
func SessionID(r *http.Request, secret []byte) string {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	sid, err := session.ParseToken(secret, cookie.Value)
	if err != nil {
		return ""
	}
	return sid
}
