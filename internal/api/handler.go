// Package api exposes a small JSON API over the same session store and
// services as the web UI. It exists for programmatic clients, chiefly the
// talentboard CLI; authentication uses the session token as a bearer token.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"talentboard/internal/domain"
	"talentboard/internal/query"
	"talentboard/internal/service"
	"talentboard/internal/session"
)

type Handler struct {
	store      *session.Store
	queries    *query.Registry
	candidates *service.CandidateService
	dashboard  *service.DashboardService
	roster     *service.RosterService
	feedback   *service.FeedbackService

	secret []byte
	ttl    time.Duration
	logger *slog.Logger
}

func NewHandler(
	store *session.Store,
	queries *query.Registry,
	candidates *service.CandidateService,
	dashboard *service.DashboardService,
	roster *service.RosterService,
	feedback *service.FeedbackService,
	secret []byte,
	ttl time.Duration,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:      store,
		queries:    queries,
		candidates: candidates,
		dashboard:  dashboard,
		roster:     roster,
		feedback:   feedback,
		secret:     secret,
		ttl:        ttl,
		logger:     logger,
	}
}

// MountRoutes attaches the JSON API under the given router, expected to be
// mounted at /api/v1.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Get("/healthz", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(h.requireBearerSession())

		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
		r.Get("/kpis", h.KPIs)
		r.Get("/candidates", h.ListCandidates)
		r.Get("/candidates/{candidateID}", h.GetCandidate)
		r.With(h.requireRole(domain.RolePanelist)).
			Post("/candidates/{candidateID}/feedback", h.SubmitFeedback)

		adminOnly := h.requireRole(domain.RoleAdmin)
		r.With(adminOnly).Get("/roster", h.ListRoster)
		r.With(adminOnly).Put("/roster/{memberID}/role", h.UpdateRosterRole)
	})
}

type sessionKey struct{}

// requireBearerSession authenticates via "Authorization: Bearer <token>",
// where the token is the same signed session token the UI sets as a cookie.
func (h *Handler) requireBearerSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.store.Ready() {
				w.Header().Set("Retry-After", "1")
				writeErrorStatus(w, http.StatusServiceUnavailable, "session store is warming up")
				return
			}

			token := bearerToken(r)
			if token == "" {
				writeErrorStatus(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			sid, err := session.ParseToken(h.secret, token)
			if err != nil {
				writeErrorStatus(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}
			sess, err := h.store.Restore(r.Context(), sid)
			if err != nil {
				writeErrorStatus(w, http.StatusUnauthorized, "session expired or unknown")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, sess)
			ctx = context.WithValue(ctx, sessionIDKey{}, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type sessionIDKey struct{}

func (h *Handler) requireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessionFrom(r)
			if !sess.Role.In(roles) {
				writeErrorStatus(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFrom(r *http.Request) domain.Session {
	sess, _ := r.Context().Value(sessionKey{}).(domain.Session)
	return sess
}

func sessionIDFrom(r *http.Request) string {
	sid, _ := r.Context().Value(sessionIDKey{}).(string)
	return sid
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  h.store.Ready(),
	})
}
