// Package ui renders the server-side dashboard: login, candidate browsing,
// feedback forms, and the admin roster panel.
package ui

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gomponents "maragu.dev/gomponents"

	"talentboard/internal/domain"
	"talentboard/internal/query"
	"talentboard/internal/service"
	"talentboard/internal/session"
)

type Handler struct {
	Store      *session.Store
	Queries    *query.Registry
	Candidates *service.CandidateService
	Dashboard  *service.DashboardService
	Roster     *service.RosterService
	Feedback   *service.FeedbackService

	SessionSecret []byte
	SessionTTL    time.Duration
	Production    bool
	Logger        *slog.Logger
}

func NewHandler(
	store *session.Store,
	queries *query.Registry,
	candidates *service.CandidateService,
	dashboard *service.DashboardService,
	roster *service.RosterService,
	feedback *service.FeedbackService,
	sessionSecret []byte,
	sessionTTL time.Duration,
	production bool,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Store:         store,
		Queries:       queries,
		Candidates:    candidates,
		Dashboard:     dashboard,
		Roster:        roster,
		Feedback:      feedback,
		SessionSecret: sessionSecret,
		SessionTTL:    sessionTTL,
		Production:    production,
		Logger:        logger,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

func sessionFromRequest(r *http.Request) domain.Session {
	sess, _ := domain.SessionFromContext(r.Context())
	return sess
}

func pageIndexFromRequest(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
