package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talentboard/internal/domain"
	"talentboard/internal/guard"
	"talentboard/internal/notify"
	"talentboard/internal/ui/assets"
)

func MountRoutes(r chi.Router, h *Handler, sessionAuth func(http.Handler) http.Handler) {
	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(sessionAuth)
		r.Use(notify.Pop)
		r.Use(h.EnsureCSRFToken)
		r.Use(h.RequireCSRF)

		r.Get("/login", h.LoginPage)
		r.Post("/login", h.LoginSubmit)
		r.Post("/logout", h.Logout)

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			if sess, ok := domain.SessionFromContext(req.Context()); ok {
				http.Redirect(w, req, guard.DefaultPath(sess.Role), http.StatusSeeOther)
				return
			}
			http.Redirect(w, req, "/login", http.StatusSeeOther)
		})

		anyRole := guard.RequireRoles(h.Store.Ready)
		panelistOnly := guard.RequireRoles(h.Store.Ready, domain.RolePanelist)
		adminOnly := guard.RequireRoles(h.Store.Ready, domain.RoleAdmin)

		r.Group(func(r chi.Router) {
			r.Use(anyRole)
			r.Get("/dashboard", h.DashboardPage)
			r.Get("/candidates", h.CandidatesPage)
			r.Get("/candidates/{candidateID}", h.CandidateDetailPage)
		})

		r.Group(func(r chi.Router) {
			r.Use(panelistOnly)
			r.Get("/candidates/{candidateID}/feedback", h.FeedbackFormPage)
			r.Post("/candidates/{candidateID}/feedback", h.FeedbackSubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/admin", h.AdminPage)
			r.Post("/admin/members/{memberID}/role", h.AdminUpdateRole)
			r.Post("/admin/members/{memberID}", h.AdminEditMember)
		})
	})
}
