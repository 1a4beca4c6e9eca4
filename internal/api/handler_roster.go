package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"talentboard/internal/domain"
	"talentboard/internal/service"
)

type rosterPageResponse struct {
	Items      []domain.RosterMember `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// ListRoster serves the admin roster with the same search/role filters as
// the admin panel.
func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	filter := domain.RosterFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
		Page:   domain.PageRequest{PageSize: service.AdminPageSize},
	}
	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := domain.ParseRole(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.Role = &role
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filter.Page.PageIndex = n
		}
	}

	items, total, err := h.roster.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.RosterMember{}
	}
	writeJSON(w, http.StatusOK, rosterPageResponse{
		Items:      items,
		Total:      total,
		Page:       filter.Page.PageIndex,
		PageSize:   filter.Page.Limit(),
		TotalPages: filter.Page.TotalPages(total),
	})
}

type roleUpdateRequest struct {
	Role string `json:"role"`
}

func (h *Handler) UpdateRosterRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil || id <= 0 {
		writeErrorStatus(w, http.StatusBadRequest, "member id must be a positive integer")
		return
	}

	var req roleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	m, err := h.roster.UpdateRole(r.Context(), id, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
