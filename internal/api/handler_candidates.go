package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"talentboard/internal/domain"
)

type candidatePageResponse struct {
	Items      []domain.Candidate `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
	Stale      bool               `json:"stale"` // true when values come from before a failed refresh
}

// ListCandidates serves a page of the candidate directory. With q= it runs
// the same debounced-query machinery as the UI, keyed by the caller's
// session, so UI and API share last-request-wins semantics.
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	pageIndex := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			pageIndex = n
		}
	}

	ctrl := h.queries.Get(sessionIDFrom(r))
	state := ctrl.Query(r.Context(), term, pageIndex)

	resp := candidatePageResponse{
		Items:      state.Items,
		Total:      state.Total,
		Page:       state.Page.PageIndex,
		PageSize:   state.Page.Limit(),
		TotalPages: state.Page.TotalPages(state.Total),
	}
	if resp.Items == nil {
		resp.Items = []domain.Candidate{}
	}
	if state.Err != nil {
		// Previous results are retained on error; mark them stale instead
		// of failing the request outright.
		resp.Stale = true
	}
	writeJSON(w, http.StatusOK, resp)
}

type candidateDetailResponse struct {
	Candidate domain.Candidate  `json:"candidate"`
	Todos     []domain.Todo     `json:"schedule"`
	Posts     []domain.Post     `json:"notes"`
	Feedback  []domain.Feedback `json:"feedback"`
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "candidateID"))
	if err != nil || id <= 0 {
		writeErrorStatus(w, http.StatusBadRequest, "candidate id must be a positive integer")
		return
	}

	detail, err := h.candidates.Detail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := candidateDetailResponse{
		Candidate: detail.Candidate,
		Todos:     detail.Todos,
		Posts:     detail.Posts,
		Feedback:  detail.Feedback,
	}
	if resp.Todos == nil {
		resp.Todos = []domain.Todo{}
	}
	if resp.Posts == nil {
		resp.Posts = []domain.Post{}
	}
	if resp.Feedback == nil {
		resp.Feedback = []domain.Feedback{}
	}
	writeJSON(w, http.StatusOK, resp)
}
