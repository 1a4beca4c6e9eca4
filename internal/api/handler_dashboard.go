package api

import (
	"net/http"

	"talentboard/internal/domain"
)

type kpiResponse struct {
	domain.KPISnapshot
	Completed int                    `json:"completed"`
	Activity  []domain.ActivityEntry `json:"activity"`
}

// KPIs serves the dashboard figures plus the recent-activity feed.
func (h *Handler) KPIs(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Snapshot()
	writeJSON(w, http.StatusOK, kpiResponse{
		KPISnapshot: snap,
		Completed:   snap.Completed(),
		Activity:    h.dashboard.Activity(r.Context()),
	})
}
