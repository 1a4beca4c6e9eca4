package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"talentboard/internal/service"
)

type feedbackRequest struct {
	OverallScore        int    `json:"overallScore"`
	Strengths           string `json:"strengths"`
	AreasForImprovement string `json:"areasForImprovement"`
	Comments            string `json:"comments"`
}

// SubmitFeedback records panelist feedback for a candidate. The panelist
// role check happens in the route middleware; the service enforces it again.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "candidateID"))
	if err != nil || id <= 0 {
		writeErrorStatus(w, http.StatusBadRequest, "candidate id must be a positive integer")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fb, err := h.feedback.Submit(r.Context(), sessionFrom(r), service.FeedbackInput{
		CandidateID:         id,
		OverallScore:        req.OverallScore,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
		Comments:            req.Comments,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}
