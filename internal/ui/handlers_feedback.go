package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"talentboard/internal/domain"
	"talentboard/internal/notify"
	"talentboard/internal/service"
)

func (h *Handler) FeedbackFormPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "candidateID"))
	if err != nil || id <= 0 {
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That candidate does not exist."))
		return
	}

	detail, err := h.Candidates.Detail(r.Context(), id)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That candidate does not exist."))
			return
		}
		h.Logger.Error("feedback form load failed", "candidate_id", id, "error", err)
		renderHTML(w, http.StatusBadGateway, errorPage("Unavailable", "Could not load the candidate. Please try again."))
		return
	}

	renderHTML(w, http.StatusOK, appPage(
		pageCtx(r, "Feedback for "+detail.Candidate.FullName(), "candidates"),
		feedbackFormBody(r, detail.Candidate, service.FeedbackInput{OverallScore: 50}, ""),
	))
}

func (h *Handler) FeedbackSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "candidateID"))
	if err != nil || id <= 0 {
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That candidate does not exist."))
		return
	}
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Form", "The submitted form could not be read."))
		return
	}

	score, err := formInt(r.Form, "overall_score")
	if err != nil {
		score = 0
	}
	input := service.FeedbackInput{
		CandidateID:         id,
		OverallScore:        score,
		Strengths:           formString(r.Form, "strengths"),
		AreasForImprovement: formString(r.Form, "areas_for_improvement"),
		Comments:            formString(r.Form, "comments"),
	}

	sess := sessionFromRequest(r)
	if _, err := h.Feedback.Submit(r.Context(), sess, input); err != nil {
		var verr *domain.ValidationError
		var denied *domain.AccessDeniedError
		switch {
		case errors.As(err, &verr):
			candidate, cerr := h.Candidates.Detail(r.Context(), id)
			if cerr != nil {
				renderHTML(w, http.StatusBadRequest, errorPage("Invalid Feedback", verr.Message))
				return
			}
			renderHTML(w, http.StatusOK, appPage(
				pageCtx(r, "Feedback for "+candidate.Candidate.FullName(), "candidates"),
				feedbackFormBody(r, candidate.Candidate, input, verr.Message),
			))
		case errors.As(err, &denied):
			renderHTML(w, http.StatusForbidden, errorPage("Access Denied", "Only panelists may submit feedback."))
		default:
			h.Logger.Error("feedback submit failed", "candidate_id", id, "error", err)
			notify.Error(w, "Failed to submit feedback. Please try again.")
			http.Redirect(w, r, fmt.Sprintf("/candidates/%d/feedback", id), http.StatusSeeOther)
		}
		return
	}

	notify.Success(w, "Feedback submitted successfully!")
	http.Redirect(w, r, fmt.Sprintf("/candidates/%d?tab=feedback", id), http.StatusSeeOther)
}

func feedbackFormBody(r *http.Request, c domain.Candidate, in service.FeedbackInput, errMsg string) Node {
	var banner Node
	if errMsg != "" {
		banner = Div(Class("flash flash-error"), Text(errMsg))
	}

	return Div(
		Class(cardClass("feedback-form")),
		P(Class(mutedClass()), Text(fmt.Sprintf("Assessing %s (%s, %s)", c.FullName(), c.Company.Name, c.Company.Department))),
		banner,
		Form(
			Method("post"),
			Action(fmt.Sprintf("/candidates/%d/feedback", c.ID)),
			csrfField(r),
			Div(
				Class("form-group"),
				Label(For("overall_score"), Text("Overall Score (1-100)")),
				Input(Type("range"), ID("overall_score"), Name("overall_score"),
					Min("1"), Max("100"), Value(strconv.Itoa(in.OverallScore)), Class("form-range")),
			),
			Div(
				Class("form-group"),
				Label(For("strengths"), Text("Strengths")),
				Textarea(ID("strengths"), Name("strengths"), Class("form-control"), Rows("3"), Required(),
					Text(in.Strengths)),
			),
			Div(
				Class("form-group"),
				Label(For("areas_for_improvement"), Text("Areas for Improvement")),
				Textarea(ID("areas_for_improvement"), Name("areas_for_improvement"), Class("form-control"), Rows("3"), Required(),
					Text(in.AreasForImprovement)),
			),
			Div(
				Class("form-group"),
				Label(For("comments"), Text("Additional Comments")),
				Textarea(ID("comments"), Name("comments"), Class("form-control"), Rows("3"),
					Text(in.Comments)),
			),
			Div(
				Class("d-flex gap-2"),
				Button(Type("submit"), Class("btn btn-primary"), Text("Submit Feedback")),
				A(Href(fmt.Sprintf("/candidates/%d", c.ID)), Class("btn"), Text("Cancel")),
			),
		),
	)
}
