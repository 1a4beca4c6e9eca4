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
	"talentboard/internal/service"
)

func (h *Handler) CandidateDetailPage(w http.ResponseWriter, r *http.Request) {
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
		h.Logger.Error("candidate detail failed", "candidate_id", id, "error", err)
		renderHTML(w, http.StatusBadGateway, errorPage("Unavailable", "Could not load the candidate. Please try again."))
		return
	}

	tab := r.URL.Query().Get("tab")
	switch tab {
	case "schedule", "notes", "feedback":
	default:
		tab = "profile"
	}

	sess := sessionFromRequest(r)
	renderHTML(w, http.StatusOK, appPage(
		pageCtx(r, detail.Candidate.FullName(), "candidates"),
		candidateDetailBody(detail, tab, sess.Role),
	))
}

func candidateDetailBody(detail service.CandidateDetail, active string, role domain.Role) Node {
	c := detail.Candidate

	tabs := []struct{ Key, Label string }{
		{"profile", "Profile"},
		{"schedule", fmt.Sprintf("Schedule (%d)", len(detail.Todos))},
		{"notes", fmt.Sprintf("Notes (%d)", len(detail.Posts))},
		{"feedback", fmt.Sprintf("Feedback (%d)", len(detail.Feedback))},
	}
	tabNodes := make([]Node, 0, len(tabs))
	for _, t := range tabs {
		className := "tab-link"
		if t.Key == active {
			className += " active"
		}
		tabNodes = append(tabNodes, A(
			Href(fmt.Sprintf("/candidates/%d?tab=%s", c.ID, t.Key)),
			Class(className),
			Text(t.Label),
		))
	}

	var body Node
	switch active {
	case "schedule":
		body = scheduleTab(detail.Todos)
	case "notes":
		body = notesTab(detail.Posts)
	case "feedback":
		body = feedbackTab(detail.Feedback)
	default:
		body = profileTab(c)
	}

	var feedbackCTA Node
	if role == domain.RolePanelist {
		feedbackCTA = A(
			Href(fmt.Sprintf("/candidates/%d/feedback", c.ID)),
			Class("btn btn-primary"),
			Text("Give Feedback"),
		)
	}

	return Group([]Node{
		Div(
			Class(cardClass("candidate-header")),
			Div(
				Class("d-flex flex-items-center gap-3"),
				Span(Class("avatar avatar-lg"), Text(c.Initials())),
				Div(
					H2(Class("mb-0"), Text(c.FullName())),
					P(Class(mutedClass()), Text(fmt.Sprintf("%s | %s", c.Company.Name, c.Company.Department))),
				),
			),
			feedbackCTA,
		),
		Nav(Class("tab-bar"), Group(tabNodes)),
		body,
	})
}

func profileTab(c domain.Candidate) Node {
	row := func(label, value string) Node {
		if value == "" {
			value = "-"
		}
		return Tr(Th(Text(label)), Td(Text(value)))
	}
	return Div(
		Class(cardClass()),
		Table(
			Class("detail-table"),
			TBody(
				row("Email", c.Email),
				row("Phone", c.Phone),
				row("Company", c.Company.Name),
				row("Department", c.Company.Department),
			),
		),
	)
}

func scheduleTab(todos []domain.Todo) Node {
	if len(todos) == 0 {
		return emptyStateCard("No interviews scheduled for this candidate.")
	}
	rows := make([]Node, 0, len(todos))
	for _, td := range todos {
		status := "Pending"
		tone := "status-pending"
		if td.Completed {
			status = "Completed"
			tone = "status-done"
		}
		rows = append(rows, Tr(
			Td(Text(td.Todo)),
			Td(Span(Class("status-label "+tone), Text(status))),
		))
	}
	return Div(
		Class(cardClass()),
		Table(
			Class("data-table"),
			THead(Tr(Th(Text("Interview Step")), Th(Text("Status")))),
			TBody(Group(rows)),
		),
	)
}

func notesTab(posts []domain.Post) Node {
	if len(posts) == 0 {
		return emptyStateCard("No notes recorded for this candidate.")
	}
	cards := make([]Node, 0, len(posts))
	for _, p := range posts {
		tags := make([]Node, 0, len(p.Tags))
		for _, tag := range p.Tags {
			tags = append(tags, Span(Class("tag"), Text(tag)))
		}
		cards = append(cards, Div(
			Class(cardClass("note-card")),
			H3(Class("mb-1"), Text(p.Title)),
			P(Text(p.Body)),
			Div(
				Class("d-flex flex-items-center gap-2"),
				Group(tags),
				Span(Class(mutedClass()), Text(fmt.Sprintf("%d likes / %d dislikes", p.Reactions.Likes, p.Reactions.Dislikes))),
			),
		))
	}
	return Group(cards)
}

func feedbackTab(entries []domain.Feedback) Node {
	if len(entries) == 0 {
		return emptyStateCard("No feedback submitted yet.")
	}
	cards := make([]Node, 0, len(entries))
	for _, f := range entries {
		cards = append(cards, Div(
			Class(cardClass("feedback-card")),
			Div(
				Class("d-flex flex-justify-between flex-items-center"),
				Strong(Text(f.ReviewerName)),
				Span(Class("score "+scoreTone(f.OverallScore)), Text(fmt.Sprintf("%d/100", f.OverallScore))),
			),
			P(Strong(Text("Strengths: ")), Text(f.Strengths)),
			P(Strong(Text("Areas for improvement: ")), Text(f.AreasForImprovement)),
			feedbackComments(f.Comments),
			P(Class(mutedClass()), Text(formatTime(f.SubmittedAt))),
		))
	}
	return Group(cards)
}

func feedbackComments(comments string) Node {
	if comments == "" {
		return nil
	}
	return P(Strong(Text("Comments: ")), Text(comments))
}
