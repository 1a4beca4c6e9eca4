package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"talentboard/internal/domain"
	mw "talentboard/internal/middleware"
	"talentboard/internal/query"
)

func (h *Handler) CandidatesPage(w http.ResponseWriter, r *http.Request) {
	sid := mw.SessionID(r, h.SessionSecret)
	ctrl := h.Queries.Get(sid)

	term := strings.TrimSpace(r.URL.Query().Get("q"))
	state := ctrl.Query(r.Context(), term, pageIndexFromRequest(r))

	sess := sessionFromRequest(r)
	renderHTML(w, http.StatusOK, appPage(
		pageCtx(r, "Candidates", "candidates"),
		candidatesBody(state, sess.Role),
	))
}

func candidatesBody(state query.State, role domain.Role) Node {
	nodes := []Node{candidateSearchCard(state.Term)}

	if state.Status == query.StatusError {
		nodes = append(nodes, Div(
			Class("flash flash-error"),
			Text("Could not refresh candidates. Showing the last loaded results."),
		))
	}

	if len(state.Items) == 0 {
		message := "No candidates yet."
		if state.Term != "" {
			message = fmt.Sprintf("No candidates match %q.", state.Term)
		}
		nodes = append(nodes, emptyStateCard(message))
		return Group(nodes)
	}

	rows := make([]Node, 0, len(state.Items))
	for _, c := range state.Items {
		rows = append(rows, candidateRow(c, role))
	}
	nodes = append(nodes,
		Div(
			Class(cardClass()),
			Table(
				Class("data-table"),
				THead(Tr(
					Th(Text("Candidate")),
					Th(Text("Contact")),
					Th(Text("Company")),
					Th(Text("Department")),
					Th(Text("")),
				)),
				TBody(Group(rows)),
			),
		),
		paginationCard("/candidates", candidateListParams(state.Term), state.Page, state.Total),
	)
	return Group(nodes)
}

func candidateListParams(term string) url.Values {
	params := url.Values{}
	if term != "" {
		params.Set("q", term)
	}
	return params
}

func candidateSearchCard(term string) Node {
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": term}),
		Div(
			Class("d-flex flex-items-center gap-2 flex-1"),
			Label(Class("sr-only"), For("candidate-search"), Text("Search candidates")),
			Input(
				Type("search"),
				ID("candidate-search"),
				Class("form-control"),
				Placeholder("Search candidates by name..."),
				data.Bind("q"),
				AutoComplete("off"),
				// Paging restarts from the first page whenever the term changes.
				Attr("data-on-input__debounce.300ms", "window.location.href = '/candidates?q=' + encodeURIComponent($q)"),
			),
		),
	)
}

func candidateRow(c domain.Candidate, role domain.Role) Node {
	actions := []Node{
		A(Href(fmt.Sprintf("/candidates/%d", c.ID)), Class("btn btn-sm"), Text("View")),
	}
	if role == domain.RolePanelist {
		actions = append(actions,
			A(Href(fmt.Sprintf("/candidates/%d/feedback", c.ID)), Class("btn btn-sm btn-primary"), Text("Give Feedback")))
	}

	return Tr(
		Td(
			Div(Class("d-flex flex-items-center gap-2"),
				Span(Class("avatar"), Text(c.Initials())),
				Span(Text(c.FullName())),
			),
		),
		Td(
			Div(Text(c.Email)),
			Div(Class(mutedClass()), Text(c.Phone)),
		),
		Td(Text(c.Company.Name)),
		Td(Text(c.Company.Department)),
		Td(Div(Class("d-flex gap-2"), Group(actions))),
	)
}
