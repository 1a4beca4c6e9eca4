package ui

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"talentboard/internal/domain"
	"talentboard/internal/notify"
	"talentboard/internal/service"
)

func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	filter := domain.RosterFilter{
		Search: formString(r.URL.Query(), "q"),
		Page:   domain.PageRequest{PageIndex: pageIndexFromRequest(r), PageSize: service.AdminPageSize},
	}
	if raw := formString(r.URL.Query(), "role"); raw != "" && raw != "all" {
		if role, err := domain.ParseRole(raw); err == nil {
			filter.Role = &role
		}
	}

	members, total, err := h.Roster.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("roster list failed", "error", err)
		renderHTML(w, http.StatusInternalServerError, errorPage("Unavailable", "Could not load the roster."))
		return
	}

	renderHTML(w, http.StatusOK, appPage(
		pageCtx(r, "Admin Panel", "admin"),
		adminBody(r, members, total, filter),
	))
}

func (h *Handler) AdminUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil || id <= 0 {
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That user does not exist."))
		return
	}
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Form", "The submitted form could not be read."))
		return
	}

	role, err := domain.ParseRole(formString(r.Form, "role"))
	if err != nil {
		notify.Error(w, "Please choose a valid role.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	m, err := h.Roster.UpdateRole(r.Context(), id, role)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That user does not exist."))
			return
		}
		h.Logger.Error("role update failed", "member_id", id, "error", err)
		notify.Error(w, "Failed to update user role. Please try again.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	notify.Success(w, fmt.Sprintf("Role updated successfully! %s is now %s", m.Name, m.Role.Label()))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) AdminEditMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil || id <= 0 {
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That user does not exist."))
		return
	}
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Form", "The submitted form could not be read."))
		return
	}

	role, err := domain.ParseRole(formString(r.Form, "role"))
	if err != nil {
		notify.Error(w, "Please choose a valid role.")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	member := domain.RosterMember{
		ID:     id,
		Name:   formString(r.Form, "name"),
		Email:  formString(r.Form, "email"),
		Role:   role,
		Avatar: formString(r.Form, "avatar"),
	}
	m, err := h.Roster.Update(r.Context(), member)
	if err != nil {
		var verr *domain.ValidationError
		var conflict *domain.ConflictError
		var notFound *domain.NotFoundError
		switch {
		case errors.As(err, &verr):
			notify.Error(w, verr.Message)
		case errors.As(err, &conflict):
			notify.Error(w, "That email is already in use.")
		case errors.As(err, &notFound):
			renderHTML(w, http.StatusNotFound, errorPage("Not Found", "That user does not exist."))
			return
		default:
			h.Logger.Error("member update failed", "member_id", id, "error", err)
			notify.Error(w, "Failed to update user. Please try again.")
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	notify.Success(w, fmt.Sprintf("User %s updated.", m.Name))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func adminBody(r *http.Request, members []domain.RosterMember, total int, filter domain.RosterFilter) Node {
	nodes := []Node{adminFilterCard(filter)}

	if len(members) == 0 {
		nodes = append(nodes, emptyStateCard("No users match the current filter."))
		return Group(nodes)
	}

	rows := make([]Node, 0, len(members))
	for _, m := range members {
		rows = append(rows, adminRow(r, m))
	}
	nodes = append(nodes,
		Div(
			Class(cardClass()),
			Table(
				Class("data-table"),
				THead(Tr(
					Th(Text("User")),
					Th(Text("Email")),
					Th(Text("Current Role")),
					Th(Text("Change Role")),
					Th(Text("")),
				)),
				TBody(Group(rows)),
			),
		),
		paginationCard("/admin", adminFilterParams(filter), filter.Page, total),
	)
	return Group(nodes)
}

func adminFilterParams(filter domain.RosterFilter) url.Values {
	params := url.Values{}
	if filter.Search != "" {
		params.Set("q", filter.Search)
	}
	if filter.Role != nil {
		params.Set("role", string(*filter.Role))
	}
	return params
}

func adminFilterCard(filter domain.RosterFilter) Node {
	roleOptions := []Node{Option(Value("all"), Text("All roles"))}
	for _, role := range domain.AllRoles {
		opt := Option(Value(string(role)), Text(role.Label()))
		if filter.Role != nil && *filter.Role == role {
			opt = Option(Value(string(role)), Text(role.Label()), Selected())
		}
		roleOptions = append(roleOptions, opt)
	}

	return Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/admin"),
			Class("d-flex flex-items-center gap-2"),
			Input(Type("search"), Name("q"), Class("form-control"),
				Placeholder("Search by name or email..."), Value(filter.Search)),
			Select(Name("role"), Class("form-select"), Group(roleOptions)),
			Button(Type("submit"), Class("btn"), Text("Filter")),
		),
	)
}

func adminRow(r *http.Request, m domain.RosterMember) Node {
	roleOptions := make([]Node, 0, len(domain.AllRoles))
	for _, role := range domain.AllRoles {
		if role == m.Role {
			roleOptions = append(roleOptions, Option(Value(string(role)), Text(role.Label()), Selected()))
		} else {
			roleOptions = append(roleOptions, Option(Value(string(role)), Text(role.Label())))
		}
	}

	return Tr(
		Td(
			Div(Class("d-flex flex-items-center gap-2"),
				Span(Class("avatar"), Text(m.Avatar)),
				Span(Text(m.Name)),
			),
		),
		Td(Text(m.Email)),
		Td(Span(Class("role-label role-"+string(m.Role)), Text(m.Role.Label()))),
		Td(
			Form(
				Method("post"),
				Action(fmt.Sprintf("/admin/members/%d/role", m.ID)),
				Class("d-flex gap-2"),
				csrfField(r),
				Select(Name("role"), Class("form-select form-select-sm"), Group(roleOptions)),
				Button(Type("submit"), Class("btn btn-sm"), Text("Update")),
			),
		),
		Td(
			Details(
				Class("dropdown"),
				Summary(Class("btn btn-sm"), Text("Edit")),
				Div(
					Class("dropdown-panel"),
					Form(
						Method("post"),
						Action(fmt.Sprintf("/admin/members/%d", m.ID)),
						csrfField(r),
						Input(Type("hidden"), Name("avatar"), Value(m.Avatar)),
						Div(Class("form-group"),
							Label(Text("Name")),
							Input(Type("text"), Name("name"), Class("form-control"), Value(m.Name), Required()),
						),
						Div(Class("form-group"),
							Label(Text("Email")),
							Input(Type("email"), Name("email"), Class("form-control"), Value(m.Email), Required()),
						),
						Input(Type("hidden"), Name("role"), Value(string(m.Role))),
						Button(Type("submit"), Class("btn btn-sm btn-primary"), Text("Save")),
					),
				),
			),
		),
	)
}
