package ui

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"talentboard/internal/domain"
	"talentboard/internal/notify"
)

type navItem struct {
	Label string
	Href  string
	Key   string
	Roles []domain.Role // empty = every role
}

var navItems = []navItem{
	{Label: "Dashboard", Href: "/dashboard", Key: "dashboard"},
	{Label: "Candidates", Href: "/candidates", Key: "candidates"},
	{Label: "Admin", Href: "/admin", Key: "admin", Roles: []domain.Role{domain.RoleAdmin}},
}

// pageContext carries everything the shared chrome needs for one render.
type pageContext struct {
	Title   string
	Active  string
	Session domain.Session
	Flash   *notify.Flash
}

func pageCtx(r *http.Request, title, active string) pageContext {
	pc := pageContext{Title: title, Active: active, Session: sessionFromRequest(r)}
	if f, ok := notify.FromContext(r.Context()); ok {
		pc.Flash = &f
	}
	return pc
}

func appPage(pc pageContext, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		if len(item.Roles) > 0 && !pc.Session.Role.In(item.Roles) {
			continue
		}
		className := "app-nav-link"
		if item.Key == pc.Active {
			className += " active"
		}
		nav = append(nav, A(Href(item.Href), Class(className), Text(item.Label)))
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(pc.Title+" | TalentBoard")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
			Script(
				Type("module"),
				Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
			),
		),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("TalentBoard")),
						P(Class("muted mb-0"), Text("Interview management")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						H1(Class("page-title"), Text(pc.Title)),
						Div(
							P(Class("muted mb-2"), Text(fmt.Sprintf("%s (%s)", pc.Session.Identity.FullName(), pc.Session.Role.Label()))),
							Form(
								Method("post"),
								Action("/logout"),
								Button(Type("submit"), Class("btn btn-sm"), Text("Sign out")),
							),
						),
					),
					flashBanner(pc.Flash),
					Div(Class("content"), Group(body)),
				),
			),
		),
	)
}

func flashBanner(f *notify.Flash) Node {
	if f == nil {
		return nil
	}
	tone := "flash"
	switch f.Kind {
	case notify.KindSuccess:
		tone += " flash-success"
	case notify.KindError:
		tone += " flash-error"
	}
	return Div(Class(tone), Text(f.Message))
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | TalentBoard")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/dashboard"), Text("Back to dashboard"))),
			),
		),
	)
}

func cardClass(extra ...string) string {
	parts := []string{"card", "p-3", "mb-3"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "muted"
}

func emptyStateCard(message string) Node {
	return Div(
		Class(cardClass("blankslate")),
		P(Class(mutedClass()), Text(message)),
	)
}

// paginationCard renders prev/next controls around the page position.
// params carries the filter state (search term, role) so paging preserves it.
func paginationCard(basePath string, params url.Values, page domain.PageRequest, total int) Node {
	totalPages := page.TotalPages(total)
	if totalPages <= 1 {
		return Div(Class(cardClass()), P(Class(mutedClass()), Text(fmt.Sprintf("Showing %d entries.", total))))
	}

	href := func(index int) string {
		q := url.Values{}
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		q.Set("page", strconv.Itoa(index))
		return basePath + "?" + q.Encode()
	}

	prev := Node(Span(Class("btn btn-sm disabled"), Text("Previous")))
	if page.HasPrev() {
		prev = A(Href(href(page.PageIndex-1)), Class("btn btn-sm"), Text("Previous"))
	}
	next := Node(Span(Class("btn btn-sm disabled"), Text("Next")))
	if page.HasNext(total) {
		next = A(Href(href(page.PageIndex+1)), Class("btn btn-sm"), Text("Next"))
	}

	return Div(
		Class(cardClass("pagination")),
		Div(
			Class("d-flex flex-justify-between flex-items-center"),
			prev,
			P(Class(mutedClass()+" mb-0"), Text(fmt.Sprintf("Page %d of %d (%d entries)", page.PageIndex+1, totalPages, total))),
			next,
		),
	)
}

func scoreTone(score int) string {
	switch {
	case score >= 80:
		return "score-high"
	case score >= 60:
		return "score-mid"
	case score >= 40:
		return "score-low"
	default:
		return "score-poor"
	}
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("Jan 2, 2006 3:04 PM")
}
