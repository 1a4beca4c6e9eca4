package ui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"talentboard/internal/domain"
	"talentboard/internal/guard"
	mw "talentboard/internal/middleware"
	"talentboard/internal/session"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if sess, ok := domain.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, guard.DefaultPath(sess.Role), http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(strings.TrimSpace(r.URL.Query().Get("error")), ""))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.loginFailed(w, "Invalid form submission.", "")
		return
	}
	username := formString(r.Form, "username")
	password := first(r.Form["password"])
	role, err := domain.ParseRole(formString(r.Form, "role"))
	if err != nil {
		h.loginFailed(w, "Please choose a role.", username)
		return
	}
	if username == "" || password == "" {
		h.loginFailed(w, "Username and password are required.", username)
		return
	}

	sid, sess, err := h.Store.Login(r.Context(), username, password, role)
	if err != nil {
		var rejected *domain.AuthRejectedError
		var transport *domain.TransportError
		switch {
		case errors.As(err, &rejected):
			h.loginFailed(w, "Invalid username or password.", username)
		case errors.As(err, &transport):
			h.loginFailed(w, "Could not reach the applicant tracking system. Please try again.", username)
		default:
			h.Logger.Error("login failed", "username", username, "error", err)
			h.loginFailed(w, "Something went wrong. Please try again.", username)
		}
		return
	}

	token, err := session.MintToken(h.SessionSecret, sid, h.SessionTTL, sess.CreatedAt)
	if err != nil {
		h.Logger.Error("token mint failed", "session_id", sid, "error", err)
		h.loginFailed(w, "Something went wrong. Please try again.", username)
		return
	}
	session.SetCookie(w, token, h.SessionTTL, h.Production)
	http.Redirect(w, r, guard.DefaultPath(sess.Role), http.StatusSeeOther)
}

func (h *Handler) loginFailed(w http.ResponseWriter, message, username string) {
	// Re-render inline rather than redirecting, keeping the typed username.
	renderHTML(w, http.StatusOK, loginPage(message, username))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := mw.SessionID(r, h.SessionSecret); sid != "" {
		if err := h.Store.Logout(r.Context(), sid); err != nil {
			h.Logger.Error("logout failed", "session_id", sid, "error", err)
		}
	}
	session.ClearCookie(w, h.Production)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func loginPage(errMsg, username string) Node {
	var banner Node
	if errMsg != "" {
		banner = Div(Class("flash flash-error"), Text(errMsg))
	}

	roleOptions := []Node{Option(Value(""), Text("Select your role"))}
	for _, role := range domain.AllRoles {
		roleOptions = append(roleOptions, Option(Value(string(role)), Text(role.Label())))
	}

	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text("Sign in | TalentBoard")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("/static/app.css")),
		),
		Body(
			Main(
				Class("login-shell"),
				Div(
					Class("login-card"),
					H1(Text("TalentBoard")),
					P(Class("muted"), Text("Sign in to manage interviews and candidates.")),
					banner,
					Form(
						Method("post"),
						Action("/login"),
						Div(
							Class("form-group"),
							Label(For("username"), Text("Username")),
							Input(Type("text"), ID("username"), Name("username"), Class("form-control"),
								Value(username), AutoComplete("username"), Required()),
						),
						Div(
							Class("form-group"),
							Label(For("password"), Text("Password")),
							Input(Type("password"), ID("password"), Name("password"), Class("form-control"),
								AutoComplete("current-password"), Required()),
						),
						Div(
							Class("form-group"),
							Label(For("role"), Text("Role")),
							Select(ID("role"), Name("role"), Class("form-select"), Required(), Group(roleOptions)),
						),
						Button(Type("submit"), Class("btn btn-primary btn-block"), Text("Sign in")),
					),
				),
			),
		),
	)
}

// loginErrorURL builds a login redirect preserving an error message, used
// by handlers that hit auth problems mid-flow.
func loginErrorURL(message string) string {
	return "/login?error=" + url.QueryEscape(message)
}
