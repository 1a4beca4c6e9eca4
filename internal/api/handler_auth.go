package api

import (
	"encoding/json"
	"net/http"

	"talentboard/internal/domain"
	"talentboard/internal/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expiresIn"` // seconds
	Identity  domain.Identity `json:"identity"`
	Role      domain.Role     `json:"role"`
}

// Login authenticates against the ATS and returns a bearer token for the
// rest of the API.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	sid, sess, err := h.store.Login(r.Context(), req.Username, req.Password, role)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := session.MintToken(h.secret, sid, h.ttl, sess.CreatedAt)
	if err != nil {
		h.logger.Error("mint token", "error", err)
		writeErrorStatus(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int(h.ttl.Seconds()),
		Identity:  sess.Identity,
		Role:      sess.Role,
	})
}

// Logout destroys the caller's session. Safe to call with an already dead
// token holder; the bearer middleware rejects those before this runs.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context(), sessionIDFrom(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	writeJSON(w, http.StatusOK, sess)
}
