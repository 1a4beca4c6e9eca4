package domain

import (
	"strings"
	"time"
)

// Identity is the authenticated user payload returned by the ATS login call.
type Identity struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns "First Last" for display.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Session is the current authenticated identity plus its client-asserted
// role. A Session is either fully present (all fields set) or absent —
// partial sessions are never constructed or persisted.
type Session struct {
	Identity  Identity  `json:"identity"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate enforces the full-or-absent invariant: every identity field and
// the role must be set for the session to count as present.
func (s *Session) Validate() error {
	if s == nil {
		return ErrValidation("session is absent")
	}
	if s.Identity.ID <= 0 {
		return ErrValidation("session identity id missing")
	}
	if strings.TrimSpace(s.Identity.Username) == "" {
		return ErrValidation("session username missing")
	}
	if strings.TrimSpace(s.Identity.Email) == "" {
		return ErrValidation("session email missing")
	}
	if strings.TrimSpace(s.Identity.FirstName) == "" || strings.TrimSpace(s.Identity.LastName) == "" {
		return ErrValidation("session name missing")
	}
	if !s.Role.Valid() {
		return ErrValidation("session role %q invalid", s.Role)
	}
	return nil
}
