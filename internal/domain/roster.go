package domain

// RosterMember is an internal user managed from the admin panel.
// The roster is seeded from a fixture and edited in place; it is distinct
// from ATS candidates.
type RosterMember struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Role   Role   `json:"role" yaml:"role"`
	Avatar string `json:"avatar" yaml:"avatar"`
}

// Validate checks editable roster fields.
func (m *RosterMember) Validate() error {
	if m.ID <= 0 {
		return ErrValidation("roster member id missing")
	}
	if m.Name == "" {
		return ErrValidation("name is required")
	}
	if m.Email == "" {
		return ErrValidation("email is required")
	}
	if !m.Role.Valid() {
		return ErrValidation("unknown role %q", m.Role)
	}
	return nil
}

// RosterFilter narrows a roster listing.
type RosterFilter struct {
	Search string // matches name or email, case-insensitive
	Role   *Role  // nil = all roles
	Page   PageRequest
}
