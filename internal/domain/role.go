package domain

import "fmt"

// Role controls which views and actions are visible to a signed-in user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTAMember Role = "ta_member"
	RolePanelist Role = "panelist"
)

// AllRoles lists every assignable role, in display order.
var AllRoles = []Role{RoleAdmin, RoleTAMember, RolePanelist}

// ParseRole validates a raw role string from a form or API payload.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleTAMember, RolePanelist:
		return Role(raw), nil
	}
	return "", ErrValidation("unknown role %q", raw)
}

// Valid reports whether the role is one of the assignable roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Label returns the human-readable form used in the UI.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleTAMember:
		return "TA Member"
	case RolePanelist:
		return "Panelist"
	}
	return string(r)
}

// In reports whether the role is a member of the given set.
func (r Role) In(set []Role) bool {
	for _, candidate := range set {
		if r == candidate {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) { return []byte(r), nil }

// UnmarshalText implements encoding.TextUnmarshaler, rejecting unknown roles.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return fmt.Errorf("unmarshal role: %w", err)
	}
	*r = parsed
	return nil
}
