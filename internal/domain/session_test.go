package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSession() Session {
	return Session{
		Identity: Identity{
			ID:        15,
			Username:  "kminchelle",
			Email:     "kminchelle@qq.com",
			FirstName: "Jeanne",
			LastName:  "Halvorson",
		},
		Role: RolePanelist,
	}
}

func TestSession_Validate(t *testing.T) {
	s := validSession()
	require.NoError(t, s.Validate())
}

func TestSession_Validate_RejectsPartial(t *testing.T) {
	mutations := map[string]func(*Session){
		"missing id":       func(s *Session) { s.Identity.ID = 0 },
		"missing username": func(s *Session) { s.Identity.Username = "" },
		"missing email":    func(s *Session) { s.Identity.Email = "  " },
		"missing first":    func(s *Session) { s.Identity.FirstName = "" },
		"missing last":     func(s *Session) { s.Identity.LastName = "" },
		"bad role":         func(s *Session) { s.Role = "superuser" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := validSession()
			mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestSession_Validate_NilIsAbsent(t *testing.T) {
	var s *Session
	assert.Error(t, s.Validate())
}

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles {
		parsed, err := ParseRole(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRole("owner")
	require.Error(t, err)
}

func TestRole_In(t *testing.T) {
	assert.True(t, RoleAdmin.In([]Role{RoleAdmin, RolePanelist}))
	assert.False(t, RoleTAMember.In([]Role{RoleAdmin, RolePanelist}))
	assert.False(t, RoleAdmin.In(nil))
}
