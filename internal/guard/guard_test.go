package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentboard/internal/domain"
)

func guardSession(role domain.Role) *domain.Session {
	return &domain.Session{
		Identity: domain.Identity{
			ID:        15,
			Username:  "kminchelle",
			Email:     "kminchelle@qq.com",
			FirstName: "Jeanne",
			LastName:  "Halvorson",
		},
		Role:      role,
		CreatedAt: time.Now(),
	}
}

func TestEvaluate(t *testing.T) {
	admin := guardSession(domain.RoleAdmin)
	panelist := guardSession(domain.RolePanelist)

	tests := []struct {
		name    string
		ready   bool
		sess    *domain.Session
		allowed []domain.Role
		want    Decision
	}{
		{"not ready, no session", false, nil, nil, Pending},
		{"not ready, with session", false, admin, nil, Pending},
		{"ready, no session", true, nil, nil, RedirectToLogin},
		{"ready, no session, role-gated", true, nil, []domain.Role{domain.RoleAdmin}, RedirectToLogin},
		{"ready, any role admitted", true, panelist, nil, Render},
		{"ready, role admitted", true, admin, []domain.Role{domain.RoleAdmin}, Render},
		{"ready, role among several", true, panelist, []domain.Role{domain.RoleTAMember, domain.RolePanelist}, Render},
		{"ready, role not admitted", true, panelist, []domain.Role{domain.RoleAdmin}, RedirectToDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.ready, tt.sess, tt.allowed))
		})
	}
}

func TestEvaluate_PartialSessionTreatedAsAbsent(t *testing.T) {
	partial := &domain.Session{Role: domain.RoleAdmin}
	assert.Equal(t, RedirectToLogin, Evaluate(true, partial, nil))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "/admin", DefaultPath(domain.RoleAdmin))
	assert.Equal(t, "/dashboard", DefaultPath(domain.RoleTAMember))
	assert.Equal(t, "/dashboard", DefaultPath(domain.RolePanelist))
}

func TestRequireRoles(t *testing.T) {
	ready := func() bool { return true }
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("renders for admitted role", func(t *testing.T) {
		mw := RequireRoles(ready, domain.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(domain.WithSession(req.Context(), *guardSession(domain.RoleAdmin)))
		rec := httptest.NewRecorder()

		mw(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redirects anonymous to login", func(t *testing.T) {
		mw := RequireRoles(ready)
		rec := httptest.NewRecorder()

		mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("redirects wrong role to its landing page", func(t *testing.T) {
		mw := RequireRoles(ready, domain.RoleAdmin)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(domain.WithSession(req.Context(), *guardSession(domain.RolePanelist)))
		rec := httptest.NewRecorder()

		mw(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("unavailable while warming up", func(t *testing.T) {
		mw := RequireRoles(func() bool { return false })
		rec := httptest.NewRecorder()

		mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
