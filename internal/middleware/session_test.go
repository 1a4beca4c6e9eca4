package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentboard/internal/domain"
	"talentboard/internal/session"
)

type fakeRestorer struct {
	sessions map[string]domain.Session
	err      error
}

func (f *fakeRestorer) Restore(_ context.Context, sid string) (domain.Session, error) {
	if f.err != nil {
		return domain.Session{}, f.err
	}
	sess, ok := f.sessions[sid]
	if !ok {
		return domain.Session{}, domain.ErrNotFound("session %s not found", sid)
	}
	return sess, nil
}

func sessionCookie(t *testing.T, secret []byte, sid string) *http.Cookie {
	t.Helper()
	token, err := session.MintToken(secret, sid, time.Hour, time.Now())
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func TestSessionAuth_RestoresSession(t *testing.T) {
	secret := []byte("test-secret")
	sess := domain.Session{
		Identity: domain.Identity{ID: 15, Username: "kminchelle", Email: "k@qq.com", FirstName: "Jeanne", LastName: "Halvorson"},
		Role:     domain.RoleAdmin,
	}
	restorer := &fakeRestorer{sessions: map[string]domain.Session{"sid-1": sess}}

	var got domain.Session
	var ok bool
	handler := SessionAuth(restorer, secret, false, slog.Default())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok = domain.SessionFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, secret, "sid-1"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	assert.Equal(t, "kminchelle", got.Identity.Username)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestSessionAuth_NoCookieIsAnonymous(t *testing.T) {
	handler := SessionAuth(&fakeRestorer{}, []byte("s"), false, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := domain.SessionFromContext(r.Context())
			assert.False(t, ok)
		}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestSessionAuth_BadTokenClearsCookie(t *testing.T) {
	handler := SessionAuth(&fakeRestorer{}, []byte("right"), false, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := domain.SessionFromContext(r.Context())
			assert.False(t, ok)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, []byte("wrong"), "sid-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertCookieCleared(t, rec)
}

func TestSessionAuth_MalformedSessionFlashes(t *testing.T) {
	secret := []byte("test-secret")
	restorer := &fakeRestorer{err: domain.ErrMalformedSession("session unreadable")}

	handler := SessionAuth(restorer, secret, false, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := domain.SessionFromContext(r.Context())
			assert.False(t, ok)
		}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(sessionCookie(t, secret, "sid-1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertCookieCleared(t, rec)

	var flashed bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "tb_flash" && c.MaxAge > 0 {
			flashed = true
		}
	}
	assert.True(t, flashed, "the user should see a session-expired notice")
}

func TestSessionAuth_UnknownSessionStaysQuiet(t *testing.T) {
	secret := []byte("test-secret")
	handler := SessionAuth(&fakeRestorer{sessions: map[string]domain.Session{}}, secret, false, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, secret, "gone"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assertCookieCleared(t, rec)
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, "tb_flash", c.Name)
	}
}

func TestSessionID(t *testing.T) {
	secret := []byte("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, SessionID(req, secret))

	req.AddCookie(sessionCookie(t, secret, "sid-9"))
	assert.Equal(t, "sid-9", SessionID(req, secret))
}

func assertCookieCleared(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "stale session cookie should be cleared")
}
