package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "feedback submitted")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var got Flash
	handler := Pop(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)

	assert.Equal(t, KindSuccess, got.Kind)
	assert.Equal(t, "feedback submitted", got.Message)

	// Pop clears the cookie so the message shows once.
	var cleared bool
	for _, c := range rec2.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPop_NoCookie(t *testing.T) {
	handler := Pop(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := FromContext(r.Context())
		assert.False(t, ok)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestPop_GarbageCookie(t *testing.T) {
	handler := Pop(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := FromContext(r.Context())
		assert.False(t, ok)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "%%%not-base64%%%"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
