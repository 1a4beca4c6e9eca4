// Package notify carries one-shot flash messages across redirects using a
// short-lived cookie, read and cleared on the next page render.
package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "tb_flash"

// Kind is the visual weight of a flash message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Set queues a flash message for the next request.
func Set(w http.ResponseWriter, f Flash) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

// Success queues a success message.
func Success(w http.ResponseWriter, message string) {
	Set(w, Flash{Kind: KindSuccess, Message: message})
}

// Error queues an error message.
func Error(w http.ResponseWriter, message string) {
	Set(w, Flash{Kind: KindError, Message: message})
}

// Info queues an informational message.
func Info(w http.ResponseWriter, message string) {
	Set(w, Flash{Kind: KindInfo, Message: message})
}

type flashKey struct{}

// Pop is middleware that moves a queued flash, if any, from the cookie onto
// the request context and clears the cookie. Unreadable cookies are cleared
// and dropped.
func Pop(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})

		if payload, err := base64.URLEncoding.DecodeString(cookie.Value); err == nil {
			var f Flash
			if err := json.Unmarshal(payload, &f); err == nil && f.Message != "" {
				r = r.WithContext(context.WithValue(r.Context(), flashKey{}, f))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// FromContext returns the flash popped for this request, if any.
func FromContext(ctx context.Context) (Flash, bool) {
	f, ok := ctx.Value(flashKey{}).(Flash)
	return f, ok
}
