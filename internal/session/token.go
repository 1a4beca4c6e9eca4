package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"talentboard/internal/domain"
)

// CookieName is the session cookie. Its value is a signed token carrying
// only the opaque session ID; all session data stays server-side.
const CookieName = "tb_session"

// MintToken signs an HS256 token binding the session ID.
func MintToken(secret []byte, sid string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the token and returns the session ID it carries.
func ParseToken(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", domain.ErrNotFound("session token invalid")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrNotFound("session token invalid")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrNotFound("session token missing id")
	}
	return sid, nil
}

// SetCookie writes the session cookie.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
