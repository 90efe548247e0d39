// Package session identifies players by the session cookie shared by the
// REST and WebSocket transports.
package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName = "user_session"
	cookieTTL  = 24 * time.Hour
)

// FromRequest - returns the session id carried by the request, if any.
func FromRequest(req *http.Request) (string, bool) {
	cookie, err := req.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}

// NewCookie - creates a fresh session cookie.
func NewCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    uuid.NewString(),
		Path:     "/",
		Expires:  time.Now().Add(cookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Ensure - returns the session id of the request, issuing a new cookie on
// the response when the request has none.
func Ensure(writer http.ResponseWriter, req *http.Request) string {
	if id, ok := FromRequest(req); ok {
		return id
	}

	cookie := NewCookie()
	http.SetCookie(writer, cookie)

	return cookie.Value
}
