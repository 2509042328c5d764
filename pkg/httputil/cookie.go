package httputil

import (
	"net/http"
	"time"
)

const (
	SessionCookieName = "user_session"
	sessionCookieTTL  = 24 * time.Hour
)

// SessionID returns the session id carried by the request, or "" when there is none.
func SessionID(req *http.Request) string {
	cookie, err := req.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func SessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(sessionCookieTTL),
		MaxAge:   int(sessionCookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSessionCookie refreshes the session cookie on every response so active players never lose their game.
func SetSessionCookie(writer http.ResponseWriter, id string) {
	http.SetCookie(writer, SessionCookie(id))
}
