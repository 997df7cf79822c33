package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "token"

var ErrNoSessionCookie = errors.New("session cookie not present")

// CookieManager is the only component that reads or writes the session cookie
type CookieManager struct {
	forceSecure bool
	now         func() time.Time
}

// NewCookieManager creates a cookie manager. When forceSecure is false the
// Secure flag is still set for requests that arrived over TLS.
func NewCookieManager(forceSecure bool) *CookieManager {
	return &CookieManager{forceSecure: forceSecure, now: time.Now}
}

// Set writes the session cookie with an expiry matching the token
func (m *CookieManager) Set(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(m.now()).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt.UTC(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately
func (m *CookieManager) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the session token carried by the request
func (m *CookieManager) Token(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", ErrNoSessionCookie
	}

	token := strings.TrimSpace(cookie.Value)
	if token == "" {
		return "", ErrNoSessionCookie
	}

	return token, nil
}

func (m *CookieManager) secure(r *http.Request) bool {
	if m.forceSecure {
		return true
	}
	if r == nil {
		return false
	}
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
