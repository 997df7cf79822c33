package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/httputil"
	"github.com/redmonkez12/roomboom-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const (
	PrincipalContextKey ContextKey = "principal_id"
)

// Middleware authenticates requests from the session cookie
type Middleware struct {
	tokenService TokenService
	cookies      *CookieManager
}

func NewMiddleware(tokenService TokenService, cookies *CookieManager) *Middleware {
	return &Middleware{tokenService: tokenService, cookies: cookies}
}

// RequireAuth rejects requests without a valid session token
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			logging.GetLoggerFromContext(r.Context()).Debug("authentication failed", "error", err.Error())

			switch {
			case errors.Is(err, ErrNoSessionCookie):
				httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
			case errors.Is(err, ErrExpiredToken):
				httputil.RespondErrorWithCode(w, "token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
			default:
				httputil.RespondErrorWithCode(w, "invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), claims.UserID)))
	})
}

// OptionalAuth attaches the principal when the token is valid and lets
// the request through anonymously otherwise
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), claims.UserID)))
	})
}

func (m *Middleware) authenticate(r *http.Request) (*TokenClaims, error) {
	token, err := m.cookies.Token(r)
	if err != nil {
		return nil, err
	}
	return m.tokenService.Verify(token)
}

// WithPrincipal stores the authenticated user id in the context
func WithPrincipal(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, PrincipalContextKey, userID)
}

// PrincipalFromContext extracts the authenticated user id from the context
func PrincipalFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(PrincipalContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
