package auth

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/httputil"
	"github.com/redmonkez12/roomboom-api/internal/logging"
	"github.com/redmonkez12/roomboom-api/internal/ratelimit"
	"github.com/redmonkez12/roomboom-api/internal/user"
)

// FavoritesProvider returns the favorite ids shown on the profile
type FavoritesProvider interface {
	FavoriteIDs(ctx context.Context, userID uuid.UUID) (spots, listings []uuid.UUID, err error)
}

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service     *Service
	cookies     *CookieManager
	rateLimiter *ratelimit.Limiter
	favorites   FavoritesProvider
}

func NewHandler(service *Service, cookies *CookieManager, rateLimiter *ratelimit.Limiter, favorites FavoritesProvider) *Handler {
	return &Handler{
		service:     service,
		cookies:     cookies,
		rateLimiter: rateLimiter,
		favorites:   favorites,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse is the outward view of the principal. It never carries
// the password hash.
type ProfileResponse struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	Avatar           string      `json:"avatar,omitempty"`
	FavoriteSpots    []uuid.UUID `json:"favoriteSpots"`
	FavoriteListings []uuid.UUID `json:"favoriteListings"`
	CreatedAt        time.Time   `json:"createdAt"`
}

func newProfile(u *user.User, spots, listings []uuid.UUID) ProfileResponse {
	if spots == nil {
		spots = []uuid.UUID{}
	}
	if listings == nil {
		listings = []uuid.UUID{}
	}
	return ProfileResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Avatar:           u.Avatar,
		FavoriteSpots:    spots,
		FavoriteListings: listings,
		CreatedAt:        u.CreatedAt,
	}
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create an account and start a session. The session token is set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} httputil.DataResponse{data=ProfileResponse}
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} httputil.ErrorResponse "Email already exists"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.rateLimited(w, r, "register") {
		return
	}

	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	session, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			httputil.RespondErrorWithCode(w, "email already exists", httputil.CodeEmailAlreadyExists, http.StatusConflict)
			return
		}
		if errors.Is(err, apperr.ErrValidation) {
			logger.Warn("registration failed: validation error", "error", err.Error())
		}
		httputil.RespondServiceError(w, r, err)
		return
	}

	logger.Info("user registered successfully", "user_id", session.User.ID)

	h.cookies.Set(w, r, session.Token, session.ExpiresAt)
	httputil.RespondData(w, newProfile(session.User, nil, nil), http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate and start a session. The session token is set as an HttpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} httputil.DataResponse{data=ProfileResponse}
// @Failure      400 {object} httputil.ErrorResponse "Invalid request body"
// @Failure      401 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.rateLimited(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "invalid email or password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		httputil.RespondServiceError(w, r, err)
		return
	}

	logger.Info("user logged in successfully", "user_id", session.User.ID)

	spots, listings, err := h.favoriteIDs(r.Context(), session.User.ID)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	h.cookies.Set(w, r, session.Token, session.ExpiresAt)
	httputil.RespondData(w, newProfile(session.User, spots, listings), http.StatusOK)
}

// Logout handles user logout
// @Summary      Logout
// @Description  Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.MessageResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w, r)
	httputil.RespondMessage(w, "logged out successfully", http.StatusOK)
}

// Me returns the authenticated user's profile
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.DataResponse{data=ProfileResponse}
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	u, err := h.service.Me(r.Context(), principal)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	spots, listings, err := h.favoriteIDs(r.Context(), u.ID)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondData(w, newProfile(u, spots, listings), http.StatusOK)
}

func (h *Handler) favoriteIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	if h.favorites == nil {
		return nil, nil, nil
	}
	return h.favorites.FavoriteIDs(ctx, userID)
}

// rateLimited counts the request against the client's budget for purpose
// and writes a 429 when it is used up. Limiter failures let the request
// through.
func (h *Handler) rateLimited(w http.ResponseWriter, r *http.Request, purpose string) bool {
	if h.rateLimiter == nil {
		return false
	}
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	exceeded, err := h.rateLimiter.CheckIPRateLimitWithPurpose(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondErrorWithCode(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}

	if err := h.rateLimiter.RecordIPRequestWithPurpose(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}
	return false
}

// getClientIP returns the caller's address. The router runs chi's RealIP
// middleware first, so RemoteAddr already reflects proxy headers.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
