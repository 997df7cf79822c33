package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/config"
)

var (
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpiredToken     = errors.New("token has expired")
)

// TokenClaims represents the verified contents of a session token
type TokenClaims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for session token creation and validation.
// Implementations include PasetoService (PASETO v4.local) and JWTService (HS256).
//
// The key is loaded once at startup. Rotating it invalidates every
// outstanding session.
type TokenService interface {
	Issue(userID uuid.UUID) (token string, expiresAt time.Time, err error)
	// Verify returns ErrExpiredToken or ErrInvalidSignature on failure
	Verify(token string) (*TokenClaims, error)
}

// NewTokenService builds the TokenService selected by configuration
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	switch cfg.TokenStrategy {
	case config.TokenStrategyPaseto:
		return NewPasetoService(cfg.PasetoKey, cfg.SessionDuration)
	case config.TokenStrategyJWT:
		return NewJWTService(cfg.JWTSecret, cfg.SessionDuration)
	default:
		return nil, fmt.Errorf("unsupported token strategy %q", cfg.TokenStrategy)
	}
}

// NewPasswordHasher builds the PasswordHasher selected by configuration
func NewPasswordHasher(cfg config.AuthConfig) PasswordHasher {
	if cfg.PasswordAlgorithm == config.PasswordAlgorithmArgon2id {
		return NewArgon2Hasher()
	}
	return NewBcryptHasher(cfg.BcryptCost)
}
