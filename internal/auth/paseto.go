package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

// PasetoService handles PASETO token creation and validation
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	duration     time.Duration
	now          func() time.Time
}

func NewPasetoService(symmetricKey []byte, duration time.Duration) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}
	if duration <= 0 {
		return nil, fmt.Errorf("token duration must be positive")
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{
		symmetricKey: key,
		duration:     duration,
		now:          time.Now,
	}, nil
}

// Issue generates a new PASETO v4.local token for the user
func (s *PasetoService) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := s.now().Truncate(time.Second)
	expiresAt := now.Add(s.duration)

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(expiresAt)
	token.SetString("user_id", userID.String())

	return token.V4Encrypt(s.symmetricKey, nil), expiresAt, nil
}

// Verify decrypts a PASETO v4.local token and checks its expiry
func (s *PasetoService) Verify(tokenStr string) (*TokenClaims, error) {
	// Expiry is checked below against the service clock
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	rawUserID, err := token.GetString("user_id")
	if err != nil {
		return nil, ErrInvalidSignature
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, ErrInvalidSignature
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidSignature
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidSignature
	}

	if !s.now().Before(expiresAt) {
		return nil, ErrExpiredToken
	}

	return &TokenClaims{
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
