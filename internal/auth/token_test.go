package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/roomboom-api/internal/config"
)

var (
	testPasetoKey = []byte("0123456789abcdef0123456789abcdef")
	testJWTSecret = []byte("jwt-secret-used-only-in-unit-tests!")
)

// tamper flips one character in the middle of the token, away from the
// trailing base64 padding bits
func tamper(token string) string {
	b := []byte(token)
	i := len(b) / 2
	for b[i] == '.' {
		i++
	}
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

type clockedService interface {
	TokenService
	setClock(func() time.Time)
}

func (s *PasetoService) setClock(now func() time.Time) { s.now = now }
func (s *JWTService) setClock(now func() time.Time)    { s.now = now }

func tokenServices(t *testing.T) map[string]func() clockedService {
	t.Helper()
	return map[string]func() clockedService{
		"paseto": func() clockedService {
			s, err := NewPasetoService(testPasetoKey, 30*24*time.Hour)
			require.NoError(t, err)
			return s
		},
		"jwt": func() clockedService {
			s, err := NewJWTService(testJWTSecret, 30*24*time.Hour)
			require.NoError(t, err)
			return s
		},
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	for name, build := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			svc := build()
			userID := uuid.New()

			token, expiresAt, err := svc.Issue(userID)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), expiresAt, 2*time.Second)

			claims, err := svc.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
			assert.True(t, claims.ExpiresAt.Equal(expiresAt))
		})
	}
}

func TestTokenService_Tampered(t *testing.T) {
	for name, build := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			svc := build()

			token, _, err := svc.Issue(uuid.New())
			require.NoError(t, err)

			_, err = svc.Verify(tamper(token))
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestTokenService_Expired(t *testing.T) {
	for name, build := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			svc := build()
			svc.setClock(func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) })

			token, _, err := svc.Issue(uuid.New())
			require.NoError(t, err)

			svc.setClock(time.Now)
			_, err = svc.Verify(token)
			assert.ErrorIs(t, err, ErrExpiredToken)
		})
	}
}

func TestTokenService_Garbage(t *testing.T) {
	for name, build := range tokenServices(t) {
		t.Run(name, func(t *testing.T) {
			for _, token := range []string{"", "not-a-token", "v4.local.AAAA", "a.b.c"} {
				_, err := build().Verify(token)
				assert.ErrorIs(t, err, ErrInvalidSignature, "token %q", token)
			}
		})
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	pasetoA, err := NewPasetoService(testPasetoKey, time.Hour)
	require.NoError(t, err)
	pasetoB, err := NewPasetoService([]byte("fedcba9876543210fedcba9876543210"), time.Hour)
	require.NoError(t, err)

	token, _, err := pasetoA.Issue(uuid.New())
	require.NoError(t, err)
	_, err = pasetoB.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	jwtA, err := NewJWTService(testJWTSecret, time.Hour)
	require.NoError(t, err)
	jwtB, err := NewJWTService([]byte("another-secret-that-is-32-bytes-long"), time.Hour)
	require.NoError(t, err)

	token, _, err = jwtA.Issue(uuid.New())
	require.NoError(t, err)
	_, err = jwtB.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestNewTokenService(t *testing.T) {
	svc, err := NewTokenService(config.AuthConfig{TokenStrategy: config.TokenStrategyPaseto, PasetoKey: testPasetoKey, SessionDuration: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, &PasetoService{}, svc)

	svc, err = NewTokenService(config.AuthConfig{TokenStrategy: config.TokenStrategyJWT, JWTSecret: testJWTSecret, SessionDuration: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, &JWTService{}, svc)

	_, err = NewTokenService(config.AuthConfig{TokenStrategy: "opaque"})
	assert.Error(t, err)

	_, err = NewPasetoService([]byte("short"), time.Hour)
	assert.Error(t, err)
}
