package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/logging"
	"github.com/redmonkez12/roomboom-api/internal/user"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	ErrAccountNotFound    = fmt.Errorf("%w: account no longer exists", apperr.ErrUnauthenticated)

	ErrNameRequired       = fmt.Errorf("%w: name is required", apperr.ErrValidation)
	ErrNameTooLong        = fmt.Errorf("%w: name cannot be more than %d characters", apperr.ErrValidation, maxNameLength)
	ErrEmailRequired      = fmt.Errorf("%w: email is required", apperr.ErrValidation)
	ErrInvalidEmailFormat = fmt.Errorf("%w: invalid email format", apperr.ErrValidation)
	ErrPasswordRequired   = fmt.Errorf("%w: password is required", apperr.ErrValidation)
	ErrPasswordTooShort   = fmt.Errorf("%w: password must be at least %d characters", apperr.ErrValidation, minPasswordLength)
	ErrPasswordTooLong    = fmt.Errorf("%w: password cannot be more than %d bytes", apperr.ErrValidation, MaxPasswordBytes)
)

const (
	minPasswordLength = 8
	maxNameLength     = 50
	maxEmailLength    = 254

	welcomeEmailTimeout = 30 * time.Second
)

// UserRepository is the user storage the service depends on
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// WelcomeNotifier defines the interface for the registration email
type WelcomeNotifier interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
}

// Session is an authenticated user with a freshly issued token
type Session struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// Service handles authentication business logic
type Service struct {
	users    UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	notifier WelcomeNotifier
	logger   *logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService wires the auth use cases. notifier may be nil, in which case
// no welcome email is sent.
func NewService(users UserRepository, hasher PasswordHasher, tokens TokenService, notifier WelcomeNotifier, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}

// Register creates a new account and signs it in
func (s *Service) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = user.NormalizeEmail(email)

	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		// Detached from the request so the send survives the response
		go func(ctx context.Context) {
			ctx, cancel := context.WithTimeout(ctx, welcomeEmailTimeout)
			defer cancel()
			if err := s.notifier.SendWelcomeEmail(ctx, newUser.Email, newUser.Name); err != nil {
				s.logger.Warn("failed to send welcome email", "user_id", newUser.ID, "error", err)
			}
		}(context.WithoutCancel(ctx))
	}

	return s.issue(newUser)
}

// Login verifies credentials and issues a new session token. Unknown
// emails and wrong passwords return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// Burn the same hashing time as a real check
			s.hasher.Verify(password, s.dummyPasswordHash())
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, existing.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(existing)
}

// Me returns the account behind an authenticated principal
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) issue(u *user.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &Session{User: u, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func validateRegistration(name, email, password string) error {
	switch {
	case name == "":
		return ErrNameRequired
	case utf8.RuneCountInString(name) > maxNameLength:
		return ErrNameTooLong
	case email == "":
		return ErrEmailRequired
	case len(email) > maxEmailLength:
		return ErrInvalidEmailFormat
	case password == "":
		return ErrPasswordRequired
	case utf8.RuneCountInString(password) < minPasswordLength:
		return ErrPasswordTooShort
	case len(password) > MaxPasswordBytes:
		return ErrPasswordTooLong
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmailFormat
	}
	return nil
}
