package favorites

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
)

// Kind is the type of resource a favorite points at
type Kind string

const (
	KindSpot    Kind = "spot"
	KindListing Kind = "listing"
)

var ErrInvalidKind = fmt.Errorf(`%w: invalid type, use "spot" or "listing"`, apperr.ErrValidation)

// ParseKind validates a kind taken from the URL
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSpot, KindListing:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

// Store keeps each user's favorites as a set per kind. Add and Remove are
// idempotent.
type Store interface {
	Add(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error
	Remove(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) error
	Contains(ctx context.Context, userID uuid.UUID, kind Kind, id uuid.UUID) (bool, error)
	Members(ctx context.Context, userID uuid.UUID, kind Kind) ([]uuid.UUID, error)
}
