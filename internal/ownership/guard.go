// Package ownership decides whether a principal may mutate a resource.
package ownership

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
)

type Decision int

const (
	Allowed Decision = iota
	Forbidden
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Err maps the decision onto the application error taxonomy
func (d Decision) Err() error {
	switch d {
	case Allowed:
		return nil
	case NotFound:
		return apperr.ErrNotFound
	default:
		return apperr.ErrForbidden
	}
}

// Authorize runs before any mutation. Existence is checked first so a
// missing resource is reported the same way to every caller. A resource
// without a recorded owner can't be modified by anyone.
func Authorize(principal, owner uuid.UUID, exists bool) Decision {
	if !exists {
		return NotFound
	}
	if principal == uuid.Nil || owner == uuid.Nil || owner != principal {
		return Forbidden
	}
	return Allowed
}
