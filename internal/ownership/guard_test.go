package ownership

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name      string
		principal uuid.UUID
		owner     uuid.UUID
		exists    bool
		want      Decision
		wantErr   error
	}{
		{"owner may mutate", owner, owner, true, Allowed, nil},
		{"other principal is forbidden", other, owner, true, Forbidden, apperr.ErrForbidden},
		{"missing resource for owner", owner, owner, false, NotFound, apperr.ErrNotFound},
		{"missing resource for other", other, owner, false, NotFound, apperr.ErrNotFound},
		{"anonymous principal", uuid.Nil, owner, true, Forbidden, apperr.ErrForbidden},
		{"resource without owner", owner, uuid.Nil, true, Forbidden, apperr.ErrForbidden},
		{"nil owner and anonymous principal", uuid.Nil, uuid.Nil, true, Forbidden, apperr.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.principal, tt.owner, tt.exists)

			assert.Equal(t, tt.want, got, "decision was %s", got)
			assert.Equal(t, tt.wantErr, got.Err())
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "allowed", Allowed.String())
	assert.Equal(t, "forbidden", Forbidden.String())
	assert.Equal(t, "not_found", NotFound.String())
}
