package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes a request body into dst. Fields dst does not declare
// are ignored, which keeps owner ids out of client-controlled input.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", apperr.ErrValidation)
		}
		return fmt.Errorf("%w: invalid request body", apperr.ErrValidation)
	}
	return nil
}

// URLParamID parses a chi URL parameter as a UUID.
func URLParamID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", apperr.ErrValidation, name)
	}
	return id, nil
}
