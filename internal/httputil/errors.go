package httputil

import (
	"errors"
	"net/http"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/logging"
)

// RespondServiceError maps a service error to a status code and writes it.
// Errors that do not wrap an apperr kind are logged and reported as a
// generic internal error; their text never reaches the client.
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	switch {
	case errors.Is(err, apperr.ErrValidation):
		RespondErrorWithCode(w, err.Error(), CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, apperr.ErrUnauthenticated):
		RespondErrorWithCode(w, "authentication required", CodeUnauthenticated, http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		RespondErrorWithCode(w, "not authorized to modify this resource", CodeForbidden, http.StatusForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		RespondErrorWithCode(w, err.Error(), CodeNotFound, http.StatusNotFound)
	case errors.Is(err, apperr.ErrConflict):
		RespondErrorWithCode(w, err.Error(), CodeConflict, http.StatusConflict)
	default:
		logger.Error("request failed: internal error", "error", err.Error())
		RespondErrorWithCode(w, "internal server error", CodeInternalError, http.StatusInternalServerError)
	}
}
