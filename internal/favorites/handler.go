package favorites

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/auth"
	"github.com/redmonkez12/roomboom-api/internal/httputil"
	"github.com/redmonkez12/roomboom-api/internal/logging"
)

// Handler contains HTTP handlers for a user's favorites. Every route
// requires authentication.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CheckResponse reports favorite membership
type CheckResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

// List handles fetching the user's favorites
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Success      200 {object} httputil.DataResponse{data=List}
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /favorites [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	list, err := h.service.List(r.Context(), principal)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondData(w, list, http.StatusOK)
}

// Add handles adding a favorite
// @Summary      Add favorite
// @Tags         favorites
// @Produce      json
// @Param        type path string true "spot or listing"
// @Param        id   path string true "Resource ID"
// @Success      200 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid type or id"
// @Failure      404 {object} httputil.ErrorResponse "Resource not found"
// @Router       /favorites/{type}/{id} [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	principal, kind, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.service.Add(r.Context(), principal, kind, id); err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Debug("favorite added", "kind", string(kind), "target_id", id)
	httputil.RespondMessage(w, fmt.Sprintf("added to favorite %ss", kind), http.StatusOK)
}

// Remove handles removing a favorite
// @Summary      Remove favorite
// @Tags         favorites
// @Produce      json
// @Param        type path string true "spot or listing"
// @Param        id   path string true "Resource ID"
// @Success      200 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid type or id"
// @Router       /favorites/{type}/{id} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	principal, kind, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), principal, kind, id); err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondMessage(w, fmt.Sprintf("removed from favorite %ss", kind), http.StatusOK)
}

// Check handles favorite membership lookups
// @Summary      Check favorite
// @Tags         favorites
// @Produce      json
// @Param        type path string true "spot or listing"
// @Param        id   path string true "Resource ID"
// @Success      200 {object} CheckResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid type or id"
// @Router       /favorites/check/{type}/{id} [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	principal, kind, id, ok := h.target(w, r)
	if !ok {
		return
	}

	isFavorite, err := h.service.Check(r.Context(), principal, kind, id)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondJSON(w, CheckResponse{IsFavorite: isFavorite}, http.StatusOK)
}

// target reads the principal and the {type}/{id} path parameters, writing
// the error response itself when one of them is missing or malformed
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (uuid.UUID, Kind, uuid.UUID, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return uuid.Nil, "", uuid.Nil, false
	}

	kind, err := ParseKind(chi.URLParam(r, "type"))
	if err != nil {
		httputil.RespondErrorWithCode(w, `invalid type, use "spot" or "listing"`, httputil.CodeInvalidType, http.StatusBadRequest)
		return uuid.Nil, "", uuid.Nil, false
	}

	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid id", httputil.CodeInvalidID, http.StatusBadRequest)
		return uuid.Nil, "", uuid.Nil, false
	}

	return principal, kind, id, true
}
