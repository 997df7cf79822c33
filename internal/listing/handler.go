package listing

import (
	"net/http"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/auth"
	"github.com/redmonkez12/roomboom-api/internal/httputil"
	"github.com/redmonkez12/roomboom-api/internal/logging"
	"github.com/redmonkez12/roomboom-api/internal/query"
)

// Handler contains HTTP handlers for rental listings
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListResponse is the paginated listing envelope
type ListResponse = query.Result[Listing]

// FeaturedResponse wraps the featured listings
type FeaturedResponse struct {
	Count int       `json:"count"`
	Data  []Listing `json:"data"`
}

// List handles listing search
// @Summary      List listings
// @Description  Available listings filtered by city, price range, bedrooms, property type and free text
// @Tags         listings
// @Produce      json
// @Param        city         query string false "City substring"
// @Param        minPrice     query int    false "Minimum monthly price"
// @Param        maxPrice     query int    false "Maximum monthly price"
// @Param        bedrooms     query int    false "Exact bedroom count"
// @Param        propertyType query string false "Property type"
// @Param        search       query string false "Free text search"
// @Param        page         query int    false "Page number" default(1)
// @Param        limit        query int    false "Page size" default(12)
// @Success      200 {object} ListResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /listings [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := query.BuildListingFilter(r.URL.Query())

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// Featured handles the featured listings carousel
// @Summary      Featured listings
// @Tags         listings
// @Produce      json
// @Param        limit query int false "Number of listings" default(6)
// @Success      200 {object} FeaturedResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /listings/featured [get]
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Featured(r.Context(), query.Limit(r.URL.Query(), DefaultFeaturedLimit))
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondJSON(w, FeaturedResponse{Count: len(items), Data: items}, http.StatusOK)
}

// Get handles fetching a single listing
// @Summary      Get listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} httputil.DataResponse{data=Listing}
// @Failure      400 {object} httputil.ErrorResponse "Invalid id"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Router       /listings/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid listing id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	l, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondData(w, l, http.StatusOK)
}

// Create handles listing creation
// @Summary      Create listing
// @Description  The authenticated user becomes the host
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Listing"
// @Success      201 {object} httputil.DataResponse{data=Listing}
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /listings [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	var req CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	l, err := h.service.Create(r.Context(), principal, req)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	logger.Info("listing created", "listing_id", l.ID, "host_id", principal)
	httputil.RespondData(w, l, http.StatusCreated)
}

// Update handles partial listing updates
// @Summary      Update listing
// @Description  Only the host may update a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id      path string        true "Listing ID"
// @Param        request body UpdateRequest true "Fields to change"
// @Success      200 {object} httputil.DataResponse{data=Listing}
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Failure      403 {object} httputil.ErrorResponse "Not the host"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Router       /listings/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid listing id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	l, err := h.service.Update(r.Context(), principal, id, req)
	if err != nil {
		logger.Warn("listing update rejected", "listing_id", id, "error", err.Error())
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondData(w, l, http.StatusOK)
}

// Delete handles listing removal
// @Summary      Delete listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID"
// @Success      200 {object} httputil.MessageResponse
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Failure      403 {object} httputil.ErrorResponse "Not the host"
// @Failure      404 {object} httputil.ErrorResponse "Listing not found"
// @Router       /listings/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid listing id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		logger.Warn("listing delete rejected", "listing_id", id, "error", err.Error())
		httputil.RespondServiceError(w, r, err)
		return
	}

	logger.Info("listing deleted", "listing_id", id)
	httputil.RespondMessage(w, "listing deleted", http.StatusOK)
}
