package spot

import (
	"net/http"

	"github.com/redmonkez12/roomboom-api/internal/apperr"
	"github.com/redmonkez12/roomboom-api/internal/auth"
	"github.com/redmonkez12/roomboom-api/internal/httputil"
	"github.com/redmonkez12/roomboom-api/internal/logging"
	"github.com/redmonkez12/roomboom-api/internal/query"
)

// Handler contains HTTP handlers for the discovery feed
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListResponse is the paginated spot envelope
type ListResponse = query.Result[Spot]

// TrendingResponse wraps the trending spots
type TrendingResponse struct {
	Count int    `json:"count"`
	Data  []Spot `json:"data"`
}

// List handles discovery search
// @Summary      List discovery spots
// @Tags         discovery
// @Produce      json
// @Param        tag       query string false "Tag name"
// @Param        city      query string false "City substring"
// @Param        minRating query number false "Minimum rating"
// @Param        search    query string false "Free text search"
// @Param        page      query int    false "Page number" default(1)
// @Param        limit     query int    false "Page size" default(20)
// @Success      200 {object} ListResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /discovery [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), query.BuildSpotFilter(r.URL.Query()))
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondJSON(w, result, http.StatusOK)
}

// Trending handles the trending strip
// @Summary      Trending spots
// @Tags         discovery
// @Produce      json
// @Param        limit query int false "Number of spots" default(4)
// @Success      200 {object} TrendingResponse
// @Router       /discovery/trending [get]
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Trending(r.Context(), query.Limit(r.URL.Query(), DefaultTrendingLimit))
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondJSON(w, TrendingResponse{Count: len(items), Data: items}, http.StatusOK)
}

// Tags lists the tag catalogue
// @Summary      Discovery tags
// @Tags         discovery
// @Produce      json
// @Success      200 {object} httputil.DataResponse{data=[]Tag}
// @Router       /discovery/tags [get]
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	httputil.RespondData(w, Tags, http.StatusOK)
}

// Get handles fetching a single spot
// @Summary      Get spot
// @Tags         discovery
// @Produce      json
// @Param        id path string true "Spot ID"
// @Success      200 {object} httputil.DataResponse{data=Spot}
// @Failure      400 {object} httputil.ErrorResponse "Invalid id"
// @Failure      404 {object} httputil.ErrorResponse "Spot not found"
// @Router       /discovery/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid spot id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	sp, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondData(w, sp, http.StatusOK)
}

// Create handles spot creation
// @Summary      Create spot
// @Tags         discovery
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Spot"
// @Success      201 {object} httputil.DataResponse{data=Spot}
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /discovery [post]
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

	sp, err := h.service.Create(r.Context(), principal, req)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	logger.Info("spot created", "spot_id", sp.ID, "user_id", principal)
	httputil.RespondData(w, sp, http.StatusCreated)
}

// Update handles partial spot updates
// @Summary      Update spot
// @Description  Only the author may update a spot
// @Tags         discovery
// @Accept       json
// @Produce      json
// @Param        id      path string        true "Spot ID"
// @Param        request body UpdateRequest true "Fields to change"
// @Success      200 {object} httputil.DataResponse{data=Spot}
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Failure      403 {object} httputil.ErrorResponse "Not the author"
// @Failure      404 {object} httputil.ErrorResponse "Spot not found"
// @Router       /discovery/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid spot id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	var req UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	sp, err := h.service.Update(r.Context(), principal, id, req)
	if err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	httputil.RespondData(w, sp, http.StatusOK)
}

// Delete handles spot removal
// @Summary      Delete spot
// @Tags         discovery
// @Produce      json
// @Param        id path string true "Spot ID"
// @Success      200 {object} httputil.MessageResponse
// @Failure      403 {object} httputil.ErrorResponse "Not the author"
// @Failure      404 {object} httputil.ErrorResponse "Spot not found"
// @Router       /discovery/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		httputil.RespondServiceError(w, r, apperr.ErrUnauthenticated)
		return
	}

	id, err := httputil.URLParamID(r, "id")
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid spot id", httputil.CodeInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), principal, id); err != nil {
		httputil.RespondServiceError(w, r, err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("spot deleted", "spot_id", id)
	httputil.RespondMessage(w, "spot deleted", http.StatusOK)
}
