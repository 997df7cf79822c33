package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/roomboom-api/internal/auth"
	"github.com/redmonkez12/roomboom-api/internal/config"
	"github.com/redmonkez12/roomboom-api/internal/favorites"
	"github.com/redmonkez12/roomboom-api/internal/httputil"
	"github.com/redmonkez12/roomboom-api/internal/listing"
	"github.com/redmonkez12/roomboom-api/internal/logging"
	"github.com/redmonkez12/roomboom-api/internal/observability"
	"github.com/redmonkez12/roomboom-api/internal/spot"
)

// Handlers groups the resource handlers mounted under /api
type Handlers struct {
	Auth      *auth.Handler
	Spots     *spot.Handler
	Listings  *listing.Handler
	Favorites *favorites.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, authMiddleware *auth.Middleware, metrics *observability.Metrics, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	if metrics != nil {
		r.Use(metrics.Middleware)
	}
	r.Use(middleware.Compress(5))

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleMethodNotAllowed)

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled", "path", "/swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Route("/discovery", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.OptionalAuth)
				r.Get("/", h.Spots.List)
				r.Get("/trending", h.Spots.Trending)
				r.Get("/tags", h.Spots.Tags)
				r.Get("/{id}", h.Spots.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/", h.Spots.Create)
				r.Put("/{id}", h.Spots.Update)
				r.Delete("/{id}", h.Spots.Delete)
			})
		})

		r.Route("/listings", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.OptionalAuth)
				r.Get("/", h.Listings.List)
				r.Get("/featured", h.Listings.Featured)
				r.Get("/{id}", h.Listings.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAuth)
				r.Post("/", h.Listings.Create)
				r.Put("/{id}", h.Listings.Update)
				r.Delete("/{id}", h.Listings.Delete)
			})
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", h.Favorites.List)
			r.Get("/check/{type}/{id}", h.Favorites.Check)
			r.Post("/{type}/{id}", h.Favorites.Add)
			r.Delete("/{type}/{id}", h.Favorites.Remove)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "route not found", httputil.CodeRouteNotFound, http.StatusNotFound)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httputil.RespondErrorWithCode(w, "method not allowed", httputil.CodeRouteNotFound, http.StatusMethodNotAllowed)
}
