package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/roomboom-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/roomboom-api/internal/auth"
	"github.com/redmonkez12/roomboom-api/internal/config"
	"github.com/redmonkez12/roomboom-api/internal/database"
	"github.com/redmonkez12/roomboom-api/internal/email"
	"github.com/redmonkez12/roomboom-api/internal/favorites"
	httpServer "github.com/redmonkez12/roomboom-api/internal/http"
	"github.com/redmonkez12/roomboom-api/internal/listing"
	"github.com/redmonkez12/roomboom-api/internal/logging"
	"github.com/redmonkez12/roomboom-api/internal/observability"
	"github.com/redmonkez12/roomboom-api/internal/ratelimit"
	"github.com/redmonkez12/roomboom-api/internal/spot"
	"github.com/redmonkez12/roomboom-api/internal/storage/memory"
	"github.com/redmonkez12/roomboom-api/internal/user"
)

// @title           RoomBoom API
// @version         1.0
// @description     Rental listings and discovery spots with cookie session auth.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
// @description Session token set by /auth/login and /auth/register.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

// backend is the storage each service runs on
type backend struct {
	users       *userBackend
	listings    listing.Repository
	spots       spot.Repository
	favorites   favorites.Store
	rateLimiter *ratelimit.Limiter
	close       func()
}

// userBackend satisfies both the auth repository and the host/author lookups
type userBackend struct {
	auth.UserRepository
	listing.HostLookup
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"token_strategy", cfg.Auth.TokenStrategy,
	)

	ctx := context.Background()

	var store *backend
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = initMemory(logger)
	default:
		store, err = initPostgres(ctx, cfg, logger)
		if err != nil {
			return err
		}
	}
	defer store.close()

	// Initialize token service and password hasher
	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	hasher := auth.NewPasswordHasher(cfg.Auth)

	var notifier auth.WelcomeNotifier
	if cfg.Email.EmailEnabled() {
		notifier = email.NewService(cfg.Email)
	} else {
		logger.Info("SMTP not configured, welcome emails disabled")
	}

	// Initialize services
	authService := auth.NewService(store.users, hasher, tokenService, notifier, logger)
	listingService := listing.NewService(store.listings, store.users)
	spotService := spot.NewService(store.spots, store.users)
	favoritesService := favorites.NewService(store.favorites, spotService, listingService)

	// Initialize HTTP handlers
	cookies := auth.NewCookieManager(cfg.Server.CookieSecure)
	handlers := httpServer.Handlers{
		Auth:      auth.NewHandler(authService, cookies, store.rateLimiter, favoritesService),
		Spots:     spot.NewHandler(spotService),
		Listings:  listing.NewHandler(listingService),
		Favorites: favorites.NewHandler(favoritesService),
	}
	authMiddleware := auth.NewMiddleware(tokenService, cookies)

	// Initialize router
	router := httpServer.NewRouter(cfg, handlers, authMiddleware, observability.NewMetrics(), logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func initMemory(logger *logging.Logger) *backend {
	logger.Warn("using in-memory storage, data is lost on restart")
	users := memory.NewUserRepository()
	return &backend{
		users:       &userBackend{UserRepository: users, HostLookup: users},
		listings:    memory.NewListingRepository(),
		spots:       memory.NewSpotRepository(),
		favorites:   memory.NewFavoriteStore(),
		rateLimiter: ratelimit.Disabled(),
		close:       func() {},
	}
}

func initPostgres(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*backend, error) {
	sqlDB, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	redisClient, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	db := database.NewBunDB(sqlDB)
	users := user.NewRepository(db)

	return &backend{
		users:       &userBackend{UserRepository: users, HostLookup: users},
		listings:    listing.NewPostgresRepository(db),
		spots:       spot.NewPostgresRepository(db),
		favorites:   favorites.NewRedisStore(redisClient),
		rateLimiter: ratelimit.NewLimiter(redisClient, cfg.RateLimit),
		close: func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close Redis", "error", err)
			}
			if err := db.Close(); err != nil {
				logger.Warn("failed to close database", "error", err)
			}
		},
	}, nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
