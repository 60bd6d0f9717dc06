// Package main is the entrypoint for the CreatorVerse web server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/creatorverse/creatorverse/internal/cache"
	"github.com/creatorverse/creatorverse/internal/config"
	"github.com/creatorverse/creatorverse/internal/handler"
	"github.com/creatorverse/creatorverse/internal/metrics"
	"github.com/creatorverse/creatorverse/internal/middleware"
	"github.com/creatorverse/creatorverse/internal/remote"
	"github.com/creatorverse/creatorverse/internal/repository"
	"github.com/creatorverse/creatorverse/internal/server"
	"github.com/creatorverse/creatorverse/internal/store"
	"github.com/creatorverse/creatorverse/internal/view"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Never log the values, only whether they are present.
	logger.Info("remote collection settings",
		slog.String("backend", cfg.CollectionBackend),
		slog.Bool("project_url_set", cfg.SupabaseProjectURL != ""),
		slog.Bool("api_key_set", cfg.SupabaseAPIKey != ""),
		slog.Bool("database_url_set", cfg.DatabaseURL != ""),
	)

	metricsRecorder := metrics.NewInMemory()

	renderer, err := view.New()
	if err != nil {
		logger.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	backend, closeBackend := newBackend(ctx, cfg, logger)

	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn(
				"failed to connect to Redis, form rate limiting disabled",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			logger.Info("connected to Redis")
		}
	}

	collection := remote.NewClient(backend, logger, metricsRecorder)
	creatorStore := store.New(collection, logger, metricsRecorder)

	h := handler.New(renderer, logger)
	creatorHandler := handler.NewCreatorHandler(h, collection, creatorStore)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	var healthHandler *handler.HealthHandler
	if cacheClient != nil {
		healthHandler = handler.NewHealthHandler(collection, cacheClient)
	} else {
		healthHandler = handler.NewHealthHandler(collection, nil)
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:    logger,
		Metrics:   metricsRecorder,
		Enabled:   cfg.RateLimitFormsEnabled && cacheClient != nil,
		RPS:       cfg.RateLimitFormsRPS,
		Burst:     cfg.RateLimitFormsBurst,
		OnLimited: h.TooManyRequests,
	}
	if cacheClient != nil {
		rateLimitCfg.Limiter = cacheClient
	}

	r := setupRouter(h, creatorHandler, healthHandler, metricsHandler, rateLimitCfg, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	if closeBackend != nil {
		srv.OnShutdown("database", func(ctx context.Context) error {
			closeBackend()
			return nil
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newBackend selects the transport to the creators table. Missing settings
// do not stop the server: the Unconfigured backend reports them on every
// page instead. The returned func, when non-nil, releases the backend.
func newBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (remote.Backend, func()) {
	if err := cfg.CollectionError(); err != nil {
		logger.Error("remote collection is not configured", "error", err)
		return remote.NewUnconfigured(err), nil
	}

	switch cfg.CollectionBackend {
	case config.BackendPostgres:
		repo, err := repository.New(ctx, cfg.DatabaseURL, cfg.CreatorsTable)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to database", slog.String("table", cfg.CreatorsTable))
		return repo, repo.Close

	default:
		table, err := remote.NewTable(cfg.SupabaseProjectURL, cfg.SupabaseAPIKey, cfg.CreatorsTable, remote.NewHTTPClient())
		if err != nil {
			logger.Error("invalid remote collection settings", "error", err)
			return remote.NewUnconfigured(err), nil
		}
		logger.Info("using hosted table", slog.String("endpoint", table.Endpoint()))
		return table, nil
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	creatorHandler *handler.CreatorHandler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	rateLimitCfg middleware.RateLimitConfig,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger, h.InternalError))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Operational endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Pages; only form submissions are rate limited
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitForms(rateLimitCfg))
		creatorHandler.Routes(r)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
