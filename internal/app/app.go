package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/estatehub/internal/assistant"
	"github.com/utafrali/estatehub/internal/auth"
	rediscache "github.com/utafrali/estatehub/internal/cache/redis"
	"github.com/utafrali/estatehub/internal/config"
	"github.com/utafrali/estatehub/internal/event"
	handler "github.com/utafrali/estatehub/internal/handler/http"
	"github.com/utafrali/estatehub/internal/lookup"
	"github.com/utafrali/estatehub/internal/repository"
	"github.com/utafrali/estatehub/internal/repository/postgres"
	"github.com/utafrali/estatehub/internal/scheduler"
	"github.com/utafrali/estatehub/internal/service"
	"github.com/utafrali/estatehub/migrations"
	"github.com/utafrali/estatehub/pkg/database"
	"github.com/utafrali/estatehub/pkg/health"
	pkgkafka "github.com/utafrali/estatehub/pkg/kafka"
	"github.com/utafrali/estatehub/pkg/middleware"
	"github.com/utafrali/estatehub/pkg/tracing"
)

// App wires together all dependencies and runs the listing service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	scheduler      *scheduler.Scheduler
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
	cancel         context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	if err := a.init(ctx); err != nil {
		a.closeResources()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	// Tracing.
	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)

	// PostgreSQL.
	a.pool, err = database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	if err := database.RunMigrations(ctx, a.pool, migrations.FS, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, a.pool, config.ServiceName); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}

	healthHandler := health.NewHandler(config.ServiceName)
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return a.pool.Ping(ctx)
	})

	// Redis featured cache. Left as a nil interface when disabled so the
	// service skips it entirely.
	var featuredCache repository.FeaturedCache
	if cfg.CacheEnabled() {
		a.rdb, err = database.NewRedisClient(ctx, cfg.Redis(), logger)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		featuredCache = rediscache.NewFeaturedCache(a.rdb, cfg.FeaturedCacheTTL)
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return a.rdb.Ping(ctx).Err()
		})
		logger.Info("featured cache enabled", slog.String("addr", cfg.Redis().Addr()))
	}

	// Kafka producer.
	var publisher event.Publisher
	if cfg.EventsEnabled() {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	eventProducer := event.NewProducer(publisher, logger)

	// Repositories and services.
	propertyRepo := postgres.NewPropertyRepository(a.pool)
	ratingRepo := postgres.NewRatingRepository(a.pool)
	savedRepo := postgres.NewSavedPropertyRepository(a.pool)
	appointmentRepo := postgres.NewAppointmentRepository(a.pool)
	agentRepo := postgres.NewAgentRepository(a.pool)

	propertyService := service.NewPropertyService(propertyRepo, ratingRepo, featuredCache, eventProducer, logger)

	services := handler.Services{
		Properties:   propertyService,
		Ratings:      service.NewRatingService(propertyRepo, ratingRepo, eventProducer, logger),
		Saved:        service.NewSavedPropertyService(propertyRepo, savedRepo, logger),
		Appointments: service.NewAppointmentService(propertyRepo, appointmentRepo, eventProducer, logger),
		Agents:       service.NewAgentService(agentRepo),
		Lookup:       lookup.Disabled{},
		Assistant:    assistant.KeywordResponder{},
	}

	if cfg.LookupEnabled() {
		services.Lookup = lookup.NewClient(lookup.Config{
			BaseURL: cfg.LookupBaseURL,
			APIKey:  cfg.LookupAPIKey,
			APIHost: cfg.LookupAPIHost,
			Timeout: cfg.LookupTimeout,
		}, logger)
	}
	if cfg.OpenAIAPIKey != "" {
		services.Assistant = assistant.NewOpenAIResponder(assistant.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		}, assistant.KeywordResponder{}, logger)
	}

	if featuredCache != nil {
		a.scheduler, err = scheduler.New(cfg.FeaturedRefresh, propertyService, logger)
		if err != nil {
			return err
		}
	}

	// HTTP router. The context outlives init and is cancelled on shutdown.
	routerCtx, routerCancel := context.WithCancel(context.Background())
	a.cancel = routerCancel

	verifier := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	router := handler.NewRouter(routerCtx, handler.RouterConfig{
		ServiceName:       config.ServiceName,
		Verify:            verifier.Verify,
		CORS:              middleware.CORSConfig{AllowedOrigins: cfg.CORSAllowedOrigins},
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
		PublicCacheMaxAge: cfg.PublicCacheMaxAge,
		PprofAllowedCIDRs: cfg.PprofAllowedCIDRs,
	}, services, healthHandler, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.scheduler != nil {
		a.scheduler.Start(ctx)
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	if a.scheduler != nil {
		a.scheduler.Stop(shutdownCtx)
	}

	a.closeResources()
	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// closeResources releases connections in reverse order of creation.
func (a *App) closeResources() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
