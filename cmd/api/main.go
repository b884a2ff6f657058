package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.mongodb.org/mongo-driver/mongo"

	_ "news-api/docs" // swagger docs
	"news-api/internal/config"
	hhttp "news-api/internal/handler/http"
	hnews "news-api/internal/handler/http/news"
	"news-api/internal/handler/http/requestid"
	mongoRepo "news-api/internal/infra/adapter/persistence/mongo"
	pgRepo "news-api/internal/infra/adapter/persistence/postgres"
	"news-api/internal/infra/db"
	"news-api/internal/infra/worker"
	grpcsrv "news-api/internal/interface/grpc"
	"news-api/internal/observability/logging"
	"news-api/internal/observability/tracing"
	"news-api/internal/repository"
	"news-api/internal/resilience/circuitbreaker"
	newsUC "news-api/internal/usecase/news"
)

// @title        News API
// @version      1.0
// @description  ニュース記事の CRUD REST API
// @host         localhost:3000
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger initializes the process logger from configuration and installs it as default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)
	return logger
}

// storage holds the opened storage engine and its cleanup.
type storage struct {
	repo   repository.NewsRepository
	db     *sql.DB // postgres only, for pool stats
	engine string
	close  func(ctx context.Context) error
}

// openStorage connects to the configured engine and prepares its schema.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.Open(ctx, cfg.PostgresDSN(), db.DefaultConnectionConfig())
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(ctx, database); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return &storage{
			repo:   pgRepo.NewNewsRepo(database),
			db:     database,
			engine: config.DriverPostgres,
			close:  func(context.Context) error { return database.Close() },
		}, nil

	default:
		client, err := db.OpenMongo(ctx, db.MongoConfig{URI: cfg.MongoURI()})
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.Storage.Mongo.Database).Collection(mongoRepo.CollectionName)
		if err := db.EnsureNewsIndexes(ctx, coll); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return &storage{
			repo:   mongoRepo.NewNewsRepo(coll),
			engine: config.DriverMongo,
			close:  disconnect(client),
		}, nil
	}
}

func disconnect(client *mongo.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error { return client.Disconnect(ctx) }
}

// run wires every component and blocks until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing := tracing.Setup()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	logger.Info("storage ready", slog.String("engine", store.engine), slog.String("mode", string(cfg.Mode)))

	return serve(ctx, cfg, logger, store)
}

// serve runs the HTTP server, the optional gRPC server and the scheduler on store until
// ctx is cancelled or one of them fails. store is closed on every return path.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, store *storage) error {
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	repo := circuitbreaker.NewNewsRepository(store.repo, circuitbreaker.StorageConfig(), cfg.Storage.Timeout)
	svc := &newsUC.Service{Repo: repo, BulkDeleteLimit: cfg.BulkDeleteConcurrency}

	proxies, err := cfg.RateLimit.TrustedProxyPrefixes()
	if err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	handler := applyMiddleware(cfg, logger, hhttp.NewIPExtractor(proxies), setupRoutes(cfg, svc, repo, store))

	// ジョブ登録はリスナー起動前に行う
	scheduler := worker.NewScheduler(logger)
	var stats *worker.StatsJob
	if cfg.Stats.Schedule != "" {
		stats = &worker.StatsJob{Counter: svc, Logger: logger, Timeout: cfg.Stats.Timeout}
		if err := scheduler.Add("stats", cfg.Stats.Schedule, stats); err != nil {
			return err
		}
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return runCtx
		},
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var gs *grpcsrv.Server
	grpcDone := make(chan struct{})
	if cfg.GRPC.Addr != "" {
		gs = grpcsrv.NewServer(cfg.GRPC.Addr, svc, logger)
		go func() {
			defer close(grpcDone)
			if err := gs.Run(runCtx); err != nil {
				errCh <- err
			}
		}()
	}

	scheduler.Start()
	if stats != nil {
		// 起動直後に一度実行
		go stats.Run(runCtx)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down server...")
	case runErr = <-errCh:
		logger.Error("component failed, shutting down", slog.Any("error", runErr))
	}
	// stops the gRPC server gracefully
	cancelRun()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if gs != nil {
		select {
		case <-grpcDone:
		case <-shutdownCtx.Done():
			logger.Error("grpc graceful stop timed out")
			gs.Stop()
			<-grpcDone
		}
		logger.Info("grpc server stopped")
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler stop failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
	return runErr
}

// setupRoutes registers the news API and the operational endpoints.
func setupRoutes(cfg *config.Config, svc *newsUC.Service, breaker *circuitbreaker.NewsRepository, store *storage) *http.ServeMux {
	mux := http.NewServeMux()
	hnews.Register(mux, svc)

	health := &hhttp.HealthHandler{
		Storage: breaker,
		DB:      store.db,
		Breaker: breaker,
		Version: cfg.Version,
		Engine:  store.engine,
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /healthcheck", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Storage: breaker})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Rate Limit → Body Limit → Metrics
// ips resolves client addresses for rate limiting and access logs.
func applyMiddleware(cfg *config.Config, logger *slog.Logger, ips hhttp.IPExtractor, handler http.Handler) http.Handler {
	h := hhttp.MetricsMiddleware(handler)
	h = hhttp.LimitRequestBody(cfg.HTTP.MaxBodyBytes)(h)

	if cfg.RateLimit.Enabled() {
		h = hhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, ips).Limit(h)
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("trusted_proxies", len(cfg.RateLimit.TrustedProxies)))
	}

	h = hhttp.Logging(logger, ips)(h)
	h = hhttp.Recover(logger)(h)
	h = tracing.Middleware(h)
	return requestid.Middleware(h)
}
