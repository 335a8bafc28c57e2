package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/grammalecte-api/internal/adapter/cache"
	"github.com/heartmarshall/grammalecte-api/internal/adapter/grammalecte"
	"github.com/heartmarshall/grammalecte-api/internal/adapter/postgres"
	"github.com/heartmarshall/grammalecte-api/internal/adapter/postgres/checklog"
	"github.com/heartmarshall/grammalecte-api/internal/auth"
	"github.com/heartmarshall/grammalecte-api/internal/config"
	"github.com/heartmarshall/grammalecte-api/internal/domain"
	"github.com/heartmarshall/grammalecte-api/internal/engine"
	"github.com/heartmarshall/grammalecte-api/internal/service/checker"
	"github.com/heartmarshall/grammalecte-api/internal/service/stats"
	"github.com/heartmarshall/grammalecte-api/internal/textformat"
	"github.com/heartmarshall/grammalecte-api/internal/transport/middleware"
	"github.com/heartmarshall/grammalecte-api/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// engine and optional stores, and serves HTTP until ctx is cancelled.
// Any startup failure is returned before the listener opens.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("engine_driver", cfg.Engine.Driver),
		slog.String("lang", cfg.Engine.Lang),
	)

	telemetry, err := SetupTelemetry(ctx, cfg.OTel, Version)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}

	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer srv.close()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      srv.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown", slog.String("error", err.Error()))
	}

	logger.Info("stopped")
	return nil
}

// Local views of the optional collaborators. They stay nil interfaces when
// the backing store is not configured, which the services treat as disabled.
type (
	paragraphCache interface {
		Get(ctx context.Context, key string) ([]byte, bool, error)
		Set(ctx context.Context, key string, payload []byte) error
	}
	checkStore interface {
		Record(ctx context.Context, rec domain.CheckRecord) error
		Stats(ctx context.Context, since time.Time) (domain.CheckStats, error)
	}
	pinger interface {
		Ping(ctx context.Context) error
	}
)

type server struct {
	handler http.Handler
	closers []func()
}

func (s *server) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// newServer builds every dependency and the HTTP handler.
func newServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *server, err error) {
	srv := &server{}
	defer func() {
		if err != nil {
			srv.close()
		}
	}()

	eng, err := newEngine(ctx, cfg.Engine, logger)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	guard := engine.NewGuard(eng, cfg.Engine.MaxConcurrency)

	var paragraphs paragraphCache
	switch {
	case !cfg.Cache.Enabled:
	case cfg.Cache.RedisURL != "":
		client, err := cache.Dial(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		srv.closers = append(srv.closers, func() { _ = client.Close() })
		paragraphs = cache.NewRedis(client, cfg.Cache.TTL)
		logger.Info("paragraph cache: redis")
	default:
		paragraphs = cache.NewLRU(cfg.Cache.Size, cfg.Cache.TTL)
		logger.Info("paragraph cache: in-memory", slog.Int("size", cfg.Cache.Size))
	}

	var (
		store checkStore
		db    pinger
	)
	if cfg.Database.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		srv.closers = append(srv.closers, pool.Close)

		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return nil, err
		}
		logger.Info("database ready", slog.Int("migrations_applied", applied))

		store = checklog.New(pool)
		db = pool
	}

	checkSvc := checker.NewService(logger, guard, textformat.New(cfg.Engine.FormatDisabledRules...), paragraphs, store, checker.Settings{
		Workers:       cfg.Engine.ParagraphWorkers,
		MaxTextLength: cfg.Engine.MaxTextLength,
	})
	statsSvc := stats.NewService(logger, store)

	authMW, protect := protection(cfg.Auth, logger)

	mux := http.NewServeMux()
	rest.Routes{
		Health: rest.NewHealthHandler(guard, db),
		Check:  rest.NewCheckHandler(checkSvc, logger),
		Stats:  rest.NewStatsHandler(statsSvc, logger),
	}.Register(mux, protect)

	var limit middleware.Middleware
	if rpm := cfg.RateLimit.RequestsPerMinute; rpm > 0 {
		limiter := middleware.NewRateLimiter(time.Minute)
		srv.closers = append(srv.closers, limiter.Stop)
		limit = limiter.Limit(rpm)
	}

	srv.handler = middleware.Chain(
		middleware.RequestID,
		// Auth runs ahead of Logger so the request log carries the client.
		authMW,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limit,
	)(mux)
	return srv, nil
}

// newEngine returns the configured engine. The remote engine must answer
// its startup probe or the process does not start.
func newEngine(ctx context.Context, cfg config.EngineConfig, logger *slog.Logger) (engine.Engine, error) {
	if cfg.Driver == config.DriverStub {
		logger.Warn("using stub grammar engine")
		return grammalecte.NewStub(cfg), nil
	}

	client := grammalecte.New(cfg, logger)
	if err := client.Init(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// protection returns the token-checking middleware and the per-route guard.
// Both are nil when no signing secret is configured.
func protection(cfg config.AuthConfig, logger *slog.Logger) (middleware.Middleware, middleware.Middleware) {
	if !cfg.Enabled() {
		logger.Warn("auth disabled: client endpoints are open")
		return nil, nil
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	return middleware.Auth(jwtManager, false), middleware.RequireClient
}
