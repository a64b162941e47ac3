package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/talento/internal/adapters/clientes"
	"github.com/okian/talento/internal/adapters/http/api"
	"github.com/okian/talento/internal/adapters/http/site"
	"github.com/okian/talento/internal/app"
	"github.com/okian/talento/internal/config"
	"github.com/okian/talento/pkg/logger"
	"github.com/okian/talento/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	// writeSlack is added to the backend timeout so a slow update can still
	// be answered with the error page.
	writeSlack = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is configured from cfg, so it is not available yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "server failed", logger.Error(err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	srv, err := newServer(ctx, cfg, log)
	if err != nil {
		return err
	}

	go startSystemMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("api_base_url", cfg.APIBaseURL))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newServer wires the backend client, pages and operational routes.
func newServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*http.Server, error) {
	timeout := time.Duration(cfg.APITimeoutMS) * time.Millisecond
	backend := clientes.New(
		clientes.WithBaseURL(cfg.APIBaseURL),
		clientes.WithTimeout(timeout),
		clientes.WithLogger(log.Named("clientes")),
	)

	guard := app.NewGuard()
	pages, err := site.New(backend,
		site.WithLogger(log.Named("site")),
		site.WithReturnPath(cfg.ReturnPath),
		site.WithGuard(guard),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	pages.Register(ctx, mux)
	api.NewServer(&statsProvider{guard: guard, backend: backend}).Register(ctx, mux)

	// A backend call without a timeout leaves the write unbounded too.
	var writeTimeout time.Duration
	if timeout > 0 {
		writeTimeout = timeout + writeSlack
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

// statsProvider feeds /stats.
type statsProvider struct {
	guard   app.Guard
	backend *clientes.Client
}

func (p *statsProvider) GetStats(context.Context) (map[string]any, error) {
	series, err := metrics.Snapshot()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"api_base_url":    p.backend.BaseURL(),
		"forms_in_flight": p.guard.Size(),
		"goroutines":      runtime.NumGoroutine(),
		"metric_series":   series,
	}, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
