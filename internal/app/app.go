// v2
// internal/app/app.go

// Package app wires configuration, logging, the holiday source chain, the
// projector, and the HTTP server into one runnable service with graceful
// shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/timeisseler/ferienplanung/internal/api"
	"github.com/timeisseler/ferienplanung/internal/config"
	"github.com/timeisseler/ferienplanung/internal/holiday"
	"github.com/timeisseler/ferienplanung/internal/logging"
	"github.com/timeisseler/ferienplanung/internal/metrics"
	"github.com/timeisseler/ferienplanung/internal/projector"
)

// Application carries the wired service instance.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	logFile *os.File
	server  *http.Server
	health  *api.HealthState
	store   *holiday.Store
}

// New prepares a fully wired service instance using the supplied
// configuration. It initializes logging, builds the holiday source chain,
// and attaches the HTTP router with middleware.
func New(cfg config.Config) (*Application, error) {
	if strings.TrimSpace(cfg.ListenAddress) == "" {
		return nil, errors.New("listen address cannot be empty")
	}

	logger, logFile := logging.Init(cfg.LogFilePath)

	src, store, err := NewSource(cfg, logger)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("holiday source init: %w", err)
	}

	runner := projector.New(src, logger.With(slog.String("component", "projector")))
	health := api.NewHealthState()
	handlers := api.NewHandlers(logger.With(slog.String("component", "api")), runner, cfg.MaxUploadBytes)
	router := api.NewRouter(handlers, health)

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           api.Wrap(router),
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPWriteTimeout,
	}

	return &Application{
		cfg:     cfg,
		logger:  logger,
		logFile: logFile,
		server:  server,
		health:  health,
		store:   store,
	}, nil
}

// NewSource builds the layered holiday source used by both the service and
// the CLI: API client, bounded retries, computed fallback, optional SQLite
// persistence, and an in-memory TTL cache on top. The returned store is nil
// unless persistence is configured; the caller owns closing it.
func NewSource(cfg config.Config, logger *slog.Logger) (holiday.Source, *holiday.Store, error) {
	var src holiday.Source = holiday.NewAPIClient(
		cfg.PublicAPIBase, cfg.SchoolAPIBase, cfg.LookupTimeout,
		logger.With(slog.String("component", "holiday_client")))
	src = holiday.NewRetrying(src, cfg.LookupRetries, 0,
		logger.With(slog.String("component", "holiday_retry")))

	if cfg.FallbackEnabled {
		data := holiday.DefaultFallbackData()
		if cfg.FallbackDataPath != "" {
			loaded, err := holiday.LoadFallbackData(cfg.FallbackDataPath)
			if err != nil {
				return nil, nil, fmt.Errorf("load fallback data: %w", err)
			}
			data = loaded
		}
		src = holiday.NewLayered(src, holiday.NewFallbackSource(data),
			logger.With(slog.String("component", "holiday_fallback")))
	}

	var store *holiday.Store
	if cfg.CacheDBPath != "" {
		s, err := holiday.OpenStore(cfg.CacheDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open holiday cache db: %w", err)
		}
		store = s
		src = holiday.NewPersistent(src, store)
	}

	src = holiday.NewCached(src, cfg.CacheTTL, metrics.CacheObserver{})
	return src, store, nil
}

// Logger exposes the configured slog logger so callers (such as main)
// can emit structured logs after initialization.
func (a *Application) Logger() *slog.Logger {
	return a.logger
}

// Run blocks until the context is cancelled or the HTTP server terminates
// unexpectedly. It manages readiness probes and graceful shutdown.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpCh := make(chan error, 1)
	go func() {
		a.health.SetReady(true)
		a.logger.Info("http_server_listen", slog.String("address", a.cfg.ListenAddress))
		httpCh <- a.server.ListenAndServe()
	}()

	var httpErr error
	for {
		select {
		case err := <-httpCh:
			httpErr = err
			httpCh = nil
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("http_server_error", slog.Any("err", err))
			} else {
				a.logger.Info("server_closed")
			}
			cancel()
		case <-ctx.Done():
			a.logger.Info("shutdown_signal")
			a.health.SetReady(false)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
			if err := a.server.Shutdown(shutdownCtx); err != nil {
				if !errors.Is(err, context.Canceled) {
					a.logger.Error("server_shutdown_failed", slog.Any("err", err))
					if httpErr == nil {
						httpErr = fmt.Errorf("shutdown: %w", err)
					}
				}
			}
			shutdownCancel()

			if httpCh != nil {
				if err := <-httpCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.logger.Error("server_shutdown_error", slog.Any("err", err))
					if httpErr == nil {
						httpErr = err
					}
				}
			}

			if httpErr != nil && !errors.Is(httpErr, http.ErrServerClosed) {
				return httpErr
			}
			a.logger.Info("shutdown_complete")
			return nil
		}
	}
}

// Close flushes and closes resources owned by the application instance.
func (a *Application) Close() error {
	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close holiday cache db: %w", err))
		}
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log file: %w", err))
		}
	}
	return errors.Join(errs...)
}
