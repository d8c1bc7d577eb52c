package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/cadenas/internal/adapters/http/api"
	"github.com/okian/cadenas/internal/adapters/repository"
	"github.com/okian/cadenas/internal/adapters/sheets"
	app "github.com/okian/cadenas/internal/app"
	"github.com/okian/cadenas/internal/config"
	"github.com/okian/cadenas/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		_, _ = os.Stderr.WriteString("cadenas: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := initLogging(cfg); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	svc, closeCache, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	srv := newHTTPServer(cfg, api.NewServer(svc,
		api.WithMaxLimit(cfg.MaxLeaderboardLimit),
		api.WithAllowedOrigins(cfg.CORSAllowedOrigins),
		api.WithLogger(log.Named("http")),
	).Router())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(gctx, "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Info(ctx, "server stopped")
	return err
}

// initLogging applies the logging keys. An invalid level falls back to info.
func initLogging(cfg *config.Config) error {
	var opts []logger.Option
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFile(cfg.LogFile, cfg.LogMaxSizeMB, cfg.LogMaxBackups))
	}
	if err := logger.Init(opts...); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(context.Background(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// buildService wires the sheet fetcher and the optional Redis row cache
// into a results service. The returned func releases the cache.
func buildService(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Service, func(), error) {
	sopts := []sheets.Option{
		sheets.WithRange(cfg.SheetRange),
		sheets.WithTimeout(cfg.FetchTimeout()),
		sheets.WithMinInterval(cfg.FetchMinInterval()),
		sheets.WithLogger(log.Named("sheets")),
	}
	if cfg.SheetsEndpoint != "" {
		sopts = append(sopts, sheets.WithEndpoint(cfg.SheetsEndpoint))
	}
	fetcher, err := sheets.New(ctx, cfg.SheetsAPIKey, cfg.SpreadsheetID, sopts...)
	if err != nil {
		return nil, nil, fmt.Errorf("build sheets client: %w", err)
	}

	opts := []app.Option{
		app.WithLogger(log.Named("service")),
		app.WithFetcher(fetcher),
		app.WithQueueSize(cfg.RefreshQueueSize),
		app.WithRefreshInterval(cfg.RefreshInterval()),
		app.WithRecentLimits(cfg.RecentLimit, cfg.SliceRecentLimit, cfg.AthleteRecentLimit),
		app.WithDateLayouts(cfg.DateLayouts),
		app.WithBonusEntries(cfg.BonusEntries()),
	}

	closeCache := func() {}
	if cfg.RedisURL != "" {
		cache, err := repository.NewRedisRowCacheFromURL(cfg.RedisURL, repository.WithTTL(cfg.CacheTTL()))
		if err != nil {
			return nil, nil, fmt.Errorf("build row cache: %w", err)
		}
		if err := cache.Ping(ctx); err != nil {
			log.Warn(ctx, "row cache unreachable; continuing without last-good rows until it recovers", logger.Error(err))
		}
		opts = append(opts, app.WithRowCache(cache))
		closeCache = func() { _ = cache.Close() }
	}
	return app.New(opts...), closeCache, nil
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
