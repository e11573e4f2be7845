// @title         firstvibe API
// @version       1.0
// @description   Lead capture, landing page analytics and trend cards

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firstvibe/internal/core/version"
	"firstvibe/internal/modkit/repokit"
	"firstvibe/internal/platform/config"
	"firstvibe/internal/platform/logger"
	phttp "firstvibe/internal/platform/net/http"
	"firstvibe/internal/platform/net/middleware"
	"firstvibe/internal/platform/store"

	"firstvibe/internal/services/api"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

func main() {
	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = version.Service
	}
	logger.Init(opt)

	if err := run(); err != nil {
		logger.Get().Error().Err(err).Msg("api stopped with error")
		os.Exit(1)
	}
	logger.Get().Info().Msg("api stopped")
}

func run() error {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// every backend is optional, the lead form runs in memory without them
	cfg := store.Config{
		AppName: version.Service,
		PG: store.PGConfig{
			Enabled:   pgCfg.MayBool("ENABLED", false),
			URL:       pgCfg.MayString("DBURL", ""),
			MaxConns:  int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQuery: pgCfg.MayDuration("SLOW_QUERY", 500*time.Millisecond),
			LogSQL:    pgCfg.MayBool("LOG_SQL", false),
		},
		CH: store.CHConfig{
			Enabled: chCfg.MayBool("ENABLED", false),
			URL:     chCfg.MayString("DBURL", ""),
			Role:    "api",
		},
		RDS: store.RedisConfig{
			Enabled: rdsCfg.MayBool("ENABLED", false),
			URL:     rdsCfg.MayString("URL", "localhost:6379"),
			DB:      rdsCfg.MayInt("DB", 0),
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pgCfg.MustString("DBURL")
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = chCfg.MustString("DBURL")
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		return fmt.Errorf("store.Open: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := repokit.Guard(ctx, st, 5*time.Second); err != nil {
		return err
	}

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_GRACE)
	timeout := apiCfg.MayDuration("REQUEST_TIMEOUT", middleware.DefaultTimeout)
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) { m.Use(middleware.Root(timeout)...) })

	mounted, err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		return fmt.Errorf("api.Mount: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	for _, rn := range mounted.Runners {
		g.Go(func() error { return rn.Run(gctx) })
	}

	return g.Wait()
}
