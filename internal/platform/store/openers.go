package store

import (
	"context"
	"fmt"
	"time"

	"firstvibe/internal/core/version"
	chx "firstvibe/internal/platform/store/ch"
	"firstvibe/internal/platform/store/kv"
	"firstvibe/internal/platform/store/pg"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// openPG opens pg and publishes the sql adapter once the pool answers a ping
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var opts []pg.Option
	if cfg.PG.LogSQL {
		opts = append(opts, pg.WithTracer(pg.Tracer(s.Log)))
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		Slow:     cfg.PG.SlowQuery,
	}, opts...)
	if err != nil {
		return nil, err
	}

	attempts := cfg.PG.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	// ping the pool directly so boot retries never show up in the sql trace
	err = retry(ctx, attempts, func() error {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return p.Pool.Ping(toCtx)
	})
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return newPGAdapter(p), nil
}

// openCH and openKV return a nil interface on error, never a typed nil
func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	build := version.Info()
	c, err := chx.Open(ctx, chx.Config{
		URL:     cfg.CH.URL,
		App:     cfg.AppName,
		Version: build.Version,
		Role:    cfg.CH.Role,
		Commit:  build.Commit,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openKV(ctx context.Context, cfg Config, _ *Store) (KV, error) {
	k, err := kv.Open(ctx, kv.Config{URL: cfg.RDS.URL, DB: cfg.RDS.DB})
	if err != nil {
		return nil, err
	}
	return k, nil
}

// retry runs fn until it succeeds, ctx ends, or attempts run out
// waits grow from backoffStart up to backoffCeiling with jitter
func retry(ctx context.Context, attempts int, fn func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = backoffStart
	eb.MaxInterval = backoffCeiling
	eb.MaxElapsedTime = 0

	var b backoff.BackOff = backoff.WithMaxRetries(eb, uint64(max(attempts-1, 0)))
	if err := backoff.Retry(fn, backoff.WithContext(b, ctx)); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("after %d attempts: %w", attempts, err)
	}
	return nil
}
