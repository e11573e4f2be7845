// Package pg opens the pgx pool behind the sql adapter
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the store needs to open a pool
type Config struct {
	URL string
	// AppName shows up in pg_stat_activity
	AppName  string
	MaxConns int32
	// Slow flags statements at or above it in the sql trace, zero disables
	Slow time.Duration
}

// PG is an open pool plus the tracing the sql adapter applies to it
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	Slow   time.Duration
}

// Option tunes Open
type Option func(*openOpts)

type openOpts struct {
	tracer QueryTracer
	tune   func(*pgxpool.Config)
}

// WithTracer reports every statement to t
func WithTracer(t QueryTracer) Option { return func(o *openOpts) { o.tracer = t } }

// WithPoolConfig lets callers adjust the parsed pool config before connecting
func WithPoolConfig(fn func(*pgxpool.Config)) Option { return func(o *openOpts) { o.tune = fn } }

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds a pool, it does not wait for the server
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	var o openOpts
	for _, fn := range opts {
		fn(&o)
	}

	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if o.tune != nil {
		o.tune(pcfg)
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: o.tracer, Slow: cfg.Slow}, nil
}

// Close is safe on a nil PG
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
