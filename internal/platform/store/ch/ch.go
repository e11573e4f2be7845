// Package ch wraps clickhouse-go for batched inserts into event tables
package ch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
// App, Version, Role and Commit are sent as client info and show up in system.query_log
type Config struct {
	URL     string
	App     string
	Version string
	Role    string
	Commit  string
}

// conn is the slice of driver.Conn we use
type conn interface {
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	Ping(ctx context.Context) error
	Close() error
}

// CH is a clickhouse client bound to one connection pool
type CH struct {
	conn conn
}

var openConn = func(opts *clickhouse.Options) (conn, error) { return clickhouse.Open(opts) }

// Open parses a clickhouse:// dsn and opens a pool
// the driver dials lazily so Open does not touch the network
func Open(_ context.Context, cfg Config) (*CH, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("ch: empty url")
	}
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg)

	c, err := openConn(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	return &CH{conn: c}, nil
}

func clientInfo(cfg Config) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	commit := cfg.Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	app := cfg.App
	if app == "" {
		app = "firstvibe"
	}
	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: app, Version: cfg.Version},
		{Name: "role", Version: cfg.Role},
		{Name: "commit", Version: commit},
		{Name: "go", Version: runtime.Version()},
		{Name: "host", Version: host},
	}}
}

// Insert appends rows to table in a single batch
// each row is positional in table column order
func (c *CH) Insert(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	if c == nil || c.conn == nil {
		return errors.New("ch: nil client")
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for i, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch: append row %d: %w", i, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: nil client")
	}
	return c.conn.Ping(ctx)
}

// Close closes the pool
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
