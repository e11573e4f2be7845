package store

import "context"

// Row is the scan half of a single row read
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set, callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag reports what a write touched
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface a repo binds to, a pool or a tx
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also scope fn to one transaction
// fn's error rolls back, nil commits
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse takes positional rows in table column order
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Close() error
}

// KV holds the shared submission counters
type KV interface {
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

// Pinger is implemented by seams that can answer a readiness probe
type Pinger interface{ Ping(context.Context) error }
