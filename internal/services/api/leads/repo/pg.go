package repo

import (
	"context"
	"time"

	"firstvibe/internal/modkit/repokit"
	perr "firstvibe/internal/platform/errors"
	"firstvibe/internal/platform/store"
)

// Schema creates the counter table and its recency index
var Schema = []string{
	`create table if not exists lead_submissions (
	key        text primary key,
	count      bigint not null default 0,
	updated_at timestamptz not null default now()
)`,
	`create index if not exists lead_submissions_updated_at on lead_submissions (updated_at)`,
}

// Counter is the sql counter surface
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}

type (
	// PG is a binder that binds the counter to a Queryer
	PG struct{}
	// queries implements Counter
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres counter
func NewPG() repokit.Binder[Counter] { return PG{} }

// Bind wires a Queryer to the counter
func (PG) Bind(q repokit.Queryer) Counter { return &queries{q: q} }

func (r *queries) Incr(ctx context.Context, key string) (int64, error) {
	const sql = `
insert into lead_submissions (key, count, updated_at)
values ($1, 1, now())
on conflict (key) do update
set count = lead_submissions.count + 1, updated_at = now()
returning count
`
	n, err := store.Scalar[int64](ctx, r.q, sql, key)
	if err != nil {
		return 0, perr.FromPostgresf(err, "lead counter incr %s", key)
	}
	return n, nil
}

// PGCounter runs each increment in its own short transaction
type PGCounter struct {
	db     repokit.TxRunner
	binder repokit.Binder[Counter]
}

// NewPGCounter wraps db with a statement timeout per increment
func NewPGCounter(db repokit.TxRunner, timeout time.Duration) *PGCounter {
	if db == nil {
		panic("leads.PGCounter requires a non nil TxRunner")
	}
	if timeout > 0 {
		db = repokit.WithBeginHooks(db, repokit.StatementTimeout(timeout))
	}
	return &PGCounter{db: db, binder: NewPG()}
}

// EnsureSchema creates the counter table when missing
func (c *PGCounter) EnsureSchema(ctx context.Context) error {
	if err := store.ExecEach(ctx, c.db, Schema...); err != nil {
		return perr.FromPostgres(err, "lead counter schema")
	}
	return nil
}

// Incr implements leadform.CounterStore
func (c *PGCounter) Incr(ctx context.Context, key string) (int64, error) {
	var n int64
	err := repokit.InTx(ctx, c.db, c.binder, func(r Counter) (err error) {
		n, err = r.Incr(ctx, key)
		return err
	})
	return n, err
}
