package repokit

import (
	"context"
	"fmt"
	"time"
)

// BeginHook runs first inside every transaction, on the tx Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// StatementTimeout makes postgres cancel any statement of the tx running past d
// the cancel surfaces as SQLSTATE 57014
func StatementTimeout(d time.Duration) BeginHook {
	stmt := fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds())
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, stmt)
		return err
	}
}

// WithBeginHooks returns db with hooks run at the start of each Tx
// statements issued outside Tx go straight to db
func WithBeginHooks(db TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return db
	}
	return hooked{TxRunner: db, hooks: hooks}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hook := range h.hooks {
			if err := hook(ctx, q); err != nil {
				return fmt.Errorf("begin hook: %w", err)
			}
		}
		return fn(q)
	})
}
