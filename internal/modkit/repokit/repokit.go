// Package repokit is what SQL repos are written against
// it hides the store package behind aliases and binds repos to transactions
package repokit

import (
	"context"
	"fmt"
	"time"

	"firstvibe/internal/platform/store"
)

type (
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder builds a repo over a Queryer, usually the one of an open tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics when q is nil
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on nil Queryer")
	}
	return b.Bind(q)
}

// InTx opens a tx on db and hands fn the repo bound to it
func InTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	return db.Tx(ctx, func(q Queryer) error {
		return fn(MustBind(b, q))
	})
}

// Guarder checks its backends
type Guarder interface {
	Guard(context.Context) error
}

// Guard runs g.Guard bounded by timeout
func Guard(ctx context.Context, g Guarder, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		return fmt.Errorf("backend guard: %w", err)
	}
	return nil
}
