package store

import (
	"context"
	"fmt"
)

// Scalar reads the first column of the first row into T
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ExecEach runs argless statements in order and stops at the first failure
func ExecEach(ctx context.Context, q RowQuerier, stmts ...string) error {
	for i, s := range stmts {
		if _, err := q.Exec(ctx, s); err != nil {
			return fmt.Errorf("statement %d of %d: %w", i+1, len(stmts), err)
		}
	}
	return nil
}
