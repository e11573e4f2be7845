package repo

import (
	"context"

	perr "firstvibe/internal/platform/errors"
	"firstvibe/internal/platform/store"
)

// Redis counts with INCR on the shared key value store
type Redis struct {
	kv store.KV
}

// NewRedis returns a counter over kv
func NewRedis(kv store.KV) *Redis {
	if kv == nil {
		panic("leads.Redis requires a non nil KV")
	}
	return &Redis{kv: kv}
}

// Incr implements leadform.CounterStore
func (c *Redis) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.kv.Incr(ctx, key)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnavailable, "lead counter unavailable")
	}
	return n, nil
}
