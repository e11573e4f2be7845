package store

import (
	"errors"

	"firstvibe/internal/platform/logger"
)

// Option adjusts a Store before any backend is opened
type Option func(*Store) error

// WithLogger hands log to the backends that log, sql tracing among them
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithKV installs an already open key value seam, Open then leaves redis alone
func WithKV(kv KV) Option {
	return func(s *Store) error {
		if kv == nil {
			return errors.New("store: WithKV(nil)")
		}
		s.KV = kv
		return nil
	}
}

// WithPG installs an already open sql seam, Open then leaves postgres alone
func WithPG(db TxRunner) Option {
	return func(s *Store) error {
		if db == nil {
			return errors.New("store: WithPG(nil)")
		}
		s.PG = db
		return nil
	}
}
