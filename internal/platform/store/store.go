// Package store opens the optional backends behind the lead API
// and exposes them through small seams repos can fake
package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"firstvibe/internal/platform/logger"
)

// Store holds whichever backends were enabled, a nil seam means off
type Store struct {
	Log logger.Logger

	PG TxRunner
	CH Clickhouse
	KV KV
}

// Open applies opts then dials every backend cfg enables
// a seam an option already set is kept and its backend is not dialed
// on failure anything opened so far is closed again
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	steps := []struct {
		on   bool
		open func() error
	}{
		{cfg.PG.Enabled && s.PG == nil, func() (err error) { s.PG, err = openPG(ctx, cfg, s); return }},
		{cfg.CH.Enabled, func() (err error) { s.CH, err = openCH(ctx, cfg, s); return }},
		{cfg.RDS.Enabled && s.KV == nil, func() (err error) { s.KV, err = openKV(ctx, cfg, s); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

type seam struct {
	name string
	v    any
}

// seams lists the live backends in close order, redis first and postgres last
func (s *Store) seams() []seam {
	var out []seam
	if s.KV != nil {
		out = append(out, seam{"redis", s.KV})
	}
	if s.CH != nil {
		out = append(out, seam{"ch", s.CH})
	}
	if s.PG != nil {
		out = append(out, seam{"pg", s.PG})
	}
	return out
}

// Guard pings every live seam that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for _, sm := range s.seams() {
		p, ok := sm.v.(Pinger)
		if !ok {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every live backend, all are closed even when one fails
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, sm := range s.seams() {
		c, ok := sm.v.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
		}
	}
	return errors.Join(errs...)
}
