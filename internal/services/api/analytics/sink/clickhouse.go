package sink

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"firstvibe/internal/platform/logger"
	"firstvibe/internal/platform/store"
	"firstvibe/internal/services/api/analytics/domain"
)

// DefaultTable receives analytics rows
//
//	CREATE TABLE lead_events (
//	  event_id UUID, name LowCardinality(String), params String,
//	  session_id String, request_id String, source LowCardinality(String),
//	  occurred_at DateTime64(3, 'UTC')
//	) ENGINE = MergeTree ORDER BY (name, occurred_at)
const DefaultTable = "lead_events"

// ClickHouseOptions tunes batching
type ClickHouseOptions struct {
	Table      string
	Buffer     int
	Batch      int
	FlushEvery time.Duration
	// DrainTimeout bounds the final flush after Run's ctx is done
	DrainTimeout time.Duration
}

func (o ClickHouseOptions) withDefaults() ClickHouseOptions {
	if o.Table == "" {
		o.Table = DefaultTable
	}
	if o.Buffer <= 0 {
		o.Buffer = 1024
	}
	if o.Batch <= 0 {
		o.Batch = 256
	}
	if o.FlushEvery <= 0 {
		o.FlushEvery = 2 * time.Second
	}
	if o.DrainTimeout <= 0 {
		o.DrainTimeout = 5 * time.Second
	}
	return o
}

// ClickHouse buffers events and inserts them in batches from Run
// Write never blocks, events are dropped while the buffer is full
type ClickHouse struct {
	ch   store.Clickhouse
	opt  ClickHouseOptions
	buf  chan domain.Event
	log  *logger.Logger
	drop atomic.Int64
}

// NewClickHouse returns a batching writer over ch
func NewClickHouse(ch store.Clickhouse, opt ClickHouseOptions) *ClickHouse {
	opt = opt.withDefaults()
	return &ClickHouse{
		ch:  ch,
		opt: opt,
		buf: make(chan domain.Event, opt.Buffer),
		log: logger.Named("analytics.clickhouse"),
	}
}

// Write implements domain.Writer
func (w *ClickHouse) Write(_ context.Context, e domain.Event) {
	select {
	case w.buf <- e:
	default:
		if n := w.drop.Add(1); n == 1 || n%100 == 0 {
			w.log.Warn().Int64("dropped", n).Str("event", e.Name).Msg("analytics buffer full, dropping events")
		}
	}
}

// Dropped reports how many events were discarded so far
func (w *ClickHouse) Dropped() int64 { return w.drop.Load() }

// Run flushes on size and interval until ctx is done, then drains what is buffered
func (w *ClickHouse) Run(ctx context.Context) error {
	t := time.NewTicker(w.opt.FlushEvery)
	defer t.Stop()

	batch := make([]domain.Event, 0, w.opt.Batch)
	for {
		select {
		case e := <-w.buf:
			batch = append(batch, e)
			if len(batch) >= w.opt.Batch {
				w.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-t.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.opt.DrainTimeout)
			defer cancel()
			for {
				select {
				case e := <-w.buf:
					batch = append(batch, e)
					if len(batch) >= w.opt.Batch {
						w.flush(dctx, batch)
						batch = batch[:0]
					}
				default:
					if len(batch) > 0 {
						w.flush(dctx, batch)
					}
					return nil
				}
			}
		}
	}
}

func (w *ClickHouse) flush(ctx context.Context, batch []domain.Event) {
	rows := make([][]any, 0, len(batch))
	for _, e := range batch {
		rows = append(rows, Row(e))
	}
	if err := w.ch.Insert(ctx, w.opt.Table, rows); err != nil {
		w.log.Error().Err(err).Int("rows", len(rows)).Str("table", w.opt.Table).Msg("analytics insert failed")
	}
}

// Row maps an event onto the lead_events column order
func Row(e domain.Event) []any {
	params := "{}"
	if len(e.Params) > 0 {
		if b, err := json.Marshal(e.Params); err == nil {
			params = string(b)
		}
	}
	return []any{e.ID, e.Name, params, e.SessionID, e.RequestID, e.Source, e.At.UTC()}
}
