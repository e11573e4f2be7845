package pg

import (
	"context"
	"strings"
	"time"

	"firstvibe/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one statement as the sql adapter saw it
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives every statement when sql logging is on
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// TracerFunc adapts a function to QueryTracer
type TracerFunc func(ctx context.Context, ev QueryEvent)

func (f TracerFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// Tracer logs statements at info and slow ones at warn, whatever the root level.
// Only the argument count is logged, the counter is keyed by email.
func Tracer(root logger.Logger) QueryTracer {
	l := root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return TracerFunc(func(ctx context.Context, ev QueryEvent) {
		e := l.Info()
		if ev.Slow {
			e = l.Warn()
		}
		e.Dur("elapsed", ev.Elapsed).
			Bool("slow", ev.Slow).
			Str("sql", oneLine(ev.SQL)).
			Int("args", len(ev.Args)).
			Err(ev.Err).
			Msg("pg query")
	})
}

// oneLine collapses runs of whitespace so multi line statements log on one line
func oneLine(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
