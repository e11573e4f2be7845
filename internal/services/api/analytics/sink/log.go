// Package sink holds the analytics event writers
package sink

import (
	"context"

	"firstvibe/internal/platform/logger"
	"firstvibe/internal/services/api/analytics/domain"
)

// Log writes every event as one structured log line
type Log struct {
	log *logger.Logger
}

// NewLog returns a Log writer on the given logger, nil uses the analytics component logger
func NewLog(l *logger.Logger) *Log {
	if l == nil {
		l = logger.Named("analytics")
	}
	return &Log{log: l}
}

// Write implements domain.Writer
func (w *Log) Write(_ context.Context, e domain.Event) {
	ev := w.log.Info().
		Str("event_id", e.ID).
		Str("event", e.Name).
		Str("source", e.Source).
		Time("at", e.At)
	if e.SessionID != "" {
		ev = ev.Str("session_id", e.SessionID)
	}
	if e.RequestID != "" {
		ev = ev.Str("request_id", e.RequestID)
	}
	if len(e.Params) > 0 {
		ev = ev.Interface("params", e.Params)
	}
	ev.Msg("analytics event")
}
