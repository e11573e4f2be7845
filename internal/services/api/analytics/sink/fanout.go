package sink

import (
	"context"

	"firstvibe/internal/platform/logger"
	"firstvibe/internal/services/api/analytics/domain"
)

// Fanout writes each event to every writer in order
// a panicking writer is logged and skipped
type Fanout []domain.Writer

// Write implements domain.Writer
func (f Fanout) Write(ctx context.Context, e domain.Event) {
	for _, w := range f {
		write(ctx, w, e)
	}
}

func write(ctx context.Context, w domain.Writer, e domain.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.C(ctx).Error().Interface("panic", rec).Str("event", e.Name).Msg("analytics writer panicked")
		}
	}()
	w.Write(ctx, e)
}
