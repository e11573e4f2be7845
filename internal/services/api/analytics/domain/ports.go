package domain

import (
	"context"

	"firstvibe/internal/core/leadform"
)

// Writer stores events, implementations must not block or fail the caller
type Writer interface {
	Write(ctx context.Context, e Event)
}

// WriterFunc adapts a function to Writer
type WriterFunc func(ctx context.Context, e Event)

// Write implements Writer
func (f WriterFunc) Write(ctx context.Context, e Event) { f(ctx, e) }

// SinkFactory hands out a form event sink bound to one form session
type SinkFactory interface {
	SinkFor(sessionID string) leadform.Sink
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	SinkFactory
	Track(ctx context.Context, in EventIn) (Accepted, error)
}
