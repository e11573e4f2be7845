package domain

import (
	"context"

	"firstvibe/internal/core/leadform"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Open(ctx context.Context, in PageIn) (Session, error)
	Get(ctx context.Context, id string) (Session, error)
	Patch(ctx context.Context, id string, in PatchIn) (Session, error)
	Submit(ctx context.Context, id string) (Session, error)
	Capture(ctx context.Context, in CaptureIn) (Session, error)
}

// SinkFactory hands out an event sink bound to one form session
type SinkFactory interface {
	SinkFor(sessionID string) leadform.Sink
}

// CounterStore is the repeated submission counter
type CounterStore = leadform.CounterStore
