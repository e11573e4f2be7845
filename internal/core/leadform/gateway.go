package leadform

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Gateway delivers a FullSubmission and reports the outcome
// implementations may take arbitrarily long; any error is a failed dispatch
type Gateway interface {
	Submit(ctx context.Context, s FullSubmission) error
}

// GatewayFunc adapts a function to Gateway
type GatewayFunc func(ctx context.Context, s FullSubmission) error

// Submit implements Gateway
func (f GatewayFunc) Submit(ctx context.Context, s FullSubmission) error { return f(ctx, s) }

// ErrServer is the mock gateway failure
var ErrServer = errors.New("A server error occurred. Please try again.")

// MockGateway simulates the remote endpoint: a fixed delay then a random failure
type MockGateway struct {
	Delay       time.Duration
	FailureRate float64
	// Roll returns a value in [0,1), nil uses math/rand/v2
	Roll func() float64
}

// NewMockGateway returns the default simulation: 1s delay, 10% failures
func NewMockGateway() *MockGateway {
	return &MockGateway{Delay: time.Second, FailureRate: 0.1}
}

// Submit implements Gateway
func (m *MockGateway) Submit(ctx context.Context, _ FullSubmission) error {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	roll := m.Roll
	if roll == nil {
		roll = rand.Float64
	}
	if roll() < m.FailureRate {
		return ErrServer
	}
	return nil
}
