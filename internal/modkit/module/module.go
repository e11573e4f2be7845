// Package module defines the minimal contract for a modkit module
// and the lookups used to cross wire their ports at startup
package module

import (
	"context"

	phttp "firstvibe/internal/platform/net/http"
)

// Module mounts its routes and exposes a port set for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// Runner is implemented by modules that own background work
// Run blocks until ctx is done and returns after its work has drained
type Runner interface {
	Run(ctx context.Context) error
}
