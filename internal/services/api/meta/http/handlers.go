// Package http serves the meta endpoints probes and operators hit
package http

import (
	"net/http"
	"time"

	"firstvibe/internal/core/version"
	"firstvibe/internal/modkit/httpkit"
)

// Deps are the handler dependencies
// Expected backends always show in /ready, a name missing from Backends is reported as skipped
type Deps struct {
	ServiceName  string
	StartedAt    time.Time
	Expected     []string
	Backends     map[string]any
	CheckTimeout time.Duration // per probe, zero means 2s
}

func (d Deps) started() string { return d.StartedAt.UTC().Format(time.RFC3339) }

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.CheckTimeout <= 0 {
		d.CheckTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"firstvibe-api"`
	Started string `json:"started"  example:"2025-08-24T09:00:00Z"`
	Now     string `json:"now"      example:"2025-08-24T09:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"firstvibe-api"`
	Started string `json:"started" example:"2025-08-24T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "alive"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.started(),
		Now:     h.now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "build"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "service"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.started(),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt).Seconds()),
	}, nil
}
