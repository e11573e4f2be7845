package http

import (
	stdctx "context"
	"maps"
	"net/http"
	"slices"
	"time"

	"firstvibe/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// check states, worst last
const (
	checkSkipped = "skipped"
	checkOK      = "ok"
	checkUnknown = "unknown"
	checkFail    = "fail"
)

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse status is ok, degraded when a backend cannot be pinged, or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-08-24T09:05:00Z"`
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Description Disabled backends are skipped, any failed ping answers 503
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok or degraded"
// @Failure 503 {object} ReadyResponse "a backend failed"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.CheckTimeout)
	defer cancel()

	names := slices.Sorted(maps.Keys(h.deps.Backends))
	for _, n := range h.deps.Expected {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	slices.Sort(names)

	// pings run side by side so one slow backend costs the probe once
	checks := make([]ReadyCheck, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			checks[i] = probe(ctx, name, h.deps.Backends[name])
			return nil
		})
	}
	_ = g.Wait()

	out := ReadyResponse{Status: summarize(checks), Checks: checks, Now: h.now().UTC().Format(time.RFC3339)}
	if out.Status == checkFail {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}
	}
	return httpkit.OK(out)
}

func probe(ctx stdctx.Context, name string, backend any) ReadyCheck {
	c := ReadyCheck{Name: name}
	p, pingable := backend.(Pinger)
	switch {
	case backend == nil:
		c.Status = checkSkipped
	case !pingable:
		c.Status = checkUnknown
	default:
		c.Status = checkOK
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = checkFail, err.Error()
		}
	}
	return c
}

func summarize(checks []ReadyCheck) string {
	overall := checkOK
	for _, c := range checks {
		switch c.Status {
		case checkFail:
			return checkFail
		case checkUnknown:
			overall = "degraded"
		}
	}
	return overall
}
