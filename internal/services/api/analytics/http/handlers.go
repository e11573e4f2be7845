// Package http provides the analytics intake endpoint
package http

import (
	stdhttp "net/http"

	"firstvibe/internal/modkit/httpkit"
	"firstvibe/internal/services/api/analytics/domain"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.EventIn](r, "/", h.track)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /events Analytics analyticsTrack
// @Summary Record a landing page interaction
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body domain.EventIn true "Event"
// @Success 202 {object} domain.Accepted "accepted"
// @Router /events [post]
func (h *handlers) track(r *stdhttp.Request, in domain.EventIn) (any, error) {
	out, err := h.svc.Track(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Accepted(out), nil
}
