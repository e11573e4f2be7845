// Package http provides the lead form endpoints
package http

import (
	stdhttp "net/http"

	"firstvibe/internal/modkit/httpkit"
	"firstvibe/internal/services/api/leads/domain"
)

// Register mounts lead form endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CaptureIn](r, "/", h.capture)
	httpkit.PostJSON[domain.PageIn](r, "/sessions", h.open)
	httpkit.Get(r, "/sessions/{id}", h.get)
	httpkit.PatchJSON[domain.PatchIn](r, "/sessions/{id}", h.patch)
	httpkit.Post(r, "/sessions/{id}/submit", h.submit)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /leads/sessions Leads leadsOpen
// @Summary Open a form session
// @Description Starts an empty form bound to the page url and referrer it was opened from
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body domain.PageIn true "Page"
// @Success 201 {object} domain.Session "session"
// @Router /leads/sessions [post]
func (h *handlers) open(r *stdhttp.Request, in domain.PageIn) (any, error) {
	out, err := h.svc.Open(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

// swagger:route GET /leads/sessions/{id} Leads leadsGet
// @Summary Read a form session
// @Tags Leads
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.Session "session"
// @Failure 404 {object} swaggerkit.ErrorResponse "not found"
// @Router /leads/sessions/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route PATCH /leads/sessions/{id} Leads leadsPatch
// @Summary Edit form fields
// @Description Absent fields are left alone, editing a field clears its error
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body domain.PatchIn true "Fields"
// @Success 200 {object} domain.Session "session"
// @Failure 404 {object} swaggerkit.ErrorResponse "not found"
// @Failure 409 {object} swaggerkit.ErrorResponse "not editable"
// @Router /leads/sessions/{id} [patch]
func (h *handlers) patch(r *stdhttp.Request, in domain.PatchIn) (any, error) {
	return h.svc.Patch(r.Context(), httpkit.Param(r, "id"), in)
}

// swagger:route POST /leads/sessions/{id}/submit Leads leadsSubmit
// @Summary Submit a form session
// @Description Validation and delivery failures come back in the session, refusals as errors
// @Tags Leads
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} domain.Session "session"
// @Failure 404 {object} swaggerkit.ErrorResponse "not found"
// @Failure 409 {object} swaggerkit.ErrorResponse "in flight or already submitted"
// @Failure 429 {object} swaggerkit.ErrorResponse "submitted too soon after open"
// @Router /leads/sessions/{id}/submit [post]
func (h *handlers) submit(r *stdhttp.Request) (any, error) {
	return h.svc.Submit(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route POST /leads Leads leadsCapture
// @Summary Submit a whole form at once
// @Tags Leads
// @Accept json
// @Produce json
// @Param payload body domain.CaptureIn true "Form"
// @Success 200 {object} domain.Session "session"
// @Router /leads [post]
func (h *handlers) capture(r *stdhttp.Request, in domain.CaptureIn) (any, error) {
	return h.svc.Capture(r.Context(), in)
}
