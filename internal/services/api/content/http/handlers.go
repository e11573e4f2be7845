// Package http serves the landing page trend cards
package http

import (
	stdhttp "net/http"

	"firstvibe/internal/core/content"
	"firstvibe/internal/modkit/httpkit"
)

// Lister returns the cards to show
type Lister func() []content.Card

// Register mounts content endpoints on the given router
func Register(r httpkit.Router, list Lister) {
	h := &handlers{list: list}
	httpkit.Get(r, "/", h.trends)
}

type handlers struct{ list Lister }

// swagger:route GET /trends Content contentTrends
// @Summary List the curated trend cards
// @Tags Content
// @Produce json
// @Success 200 {array} content.Card "cards"
// @Router /trends [get]
func (h *handlers) trends(_ *stdhttp.Request) (any, error) {
	return h.list(), nil
}
