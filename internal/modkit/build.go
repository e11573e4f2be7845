package modkit

import (
	"net/http"

	"firstvibe/internal/modkit/httpkit"
)

// Built is how a module is mounted once its options are applied
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	extra []func(httpkit.Router)
}

// Option overrides part of Built
type Option func(*Built)

// WithName renames the module, the name keys the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix moves the module to another path under /api/v1
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends middleware that only wraps this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts sets what the module hands to other modules
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRoutes adds endpoints after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.extra = append(b.extra, fn) }
}

// Build starts from name and prefix and applies opts in order
func Build(name, prefix string, opts ...Option) Built {
	b := Built{Name: name, Prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	// callers keep their slices
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes the module under its prefix. Middleware wraps both own and
// the routes added by WithRoutes.
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	r.Route(b.Prefix, func(sub httpkit.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		if own != nil {
			own(sub)
		}
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}
