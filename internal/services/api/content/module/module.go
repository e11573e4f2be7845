// Package module wires the trend cards into the API using modkit
package module

import (
	"firstvibe/internal/core/content"
	modkit "firstvibe/internal/modkit"
	"firstvibe/internal/modkit/httpkit"
	str "firstvibe/internal/platform/strings"
	chttp "firstvibe/internal/services/api/content/http"
)

// Module implements the content module
type Module struct {
	b modkit.Built
}

// New constructs the content module
func New(opts ...modkit.Option) *Module {
	return &Module{b: modkit.Build("content", "/trends", opts...)}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { chttp.Register(r, content.Trends) })
}

// Ports returns what WithPorts set, nil by default
func (m *Module) Ports() any { return m.b.Ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
