// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"firstvibe/internal/core/version"
	modkit "firstvibe/internal/modkit"
	"firstvibe/internal/modkit/httpkit"
	str "firstvibe/internal/platform/strings"

	metahttp "firstvibe/internal/services/api/meta/http"
)

// Backends lists everything the readiness probe reports on
var Backends = []string{"clickhouse", "pg", "redis"}

// Module serves service metadata and the readiness probe
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs the meta module, readiness covers the non nil backends of deps
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return &Module{b: modkit.Build("meta", "/meta", opts...), deps: deps, startedAt: time.Now()}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   m.startedAt,
			Expected:    Backends,
			Backends:    m.deps.Backends(),
		})
	})
}

func (m *Module) Name() string   { return str.MustString(m.b.Name, "meta") }
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
func (m *Module) Ports() any     { return m.b.Ports }
