// Package module wires analytics into the API using modkit
package module

import (
	"context"
	"strings"

	modkit "firstvibe/internal/modkit"
	"firstvibe/internal/modkit/httpkit"
	"firstvibe/internal/platform/logger"
	str "firstvibe/internal/platform/strings"
	"firstvibe/internal/services/api/analytics/domain"
	anhttp "firstvibe/internal/services/api/analytics/http"
	ansvc "firstvibe/internal/services/api/analytics/service"
	"firstvibe/internal/services/api/analytics/sink"
)

// Module implements the analytics module
type Module struct {
	b   modkit.Built
	svc *ansvc.Svc
	ch  *sink.ClickHouse
}

// New constructs the analytics module, opt usually comes from FromConfig
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) *Module {
	m := &Module{b: modkit.Build("analytics", "/events", opts...)}
	w := m.writers(deps, opt)
	m.svc = ansvc.New(w)
	return m
}

func (m *Module) writers(deps modkit.Deps, opt Options) domain.Writer {
	target := strings.ToLower(opt.Sink)
	wantCH := target == SinkClickHouse || target == SinkBoth
	if wantCH && deps.CH == nil {
		logger.Named("analytics").Warn().Str("sink", target).Msg("clickhouse disabled, analytics falls back to log")
		return sink.NewLog(nil)
	}
	if !wantCH {
		return sink.NewLog(nil)
	}

	m.ch = sink.NewClickHouse(deps.CH, opt.ClickHouse)
	if target == SinkBoth {
		return sink.Fanout{sink.NewLog(nil), m.ch}
	}
	return m.ch
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { anhttp.Register(r, m.svc) })
}

// Run drives the clickhouse batcher when one is configured
func (m *Module) Run(ctx context.Context) error {
	if m.ch == nil {
		<-ctx.Done()
		return nil
	}
	return m.ch.Run(ctx)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
