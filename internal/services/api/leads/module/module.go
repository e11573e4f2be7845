// Package module wires the lead form into the API using modkit
package module

import (
	"context"
	"strings"

	"firstvibe/internal/core/leadform"
	modkit "firstvibe/internal/modkit"
	"firstvibe/internal/modkit/httpkit"
	"firstvibe/internal/platform/logger"
	str "firstvibe/internal/platform/strings"
	"firstvibe/internal/services/api/leads/domain"
	lhttp "firstvibe/internal/services/api/leads/http"
	"firstvibe/internal/services/api/leads/repo"
	lsvc "firstvibe/internal/services/api/leads/service"
)

// Module implements the leads module
type Module struct {
	b   modkit.Built
	svc *lsvc.Svc
}

// New constructs the leads module
// sinks usually come from the analytics module ports and may be nil
func New(ctx context.Context, deps modkit.Deps, opt Options, sinks domain.SinkFactory, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build("leads", "/leads", opts...)

	counter, err := counterFor(ctx, deps, opt)
	if err != nil {
		return nil, err
	}

	return &Module{b: b, svc: lsvc.New(gatewayFor(opt), counter, sinks, opt.Service)}, nil
}

func counterFor(ctx context.Context, deps modkit.Deps, opt Options) (domain.CounterStore, error) {
	log := logger.Named("leads")
	backend := strings.ToLower(opt.Counter)

	switch {
	case backend == CounterPG && deps.PG != nil:
		c := repo.NewPGCounter(deps.PG, opt.CounterTimeout)
		if err := c.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return c, nil
	case backend == CounterRedis && deps.KV != nil:
		return repo.NewRedis(deps.KV), nil
	case backend != CounterMemory && backend != "":
		log.Warn().Str("counter", backend).Msg("counter backend disabled, counting in memory")
	}
	return repo.NewMemory(), nil
}

func gatewayFor(opt Options) leadform.Gateway {
	if opt.Gateway == GatewayWebhook {
		return lsvc.NewWebhook(opt.GatewayURL, opt.GatewayTimeout)
	}
	mock := opt.Mock
	return &mock
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(r httpkit.Router) { lhttp.Register(r, m.svc) })
}

// Run sweeps idle form sessions until ctx is done
func (m *Module) Run(ctx context.Context) error { return m.svc.Sessions().Run(ctx) }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
