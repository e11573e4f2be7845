// Package api assembles the lead capture HTTP API from its modules
package api

import (
	"context"

	"firstvibe/internal/platform/config"
	phttp "firstvibe/internal/platform/net/http"
	"firstvibe/internal/platform/store"

	"firstvibe/internal/modkit"
	"firstvibe/internal/modkit/httpkit"
	"firstvibe/internal/modkit/module"
	"firstvibe/internal/modkit/swaggerkit"

	analyticsmod "firstvibe/internal/services/api/analytics/module"
	contentmod "firstvibe/internal/services/api/content/module"
	leadsmod "firstvibe/internal/services/api/leads/module"
	metamod "firstvibe/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	// Config is the root view, modules pick their own prefixes
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool
}

// Mounted is what Mount built
type Mounted struct {
	Modules []module.Module
	// Runners own background work and must run until shutdown
	Runners []module.Runner
}

// Mount builds every module and mounts it under /api/v1 on r
func Mount(ctx context.Context, r phttp.Router, opt Options) (Mounted, error) {
	deps := modkit.FromStore(opt.Config, opt.Store)

	// analytics first, its sink factory tags lead form events
	analytics := analyticsmod.New(deps, analyticsmod.FromConfig(opt.Config))
	sinks := module.MustPortsOf[analyticsmod.Ports](analytics).Sinks

	leads, err := leadsmod.New(ctx, deps, leadsmod.FromConfig(opt.Config), sinks)
	if err != nil {
		return Mounted{}, err
	}

	out := Mounted{
		Modules: []module.Module{
			metamod.New(deps),
			contentmod.New(),
			analytics,
			leads,
		},
	}
	for _, m := range out.Modules {
		if rn, ok := m.(module.Runner); ok {
			out.Runners = append(out.Runners, rn)
		}
	}

	apiCfg := opt.Config.Prefix("CORE_API_")
	swaggerkit.Mount(r, swaggerkit.Options{
		Enabled:     opt.EnableSwagger,
		TitleSuffix: apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
	})
	if opt.EnableProfiler {
		phttp.MountProfiler(r, "/debug")
	}

	httpkit.MountVersion(r, "v1", httpkit.StackFromConfig(apiCfg), func(api httpkit.Router) {
		for _, m := range out.Modules {
			// ports are looked up by module name
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
	return out, nil
}
