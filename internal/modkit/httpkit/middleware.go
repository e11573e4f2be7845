package httpkit

import (
	"net/http"
	"path"
	"time"

	"firstvibe/internal/platform/config"
	"firstvibe/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// StackOptions tunes the per API middleware
type StackOptions struct {
	// CORSOrigins are the landing page origins allowed to call the API
	CORSOrigins []string
	// Slow marks requests at or above this duration as warn in the access log
	Slow time.Duration
}

// StackFromConfig reads CORS_ORIGINS and SLOW_REQUEST from cfg
func StackFromConfig(cfg config.Conf) StackOptions {
	return StackOptions{
		CORSOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
		Slow:        cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
	}
}

// CommonStack returns the middleware applied under /api/v1
// root safety middleware is installed on the server mux
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins, MaxAge: 300}),
		chimw.StripSlashes,
	}
}

// MountVersion mounts routes at /api/{version} behind CommonStack(o)
func MountVersion(r Router, version string, o StackOptions, mount func(Router)) {
	r.Route(path.Join("/api", version), func(api Router) {
		api.Use(CommonStack(o)...)
		mount(api)
	})
}
