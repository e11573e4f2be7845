// Package middleware holds the in house middlewares and the root stack
// they run in
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pnet "firstvibe/internal/platform/net"
	pstrings "firstvibe/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// DefaultTimeout bounds a request when Root is given zero
const DefaultTimeout = 30 * time.Second

// Root is the stack every request goes through, outermost first
// load balancer probes on /healthz are answered before anything else runs
func Root(timeout time.Duration) []func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return []func(http.Handler) http.Handler{
		chimw.Heartbeat("/healthz"),
		chimw.RealIP,
		chimw.RequestID,
		Client,
		RecoverJSON,
		chimw.Timeout(timeout),
		chimw.NewCompressor(flate.BestSpeed).Handler,
		chimw.NoCache,
	}
}

// Client puts what the browser said about itself on the context
// it must run after RealIP
func Client(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(pnet.WithClient(r.Context(), pnet.ClientFromRequest(r))))
	})
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
	corsExposed = []string{"X-Request-ID", "Location"}
)

// CORSOptions is the part of go-chi/cors the API tunes
// empty lists fall back to what the landing page form needs
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.Or(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.Or(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   pstrings.Or(o.ExposedHeaders, corsExposed),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
