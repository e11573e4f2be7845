// Package swaggerkit serves the API's OpenAPI document and the Swagger UI
package swaggerkit

import (
	"net/http"

	phttp "firstvibe/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options control the docs mount
type Options struct {
	Enabled bool
	// BaseURL is the server url advertised in the spec, default /api/v1
	BaseURL     string
	TitleSuffix string
}

// Mount the Swagger UI and JSON spec if enabled
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	if o.BaseURL == "" {
		o.BaseURL = "/api/v1"
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON(o))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("firstvibe"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
