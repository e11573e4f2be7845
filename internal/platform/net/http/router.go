package http

import (
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handler is the plain handler func routes are registered with
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount routes on, chi backs it in production
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Patch(path string, h Handler)
	Handle(path string, h http.Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}

// MountProfiler serves net/http/pprof below prefix, ie /debug/pprof/heap
func MountProfiler(r Router, prefix string) {
	prefix = "/" + strings.Trim(prefix, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix, chimw.Profiler()))
}
