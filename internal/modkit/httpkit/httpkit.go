// Package httpkit is the routing surface modules register handlers through
// modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "firstvibe/internal/platform/net/http"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// status helpers handlers return in place of a bare body
var (
	OK       = phttp.OK
	Created  = phttp.Created
	Accepted = phttp.Accepted
	Handle   = phttp.Handle
)

// Param is the {key} segment of the matched route
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// Get and Post register handlers that take no body
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// PostJSON and PatchJSON decode and validate T before h runs
// a bind failure never reaches h
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, phttp.JSONHandler(h))
}
