// Package http writes every response in one JSON envelope and adapts
// handlers onto the chi router
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "firstvibe/internal/platform/errors"
	pnet "firstvibe/internal/platform/net"
)

// Envelope wraps every body the API writes, success or failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func newEnvelope(r *stdhttp.Request, status int) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
	}
}

// JSON writes v with status, encode failures are lost since the header is out
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// RespondError writes err's wire form with the status its code maps to
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	wire := perr.WireFrom(err)

	env := newEnvelope(r, status)
	env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	JSON(w, status, env)
}

// Response is what return style handlers hand back
// a Body that is an error wins over Status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

func OK(data any) Response       { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response  { return Response{Status: stdhttp.StatusCreated, Body: data} }
func Accepted(data any) Response { return Response{Status: stdhttp.StatusAccepted, Body: data} }
func NoContent() Response        { return Response{Status: stdhttp.StatusNoContent} }
func Error(err error) Response   { return Response{Body: err} }

// Handle adapts a return style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).Write(w, r) }
}

// Write copies the headers then the enveloped body
func (resp Response) Write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	h := w.Header()
	for k, vv := range resp.Header {
		for _, v := range vv {
			h.Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	switch status {
	case 0:
		status = stdhttp.StatusOK
	case stdhttp.StatusNoContent:
		w.WriteHeader(status)
		return
	}
	env := newEnvelope(r, status)
	env.Data = resp.Body
	JSON(w, status, env)
}
