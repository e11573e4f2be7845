// Package net carries request scoped values that transports share
package net

import (
	"context"
	stdnet "net"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyClient ctxKey = "client"

// Client is what the browser told us about itself on this request
type Client struct {
	Agent    string
	Referrer string
	IP       string
}

// WithRequest sets the request id under chi's key so chimw.GetReqID finds it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// WithClient stores c on ctx
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, keyClient, c)
}

// ClientFrom returns the client stored on ctx, zero when absent
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(keyClient).(Client)
	return c
}

// ClientFromRequest reads the client headers off r
// RemoteAddr is expected to be rewritten by RealIP upstream
func ClientFromRequest(r *http.Request) Client {
	ip := r.RemoteAddr
	if host, _, err := stdnet.SplitHostPort(ip); err == nil {
		ip = host
	}
	return Client{
		Agent:    r.UserAgent(),
		Referrer: r.Referer(),
		IP:       ip,
	}
}
