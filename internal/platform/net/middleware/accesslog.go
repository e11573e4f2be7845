package middleware

import (
	"net/http"
	"time"

	"firstvibe/internal/platform/logger"
	pnet "firstvibe/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow logs requests at or above it at warn, zero disables
	Slow time.Duration
	// Log replaces the context logger, tests point it at a buffer
	Log *logger.Logger
}

// AccessLogZerolog puts the request id on the context logger and writes one
// line per request once the handler returns. The route pattern is logged
// rather than the path so session ids stay out of the access log.
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()))
			r = r.WithContext(ctx)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			log := logger.C(ctx)
			if opt.Log != nil {
				l := opt.Log.With().Str("request_id", pnet.RequestID(ctx)).Logger()
				log = &l
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			e := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				e = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				e = log.Warn()
			}
			e.Str("method", r.Method).
				Str("route", routeOf(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}

// routeOf is the matched chi pattern, or the raw path outside a chi router
func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
