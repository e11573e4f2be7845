package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pnet "firstvibe/internal/platform/net"
	"firstvibe/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func chain(h http.Handler, mws []func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestRoot_SetsIDsAndClient(t *testing.T) {
	var got pnet.Client
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chimw.GetReqID(r.Context()) == "" {
			t.Error("expected request id")
		}
		if _, ok := r.Context().Deadline(); !ok {
			t.Error("expected a request deadline")
		}
		got = pnet.ClientFrom(r.Context())
		w.WriteHeader(200)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	req.Header.Set("X-Forwarded-For", "1.2.3.4")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Referer", "https://firstvibe.example/?utm_source=ad")
	rr := httptest.NewRecorder()
	chain(h, middleware.Root(0)).ServeHTTP(rr, req)

	if rr.Code != 200 || rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("got %d headers %v", rr.Code, rr.Header())
	}
	want := pnet.Client{Agent: "test-agent", Referrer: "https://firstvibe.example/?utm_source=ad", IP: "1.2.3.4"}
	if got != want {
		t.Fatalf("client %+v", got)
	}
}

func TestRoot_CompressesWhenAccepted(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat("a", 4<<10))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	chain(h, middleware.Root(0)).ServeHTTP(rr, req)

	if rr.Result().Header.Get("Content-Encoding") != "gzip" {
		t.Fatalf("headers %v", rr.Header())
	}
}

func TestRoot_HeartbeatShortCircuits(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("heartbeat should not reach the handler")
	})
	rr := httptest.NewRecorder()
	chain(h, middleware.Root(0)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "." {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
}

func TestCORS_PreflightFromAllowedOrigin(t *testing.T) {
	cors := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://firstvibe.example"}})
	h := cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) }))

	preflight := func(origin, method string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/leads", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", method)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	rr := preflight("https://firstvibe.example", http.MethodPatch)
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://firstvibe.example" {
		t.Fatalf("headers %v", rr.Header())
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch) {
		t.Fatalf("methods %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}

	if rr := preflight("https://evil.example", http.MethodPost); rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unlisted origin must not be allowed")
	}
}
