package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firstvibe/internal/modkit/module"
	"firstvibe/internal/platform/config"
	phttp "firstvibe/internal/platform/net/http"
	"firstvibe/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func TestMount_ServesEveryModule(t *testing.T) {
	t.Setenv("CORE_LEADS_MOCK_DELAY", "0s")
	t.Setenv("CORE_LEADS_MOCK_FAILURE_RATE", "0")
	t.Setenv("CORE_LEADS_SUBMIT_DELAY", "0s")
	t.Cleanup(module.Reset)

	mux := chi.NewRouter()
	out, err := Mount(context.Background(), phttp.AdaptChi(mux), Options{Config: config.New(), EnableSwagger: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Modules) != 4 || len(out.Runners) != 2 {
		t.Fatalf("modules %d runners %d", len(out.Modules), len(out.Runners))
	}
	if _, ok := module.PortsAs[any]("leads"); !ok {
		t.Fatal("leads ports not registered")
	}

	cases := []struct {
		method, path, body string
		status             int
		contains           string
	}{
		{http.MethodGet, "/api/v1/trends", "", http.StatusOK, "published_date"},
		{http.MethodGet, "/api/v1/meta/ready", "", http.StatusOK, `"skipped"`},
		{http.MethodGet, "/api/v1/meta/health", "", http.StatusOK, "firstvibe-api"},
		{http.MethodPost, "/api/v1/events", `{"name":"view_hero"}`, http.StatusAccepted, `"id"`},
		{http.MethodPost, "/api/v1/leads", `{"name":"Kim","email":"kim@test.com","consent":true}`, http.StatusOK, `"succeeded"`},
		{http.MethodPost, "/api/v1/leads/sessions", `{}`, http.StatusCreated, `"idle"`},
		{http.MethodGet, "/api/v1/leads/sessions/missing", "", http.StatusNotFound, "not found"},
		{http.MethodGet, "/api/docs/doc.json", "", http.StatusOK, "/leads/sessions/{id}/submit"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		if rec.Code != tc.status {
			t.Fatalf("%s %s: status %d body %s", tc.method, tc.path, rec.Code, rec.Body)
		}
		testkit.MustContain(t, rec.Body.String(), tc.contains)
	}
}

func TestMount_CORSPreflight(t *testing.T) {
	t.Setenv("CORE_API_CORS_ORIGINS", "https://firstvibe.com")
	t.Cleanup(module.Reset)

	mux := chi.NewRouter()
	if _, err := Mount(context.Background(), phttp.AdaptChi(mux), Options{Config: config.New()}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/leads/sessions", nil)
	req.Header.Set("Origin", "https://firstvibe.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://firstvibe.com" {
		t.Fatalf("allow origin %q status %d", got, rec.Code)
	}
}
