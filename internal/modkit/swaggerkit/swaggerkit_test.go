package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "firstvibe/internal/platform/net/http"
	"firstvibe/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func fetch(t *testing.T, o Options, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), o)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMount_Disabled(t *testing.T) {
	if rec := fetch(t, Options{}, "/api/docs/doc.json"); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestDocJSON(t *testing.T) {
	rec := fetch(t, Options{Enabled: true, TitleSuffix: "(staging)"}, "/api/docs/doc.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var spec struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatal(err)
	}
	if spec.OpenAPI != "3.0.3" || spec.Info.Title != "firstvibe API (staging)" {
		t.Fatalf("header %q %q", spec.OpenAPI, spec.Info.Title)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api/v1" {
		t.Fatalf("servers %+v", spec.Servers)
	}

	for _, path := range []string{"/leads", "/leads/sessions", "/leads/sessions/{id}", "/leads/sessions/{id}/submit", "/events", "/trends", "/meta/ready"} {
		if _, ok := spec.Paths[path]; !ok {
			t.Fatalf("missing path %s", path)
		}
	}

	var op struct {
		Responses map[string]json.RawMessage `json:"responses"`
	}
	if err := json.Unmarshal(spec.Paths["/leads/sessions/{id}/submit"]["post"], &op); err != nil {
		t.Fatal(err)
	}
	for _, code := range []string{"200", "400", "404", "409", "429", "500"} {
		if _, ok := op.Responses[code]; !ok {
			t.Fatalf("submit missing %s response", code)
		}
	}
}

func TestDocJSON_ParseError(t *testing.T) {
	testkit.Swap(t, &docReader, func() []byte { return []byte("{") })
	if rec := fetch(t, Options{Enabled: true}, "/api/docs/doc.json"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestEnsureServers_Downconverts(t *testing.T) {
	spec := map[string]any{"swagger": "2.0"}
	ensureServers(spec, "/x")
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("spec %v", spec)
	}

	spec = map[string]any{"openapi": "3.1.0", "servers": []any{}}
	ensureServers(spec, "/x")
	if spec["openapi"] != "3.0.3" || len(spec["servers"].([]any)) != 0 {
		t.Fatalf("spec %v", spec)
	}
}
