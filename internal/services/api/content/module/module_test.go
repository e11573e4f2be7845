package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"firstvibe/internal/core/content"
	phttp "firstvibe/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

func TestModule_ServesTrends(t *testing.T) {
	m := New()
	if m.Name() != "content" || m.Prefix() != "/trends" || m.Ports() != nil {
		t.Fatalf("name %q prefix %q ports %v", m.Name(), m.Prefix(), m.Ports())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trends", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d %s", rec.Code, rec.Body)
	}

	var env struct {
		Data []content.Card `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(content.Trends(), env.Data); diff != "" {
		t.Fatalf("cards (-want +got):\n%s", diff)
	}
}
