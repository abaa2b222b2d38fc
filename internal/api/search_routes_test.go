package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"strengthgrid.dev/strength/internal/search"
)

func TestSearchEndpoint(t *testing.T) {
	t.Run("GET /v1/search", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/search?q=Arsenal vs Chelsea 2025-26", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var query search.MatchQuery
		if err := json.NewDecoder(w.Body).Decode(&query); err != nil {
			t.Fatalf("failed to decode query: %v", err)
		}
		if query.Season == nil || *query.Season != "2025-26" {
			t.Errorf("expected season 2025-26, got %v", query.Season)
		}
	})

	t.Run("GET /v1/search without q", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/search", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}
