package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTeamEndpoints(t *testing.T) {
	t.Run("GET /v1/teams", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp PaginatedResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.Total == 0 {
			t.Error("expected at least one team")
		}
		if resp.Page != 1 {
			t.Errorf("expected page 1, got %d", resp.Page)
		}
	})

	t.Run("GET /v1/teams with confederation filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams?confederation=UEFA", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("GET /v1/teams/{name}", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams/Arsenal", nil)
		req.SetPathValue("name", "Arsenal")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/teams/{name} - not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams/Nonexistent FC", nil)
		req.SetPathValue("name", "Nonexistent FC")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/teams/{name}/strength", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams/Arsenal/strength?season=2025-26", nil)
		req.SetPathValue("name", "Arsenal")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/teams/{name}/strength without season", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams/Arsenal/strength", nil)
		req.SetPathValue("name", "Arsenal")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("GET /v1/teams/{name}/strength - no record for season", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/teams/Arsenal/strength?season=1999-00", nil)
		req.SetPathValue("name", "Arsenal")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
