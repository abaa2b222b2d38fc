package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompetitionEndpoints(t *testing.T) {
	t.Run("GET /v1/competitions", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions", nil)
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
			t.Error("expected at least one competition")
		}
	})

	t.Run("GET /v1/competitions?season=2025-26", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions?season=2025-26", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("GET /v1/competitions?type=domestic-league", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions?type=domestic-league", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("GET /v1/competitions/{id}", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions/premier-league", nil)
		req.SetPathValue("id", "premier-league")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/competitions/{id} - not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions/nonexistent", nil)
		req.SetPathValue("id", "nonexistent")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
