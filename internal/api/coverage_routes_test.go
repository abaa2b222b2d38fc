package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"strengthgrid.dev/strength/internal/core"
)

func TestCoverageEndpoint(t *testing.T) {
	t.Run("GET /v1/competitions/{id}/coverage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions/premier-league/coverage?season=2025-26", nil)
		req.SetPathValue("id", "premier-league")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var report core.CoverageReport
		if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
			t.Fatalf("failed to decode coverage report: %v", err)
		}
		if report.TeamCount == 0 {
			t.Error("expected at least one team in coverage report")
		}
	})

	t.Run("GET /v1/competitions/{id}/coverage without season", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/competitions/premier-league/coverage", nil)
		req.SetPathValue("id", "premier-league")
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}
