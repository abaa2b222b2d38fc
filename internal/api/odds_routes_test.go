package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"strengthgrid.dev/strength/internal/odds"
)

func TestOddsEndpoint(t *testing.T) {
	t.Run("GET /v1/odds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/odds?home=Arsenal&away=Chelsea&season=2025-26", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var quote odds.Quote
		if err := json.NewDecoder(w.Body).Decode(&quote); err != nil {
			t.Fatalf("failed to decode quote: %v", err)
		}

		sum := quote.OneXTwo.Home.Probability + quote.OneXTwo.Draw.Probability + quote.OneXTwo.Away.Probability
		if sum < 0.99 || sum > 1.01 {
			t.Errorf("expected 1X2 probabilities to sum to ~1, got %f", sum)
		}
	})

	t.Run("GET /v1/odds missing params", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/odds?home=Arsenal", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("GET /v1/odds unknown team", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/odds?home=Arsenal&away=Nonexistent&season=2025-26", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("GET /v1/odds cross-competition pair", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/odds?home=Arsenal&away=Real Madrid&season=2025-26", nil)
		w := httptest.NewRecorder()

		testServer.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}
