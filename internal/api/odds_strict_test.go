package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"strengthgrid.dev/strength/internal/config"
	"strengthgrid.dev/strength/internal/db"
)

// TestOddsEndpointStrictNull exercises the strict-null partial-coverage
// policy against the same fixtures TestOddsEndpoint uses under the
// default skip-and-renormalize policy. Every fixture team in
// testdata/team_in_competition.csv has a null overall_strength, so under
// strict-null every pairing is a refusal.
func TestOddsEndpointStrictNull(t *testing.T) {
	cfg := &config.Config{
		Season: "2025-26",
		Aggregation: config.AggregationConfig{
			PartialCoveragePolicy: config.PolicyStrictNull,
		},
		Odds: config.OddsConfig{
			HomeBoostAlpha: 0.15,
			DrawBeta:       0.35,
			DrawK:          1.0,
			DrawMin:        0.18,
			DrawMax:        0.32,
			Margin:         0.05,
		},
	}
	strictServer := NewServer(&db.DB{DB: testDB}, nil, cfg)

	req := httptest.NewRequest(http.MethodGet, "/v1/odds?home=Arsenal&away=Chelsea&season=2025-26", nil)
	w := httptest.NewRecorder()

	strictServer.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}
}
