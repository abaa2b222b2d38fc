package orchestrator

import (
	"time"

	"strengthgrid.dev/strength/internal/core"
)

// ParameterOutcome tallies one parameter's collection results for one
// refresh cycle.
type ParameterOutcome struct {
	Parameter core.Parameter `json:"parameter"`
	Attempted int64          `json:"attempted"`
	Succeeded int64          `json:"succeeded"`
	Failed    int64          `json:"failed"`
}

// CompetitionCoverage reports the post-cycle coverage percentage for one
// competition+season scope, computed from non-null raw parameter values.
type CompetitionCoverage struct {
	CompetitionID core.CompetitionID `json:"competition_id"`
	Season        string             `json:"season"`
	TeamCount     int                `json:"team_count"`
	CoveragePct   float64            `json:"coverage_pct"`
}

// Summary is the Orchestrator's structured report for one refresh cycle.
type Summary struct {
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	WallTime   time.Duration         `json:"wall_time"`
	ByParam    []ParameterOutcome    `json:"by_parameter"`
	Coverage   []CompetitionCoverage `json:"coverage"`
}
