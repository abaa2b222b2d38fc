package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
)

// MatchStore implements core.MatchRepository against Postgres.
type MatchStore struct {
	db *db.DB
}

// NewMatchStore builds a MatchStore.
func NewMatchStore(database *db.DB) *MatchStore {
	return &MatchStore{db: database}
}

func scanMatch(scan func(...any) error) (*core.Match, error) {
	var m core.Match
	var homeScore, awayScore sql.NullInt64
	if err := scan(&m.ExternalFixtureID, &m.HomeTeamID, &m.AwayTeamID, &m.CompetitionID,
		&m.Kickoff, &homeScore, &awayScore, &m.Status, &m.Leg); err != nil {
		return nil, err
	}
	if homeScore.Valid {
		v := int(homeScore.Int64)
		m.HomeScore = &v
	}
	if awayScore.Valid {
		v := int(awayScore.Int64)
		m.AwayScore = &v
	}
	return &m, nil
}

const matchSelectColumns = `external_fixture_id, home_team_id, away_team_id, competition_id, kickoff, home_score, away_score, status, leg`

// Upsert creates or updates a fixture by its external id.
func (s *MatchStore) Upsert(ctx context.Context, match *core.Match) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (external_fixture_id, home_team_id, away_team_id, competition_id, kickoff, home_score, away_score, status, leg)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (external_fixture_id) DO UPDATE SET
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			status = EXCLUDED.status`,
		match.ExternalFixtureID, string(match.HomeTeamID), string(match.AwayTeamID), string(match.CompetitionID),
		match.Kickoff, match.HomeScore, match.AwayScore, string(match.Status), match.Leg)
	if err != nil {
		return core.NewStorageError("match.upsert", err)
	}
	return nil
}

// List returns matches matching filter.
func (s *MatchStore) List(ctx context.Context, filter core.MatchFilter) ([]core.Match, error) {
	query := strings.Builder{}
	args := []any{}
	query.WriteString(`SELECT ` + matchSelectColumns + ` FROM matches`)

	var where []string
	if filter.TeamID != nil {
		args = append(args, string(*filter.TeamID))
		where = append(where, fmt.Sprintf("(home_team_id = $%d OR away_team_id = $%d)", len(args), len(args)))
	}
	if filter.CompetitionID != nil {
		args = append(args, string(*filter.CompetitionID))
		where = append(where, fmt.Sprintf("competition_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Before != nil {
		args = append(args, *filter.Before)
		where = append(where, fmt.Sprintf("kickoff < $%d", len(args)))
	}
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY kickoff DESC")

	p := core.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage)
	args = append(args, p.PerPage, p.Offset())
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, core.NewStorageError("match.list", err)
	}
	defer rows.Close()

	var out []core.Match
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, core.NewStorageError("match.list.scan", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// RecentCompleted returns the n most recent finished matches for a team
// within a competition, ordered most-recent-first — the Form collector's input.
func (s *MatchStore) RecentCompleted(ctx context.Context, teamID core.TeamID, competitionID core.CompetitionID, n int) ([]core.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchSelectColumns+`
		FROM matches
		WHERE (home_team_id = $1 OR away_team_id = $1) AND competition_id = $2 AND status = $3
		ORDER BY kickoff DESC LIMIT $4`,
		string(teamID), string(competitionID), string(core.MatchFinished), n)
	if err != nil {
		return nil, core.NewStorageError("match.recent_completed", err)
	}
	defer rows.Close()

	var out []core.Match
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, core.NewStorageError("match.recent_completed.scan", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// HeadToHead returns finished matches between the two teams, most-recent-first.
func (s *MatchStore) HeadToHead(ctx context.Context, teamA, teamB core.TeamID, limit int) ([]core.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+matchSelectColumns+`
		FROM matches
		WHERE status = $1
			AND ((home_team_id = $2 AND away_team_id = $3) OR (home_team_id = $3 AND away_team_id = $2))
		ORDER BY kickoff DESC LIMIT $4`,
		string(core.MatchFinished), string(teamA), string(teamB), limit)
	if err != nil {
		return nil, core.NewStorageError("match.head_to_head", err)
	}
	defer rows.Close()

	var out []core.Match
	for rows.Next() {
		m, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, core.NewStorageError("match.head_to_head.scan", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
