package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
)

// TeamInCompetitionStore implements core.TeamInCompetitionRepository against
// Postgres. Raw and normalized parameter maps are stored as JSONB; the row
// is the unit of serializability described in the Data Store contract.
type TeamInCompetitionStore struct {
	db *db.DB
}

// NewTeamInCompetitionStore builds a TeamInCompetitionStore.
func NewTeamInCompetitionStore(database *db.DB) *TeamInCompetitionStore {
	return &TeamInCompetitionStore{db: database}
}

func decodeValues(raw []byte) (core.ParameterValues, error) {
	pv := core.ParameterValues{}
	if len(raw) == 0 {
		return pv, nil
	}
	var m map[string]*float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		pv[core.Parameter(k)] = v
	}
	return pv, nil
}

func encodeValues(pv core.ParameterValues) ([]byte, error) {
	m := make(map[string]*float64, len(pv))
	for k, v := range pv {
		m[string(k)] = v
	}
	return json.Marshal(m)
}

func decodeParamList(raw []byte) ([]core.Parameter, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	out := make([]core.Parameter, 0, len(names))
	for _, n := range names {
		out = append(out, core.Parameter(n))
	}
	return out, nil
}

func encodeParamList(params []core.Parameter) ([]byte, error) {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, string(p))
	}
	return json.Marshal(names)
}

type ticRow struct {
	TeamID               string
	CompetitionID        string
	Season               string
	RawValues            []byte
	NormalizedValues     []byte
	OverallStrength      sql.NullFloat64
	LocalLeagueStrength  sql.NullFloat64
	EuropeanStrength     sql.NullFloat64
	Confidence           float64
	MissingParameters    []byte
	LastUpdated          time.Time
}

func scanTIC(scan func(...any) error) (*core.TeamInCompetition, error) {
	var row ticRow
	if err := scan(&row.TeamID, &row.CompetitionID, &row.Season, &row.RawValues, &row.NormalizedValues,
		&row.OverallStrength, &row.LocalLeagueStrength, &row.EuropeanStrength,
		&row.Confidence, &row.MissingParameters, &row.LastUpdated); err != nil {
		return nil, err
	}

	raw, err := decodeValues(row.RawValues)
	if err != nil {
		return nil, err
	}
	normalized, err := decodeValues(row.NormalizedValues)
	if err != nil {
		return nil, err
	}
	missing, err := decodeParamList(row.MissingParameters)
	if err != nil {
		return nil, err
	}

	tic := &core.TeamInCompetition{
		TeamID:            core.TeamID(row.TeamID),
		CompetitionID:     core.CompetitionID(row.CompetitionID),
		Season:            row.Season,
		Raw:               raw,
		Normalized:        normalized,
		Confidence:        row.Confidence,
		MissingParameters: missing,
		LastUpdated:       row.LastUpdated,
	}
	if row.OverallStrength.Valid {
		v := row.OverallStrength.Float64
		tic.OverallStrength = &v
	}
	if row.LocalLeagueStrength.Valid {
		v := row.LocalLeagueStrength.Float64
		tic.LocalLeagueStrength = &v
	}
	if row.EuropeanStrength.Valid {
		v := row.EuropeanStrength.Float64
		tic.EuropeanStrength = &v
	}
	return tic, nil
}

const ticSelectColumns = `team_id, competition_id, season, raw_values, normalized_values,
	overall_strength, local_league_strength, european_strength, confidence, missing_parameters, last_updated`

// Get returns one record by (team, competition, season).
func (s *TeamInCompetitionStore) Get(ctx context.Context, teamID core.TeamID, competitionID core.CompetitionID, season string) (*core.TeamInCompetition, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ticSelectColumns+`
		FROM team_in_competition WHERE team_id = $1 AND competition_id = $2 AND season = $3`,
		string(teamID), string(competitionID), season)

	tic, err := scanTIC(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("team_in_competition", fmt.Sprintf("%s/%s/%s", teamID, competitionID, season))
	}
	if err != nil {
		return nil, core.NewStorageError("team_in_competition.get", err)
	}
	return tic, nil
}

// GetByTeamName resolves a team name across every competition active in season.
func (s *TeamInCompetitionStore) GetByTeamName(ctx context.Context, teamName string, season string) ([]core.TeamInCompetition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ticSelectColumns+`
		FROM team_in_competition tic
		JOIN teams t ON t.id = tic.team_id
		WHERE lower(t.name) = lower($1) AND tic.season = $2`, teamName, season)
	if err != nil {
		return nil, core.NewStorageError("team_in_competition.get_by_team_name", err)
	}
	defer rows.Close()

	var out []core.TeamInCompetition
	for rows.Next() {
		tic, err := scanTIC(rows.Scan)
		if err != nil {
			return nil, core.NewStorageError("team_in_competition.get_by_team_name.scan", err)
		}
		out = append(out, *tic)
	}
	return out, rows.Err()
}

// List returns records matching filter.
func (s *TeamInCompetitionStore) List(ctx context.Context, filter core.TeamInCompetitionFilter) ([]core.TeamInCompetition, error) {
	query := strings.Builder{}
	args := []any{}
	query.WriteString(`SELECT ` + ticSelectColumns + ` FROM team_in_competition tic`)

	var where []string
	if filter.TeamName != nil {
		query.WriteString(` JOIN teams t ON t.id = tic.team_id`)
		args = append(args, *filter.TeamName)
		where = append(where, fmt.Sprintf("lower(t.name) = lower($%d)", len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, string(*filter.TeamID))
		where = append(where, fmt.Sprintf("tic.team_id = $%d", len(args)))
	}
	if filter.CompetitionID != nil {
		args = append(args, string(*filter.CompetitionID))
		where = append(where, fmt.Sprintf("tic.competition_id = $%d", len(args)))
	}
	if filter.Season != nil {
		args = append(args, *filter.Season)
		where = append(where, fmt.Sprintf("tic.season = $%d", len(args)))
	}
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY tic.last_updated DESC")

	p := core.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage)
	args = append(args, p.PerPage, p.Offset())
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, core.NewStorageError("team_in_competition.list", err)
	}
	defer rows.Close()

	var out []core.TeamInCompetition
	for rows.Next() {
		tic, err := scanTIC(rows.Scan)
		if err != nil {
			return nil, core.NewStorageError("team_in_competition.list.scan", err)
		}
		out = append(out, *tic)
	}
	return out, rows.Err()
}

// UpsertRaw atomically writes a single raw parameter value, creating the
// record on first observation. The read-modify-write of the JSONB map
// happens inside a single transaction so concurrent collector writes to
// different parameters of the same triple never clobber each other.
func (s *TeamInCompetitionStore) UpsertRaw(ctx context.Context, teamID core.TeamID, competitionID core.CompetitionID, season string, parameter core.Parameter, value float64) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var existing []byte
		err := tx.QueryRowContext(ctx, `
			SELECT raw_values FROM team_in_competition
			WHERE team_id = $1 AND competition_id = $2 AND season = $3
			FOR UPDATE`, string(teamID), string(competitionID), season).Scan(&existing)

		values := core.ParameterValues{}
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// first observation; values stays empty
		case err != nil:
			return fmt.Errorf("read current raw values: %w", err)
		default:
			values, err = decodeValues(existing)
			if err != nil {
				return fmt.Errorf("decode raw values: %w", err)
			}
		}

		values.Set(parameter, value)
		encoded, err := encodeValues(values)
		if err != nil {
			return fmt.Errorf("encode raw values: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO team_in_competition (team_id, competition_id, season, raw_values, last_updated)
			VALUES ($1, $2, $3, $4, NOW())
			ON CONFLICT (team_id, competition_id, season) DO UPDATE SET
				raw_values = EXCLUDED.raw_values,
				last_updated = NOW()`,
			string(teamID), string(competitionID), season, encoded)
		return err
	})
}

// BulkReadRaw returns every team's raw value for one (competition, season, parameter).
func (s *TeamInCompetitionStore) BulkReadRaw(ctx context.Context, competitionID core.CompetitionID, season string, parameter core.Parameter) ([]core.RawParameterRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT team_id, (raw_values ->> $1)::double precision
		FROM team_in_competition WHERE competition_id = $2 AND season = $3`,
		string(parameter), string(competitionID), season)
	if err != nil {
		return nil, core.NewStorageError("team_in_competition.bulk_read_raw", err)
	}
	defer rows.Close()

	var out []core.RawParameterRow
	for rows.Next() {
		var teamID string
		var value sql.NullFloat64
		if err := rows.Scan(&teamID, &value); err != nil {
			return nil, core.NewStorageError("team_in_competition.bulk_read_raw.scan", err)
		}
		row := core.RawParameterRow{TeamID: core.TeamID(teamID)}
		if value.Valid {
			v := value.Float64
			row.Value = &v
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// BulkReadRawAcrossCompetitions is the european_strength variant's input:
// every team's raw value for one parameter across several competitions
// sharing a season, grouped by competition.
func (s *TeamInCompetitionStore) BulkReadRawAcrossCompetitions(ctx context.Context, competitionIDs []core.CompetitionID, season string, parameter core.Parameter) (map[core.CompetitionID][]core.RawParameterRow, error) {
	if len(competitionIDs) == 0 {
		return map[core.CompetitionID][]core.RawParameterRow{}, nil
	}
	ids := make([]string, len(competitionIDs))
	for i, id := range competitionIDs {
		ids[i] = string(id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT competition_id, team_id, (raw_values ->> $1)::double precision
		FROM team_in_competition WHERE competition_id = ANY($2) AND season = $3`,
		string(parameter), pqStringArray(ids), season)
	if err != nil {
		return nil, core.NewStorageError("team_in_competition.bulk_read_raw_across_competitions", err)
	}
	defer rows.Close()

	out := map[core.CompetitionID][]core.RawParameterRow{}
	for rows.Next() {
		var competitionID, teamID string
		var value sql.NullFloat64
		if err := rows.Scan(&competitionID, &teamID, &value); err != nil {
			return nil, core.NewStorageError("team_in_competition.bulk_read_raw_across_competitions.scan", err)
		}
		row := core.RawParameterRow{TeamID: core.TeamID(teamID)}
		if value.Valid {
			v := value.Float64
			row.Value = &v
		}
		out[core.CompetitionID(competitionID)] = append(out[core.CompetitionID(competitionID)], row)
	}
	return out, rows.Err()
}

// BulkWriteNormalized persists the Normalizer's output for one
// (competition, season, parameter), one row per team inside a transaction.
func (s *TeamInCompetitionStore) BulkWriteNormalized(ctx context.Context, competitionID core.CompetitionID, season string, parameter core.Parameter, writes []core.NormalizedWrite) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, w := range writes {
			_, err := tx.ExecContext(ctx, `
				UPDATE team_in_competition
				SET normalized_values = jsonb_set(normalized_values, $1, $2::jsonb, true), last_updated = NOW()
				WHERE team_id = $3 AND competition_id = $4 AND season = $5`,
				jsonbPath(string(parameter)), normalizedJSONLiteral(w.Value), string(w.TeamID), string(competitionID), season)
			if err != nil {
				return fmt.Errorf("write normalized value for %s: %w", w.TeamID, err)
			}
		}
		return nil
	})
}

// BulkWriteAggregate persists the Aggregator's output for one (competition, season).
func (s *TeamInCompetitionStore) BulkWriteAggregate(ctx context.Context, competitionID core.CompetitionID, season string, writes []core.AggregateWrite) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, w := range writes {
			missing, err := encodeParamList(w.MissingParameters)
			if err != nil {
				return fmt.Errorf("encode missing parameters for %s: %w", w.TeamID, err)
			}
			_, err = tx.ExecContext(ctx, `
				UPDATE team_in_competition
				SET overall_strength = $1, local_league_strength = $2, european_strength = $3,
					confidence = $4, missing_parameters = $5, last_updated = NOW()
				WHERE team_id = $6 AND competition_id = $7 AND season = $8`,
				w.OverallStrength, w.LocalLeagueStrength, w.EuropeanStrength, w.Confidence, missing,
				string(w.TeamID), string(competitionID), season)
			if err != nil {
				return fmt.Errorf("write aggregate for %s: %w", w.TeamID, err)
			}
		}
		return nil
	})
}

// Coverage implements core.CoverageRepository.
func (s *TeamInCompetitionStore) Coverage(ctx context.Context, competitionID core.CompetitionID, season string) (*core.CoverageReport, error) {
	report := &core.CoverageReport{
		CompetitionID:  competitionID,
		Season:         season,
		NonNullByParam: map[core.Parameter]int{},
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT count(*), min(last_updated), max(last_updated)
		FROM team_in_competition WHERE competition_id = $1 AND season = $2`,
		string(competitionID), season).Scan(&report.TeamCount, &report.OldestUpdated, &report.NewestUpdated)
	if err != nil {
		return nil, core.NewStorageError("team_in_competition.coverage", err)
	}

	for _, param := range core.Parameters {
		var count int
		err := s.db.QueryRowContext(ctx, `
			SELECT count(*) FROM team_in_competition
			WHERE competition_id = $1 AND season = $2 AND raw_values ? $3`,
			string(competitionID), season, string(param)).Scan(&count)
		if err != nil {
			return nil, core.NewStorageError("team_in_competition.coverage.param", err)
		}
		report.NonNullByParam[param] = count
	}
	return report, nil
}
