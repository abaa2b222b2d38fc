// Package store provides the Postgres-backed implementation of the
// repository interfaces declared in internal/core. It is the only layer
// aware of the underlying database engine; every other component consumes
// the typed core.*Repository interfaces.
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

// TeamStore implements core.TeamRepository against Postgres.
type TeamStore struct {
	db *db.DB
}

// NewTeamStore builds a TeamStore.
func NewTeamStore(database *db.DB) *TeamStore {
	return &TeamStore{db: database}
}

type teamRow struct {
	ID            string
	Name          string
	Nationality   sql.NullString
	Confederation sql.NullString
	ExternalRefs  []byte
	CreatedAt     time.Time
}

func scanTeam(row teamRow) (*core.Team, error) {
	t := &core.Team{
		ID:        core.TeamID(row.ID),
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
	if row.Nationality.Valid {
		t.Nationality = &row.Nationality.String
	}
	if row.Confederation.Valid {
		t.Confederation = &row.Confederation.String
	}
	if len(row.ExternalRefs) > 0 {
		refs := map[string]string{}
		if err := json.Unmarshal(row.ExternalRefs, &refs); err != nil {
			return nil, core.NewInternalError("team.external_refs", err.Error())
		}
		t.ExternalRefs = refs
	}
	return t, nil
}

// GetByID returns a single team by id.
func (s *TeamStore) GetByID(ctx context.Context, id core.TeamID) (*core.Team, error) {
	var row teamRow
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, nationality, confederation, external_refs, created_at
		FROM teams WHERE id = $1`, string(id)).
		Scan(&row.ID, &row.Name, &row.Nationality, &row.Confederation, &row.ExternalRefs, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("team", string(id))
	}
	if err != nil {
		return nil, core.NewStorageError("team.get_by_id", err)
	}
	return scanTeam(row)
}

// GetByName returns a single team by its unique canonical name (case-insensitive).
func (s *TeamStore) GetByName(ctx context.Context, name string) (*core.Team, error) {
	var row teamRow
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, nationality, confederation, external_refs, created_at
		FROM teams WHERE lower(name) = lower($1)`, name).
		Scan(&row.ID, &row.Name, &row.Nationality, &row.Confederation, &row.ExternalRefs, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("team", name)
	}
	if err != nil {
		return nil, core.NewStorageError("team.get_by_name", err)
	}
	return scanTeam(row)
}

// List returns teams matching filter, optionally scoped to a competition.
func (s *TeamStore) List(ctx context.Context, filter core.TeamFilter) ([]core.Team, error) {
	query := strings.Builder{}
	args := []any{}
	query.WriteString(`SELECT t.id, t.name, t.nationality, t.confederation, t.external_refs, t.created_at FROM teams t`)

	var where []string
	if filter.CompetitionID != nil {
		query.WriteString(` JOIN team_in_competition tic ON tic.team_id = t.id`)
		args = append(args, string(*filter.CompetitionID))
		where = append(where, fmt.Sprintf("tic.competition_id = $%d", len(args)))
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+strings.ToLower(filter.NameQuery)+"%")
		where = append(where, fmt.Sprintf("lower(t.name) LIKE $%d", len(args)))
	}
	if filter.Confederation != nil {
		args = append(args, *filter.Confederation)
		where = append(where, fmt.Sprintf("t.confederation = $%d", len(args)))
	}
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	sortCol := "t.name"
	if filter.SortBy == "created_at" {
		sortCol = "t.created_at"
	}
	dir := "ASC"
	if filter.SortOrder == core.SortDesc {
		dir = "DESC"
	}
	query.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortCol, dir))

	p := core.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage)
	args = append(args, p.PerPage, p.Offset())
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, core.NewStorageError("team.list", err)
	}
	defer rows.Close()

	var teams []core.Team
	for rows.Next() {
		var row teamRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Nationality, &row.Confederation, &row.ExternalRefs, &row.CreatedAt); err != nil {
			return nil, core.NewStorageError("team.list.scan", err)
		}
		team, err := scanTeam(row)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *team)
	}
	return teams, rows.Err()
}

// Count returns the number of teams matching filter (ignoring pagination).
func (s *TeamStore) Count(ctx context.Context, filter core.TeamFilter) (int, error) {
	query := strings.Builder{}
	args := []any{}
	query.WriteString(`SELECT count(DISTINCT t.id) FROM teams t`)

	var where []string
	if filter.CompetitionID != nil {
		query.WriteString(` JOIN team_in_competition tic ON tic.team_id = t.id`)
		args = append(args, string(*filter.CompetitionID))
		where = append(where, fmt.Sprintf("tic.competition_id = $%d", len(args)))
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+strings.ToLower(filter.NameQuery)+"%")
		where = append(where, fmt.Sprintf("lower(t.name) LIKE $%d", len(args)))
	}
	if filter.Confederation != nil {
		args = append(args, *filter.Confederation)
		where = append(where, fmt.Sprintf("t.confederation = $%d", len(args)))
	}
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&count); err != nil {
		return 0, core.NewStorageError("team.count", err)
	}
	return count, nil
}

// Upsert creates the team on first observation or returns the existing record unchanged.
func (s *TeamStore) Upsert(ctx context.Context, team *core.Team) (*core.Team, error) {
	refs := team.ExternalRefs
	if refs == nil {
		refs = map[string]string{}
	}
	encoded, err := json.Marshal(refs)
	if err != nil {
		return nil, core.NewInternalError("team.external_refs", err.Error())
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, nationality, confederation, external_refs, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			nationality = COALESCE(EXCLUDED.nationality, teams.nationality),
			confederation = COALESCE(EXCLUDED.confederation, teams.confederation),
			external_refs = teams.external_refs || EXCLUDED.external_refs`,
		string(team.ID), team.Name, team.Nationality, team.Confederation, encoded)
	if err != nil {
		return nil, core.NewStorageError("team.upsert", err)
	}
	return s.GetByID(ctx, team.ID)
}
