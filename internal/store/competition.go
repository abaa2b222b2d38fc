package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"strengthgrid.dev/strength/internal/core"
	"strengthgrid.dev/strength/internal/db"
)

// CompetitionStore implements core.CompetitionRepository against Postgres.
type CompetitionStore struct {
	db *db.DB
}

// NewCompetitionStore builds a CompetitionStore.
func NewCompetitionStore(database *db.DB) *CompetitionStore {
	return &CompetitionStore{db: database}
}

func scanCompetition(row *sql.Rows) (*core.Competition, error) {
	var c core.Competition
	var confederation, externalLeagueID sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Country, &c.Type, &c.Season, &c.Tier, &confederation, &externalLeagueID); err != nil {
		return nil, err
	}
	if confederation.Valid {
		c.Confederation = &confederation.String
	}
	if externalLeagueID.Valid {
		c.ExternalLeagueID = &externalLeagueID.String
	}
	return &c, nil
}

// GetByID returns a single competition by id.
func (s *CompetitionStore) GetByID(ctx context.Context, id core.CompetitionID) (*core.Competition, error) {
	var c core.Competition
	var confederation, externalLeagueID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, country, type, season, tier, confederation, external_league_id
		FROM competitions WHERE id = $1`, string(id)).
		Scan(&c.ID, &c.Name, &c.Country, &c.Type, &c.Season, &c.Tier, &confederation, &externalLeagueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("competition", string(id))
	}
	if err != nil {
		return nil, core.NewStorageError("competition.get_by_id", err)
	}
	if confederation.Valid {
		c.Confederation = &confederation.String
	}
	if externalLeagueID.Valid {
		c.ExternalLeagueID = &externalLeagueID.String
	}
	return &c, nil
}

// List returns competitions matching filter.
func (s *CompetitionStore) List(ctx context.Context, filter core.CompetitionFilter) ([]core.Competition, error) {
	query := strings.Builder{}
	args := []any{}
	query.WriteString(`SELECT id, name, country, type, season, tier, confederation, external_league_id FROM competitions`)

	var where []string
	if filter.Season != nil {
		args = append(args, *filter.Season)
		where = append(where, fmt.Sprintf("season = $%d", len(args)))
	}
	if filter.Country != nil {
		args = append(args, *filter.Country)
		where = append(where, fmt.Sprintf("country = $%d", len(args)))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(where) > 0 {
		query.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	query.WriteString(" ORDER BY name ASC")

	p := core.NewPagination(filter.Pagination.Page, filter.Pagination.PerPage)
	args = append(args, p.PerPage, p.Offset())
	query.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, core.NewStorageError("competition.list", err)
	}
	defer rows.Close()

	var out []core.Competition
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, core.NewStorageError("competition.list.scan", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ListDomesticLeaguesBySeason returns every domestic-league competition for
// a season — the scope used by the european_strength variant.
func (s *CompetitionStore) ListDomesticLeaguesBySeason(ctx context.Context, season string) ([]core.Competition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, country, type, season, tier, confederation, external_league_id
		FROM competitions WHERE season = $1 AND type = $2
		ORDER BY name ASC`, season, string(core.CompetitionDomesticLeague))
	if err != nil {
		return nil, core.NewStorageError("competition.list_domestic_by_season", err)
	}
	defer rows.Close()

	var out []core.Competition
	for rows.Next() {
		c, err := scanCompetition(rows)
		if err != nil {
			return nil, core.NewStorageError("competition.list_domestic_by_season.scan", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Upsert creates or updates a competition by id.
func (s *CompetitionStore) Upsert(ctx context.Context, competition *core.Competition) (*core.Competition, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO competitions (id, name, country, type, season, tier, confederation, external_league_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			type = EXCLUDED.type,
			tier = EXCLUDED.tier,
			confederation = EXCLUDED.confederation,
			external_league_id = EXCLUDED.external_league_id`,
		string(competition.ID), competition.Name, competition.Country, string(competition.Type),
		competition.Season, competition.Tier, competition.Confederation, competition.ExternalLeagueID)
	if err != nil {
		return nil, core.NewStorageError("competition.upsert", err)
	}
	return s.GetByID(ctx, competition.ID)
}
