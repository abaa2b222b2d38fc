// Package search parses free-text lookups ("Arsenal vs Chelsea 2025-26",
// "champions league liverpool") into structured filters the Query API and
// CLI fetch helpers can hand to a repository.
package search

import (
	"regexp"
	"strings"

	"strengthgrid.dev/strength/internal/core"
)

// MatchQuery represents parsed natural-language query components for a
// team or fixture search.
type MatchQuery struct {
	RawQuery      string
	Season        *string
	HomeTeamName  *string
	AwayTeamName  *string
	CompetitionID *string
}

var (
	// seasonPattern matches "2024-25" / "2024/25" style season tags, or a bare 4-digit year.
	seasonPattern = regexp.MustCompile(`\b(20\d{2})[-/](\d{2})\b|\b(20\d{2})\b`)

	// competitionKeywords maps common names to competition IDs as seeded by internal/seed.
	competitionKeywords = map[string]string{
		"premier league":        "eng-prem",
		"epl":                   "eng-prem",
		"la liga":               "esp-laliga",
		"laliga":                "esp-laliga",
		"bundesliga":            "ger-bundesliga",
		"champions league":      "uefa-ucl",
		"ucl":                   "uefa-ucl",
		"uefa champions league": "uefa-ucl",
	}
)

// ParseMatchQuery extracts a season, competition, and up to two team
// names from a free-text query. Team extraction without a
// TeamAliasResolver falls back to the " vs " / " v " separator convention.
func ParseMatchQuery(raw string) MatchQuery {
	query := MatchQuery{RawQuery: raw}
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if matches := seasonPattern.FindStringSubmatch(normalized); matches != nil {
		switch {
		case matches[1] != "" && matches[2] != "":
			season := matches[1] + "-" + matches[2]
			query.Season = &season
		case matches[3] != "":
			query.Season = &matches[3]
		}
	}

	for keyword, id := range competitionKeywords {
		if strings.Contains(normalized, keyword) {
			competitionID := id
			query.CompetitionID = &competitionID
			break
		}
	}

	for _, sep := range []string{" vs ", " v ", " versus "} {
		if idx := strings.Index(normalized, sep); idx >= 0 {
			home := strings.TrimSpace(normalized[:idx])
			away := strings.TrimSpace(normalized[idx+len(sep):])
			if home != "" {
				query.HomeTeamName = &home
			}
			if away != "" {
				away = trimTrailingSeason(away)
				query.AwayTeamName = &away
			}
			break
		}
	}

	return query
}

func trimTrailingSeason(s string) string {
	if loc := seasonPattern.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[:loc[0]])
	}
	return s
}

// TeamAliasResolver resolves a free-text team name to a stable TeamID,
// optionally scoped to a season.
type TeamAliasResolver interface {
	ResolveTeamAlias(alias string, season *string) (core.TeamID, bool)
}

// EnrichWithTeamAliases attempts to resolve HomeTeamName/AwayTeamName (or,
// failing that, every token in the raw query) against resolver.
func (q *MatchQuery) EnrichWithTeamAliases(resolver TeamAliasResolver) {
	var homeID, awayID *core.TeamID

	if q.HomeTeamName != nil {
		if id, ok := resolver.ResolveTeamAlias(*q.HomeTeamName, q.Season); ok {
			homeID = &id
		}
	}
	if q.AwayTeamName != nil {
		if id, ok := resolver.ResolveTeamAlias(*q.AwayTeamName, q.Season); ok {
			awayID = &id
		}
	}

	if homeID != nil || awayID != nil {
		setResolved(q, homeID, awayID)
		return
	}

	normalized := strings.ToLower(q.RawQuery)
	tokens := strings.Fields(normalized)

	for i := range tokens {
		candidates := []string{tokens[i]}
		if i < len(tokens)-1 {
			candidates = append(candidates, tokens[i]+" "+tokens[i+1])
		}
		for _, candidate := range candidates {
			id, ok := resolver.ResolveTeamAlias(candidate, q.Season)
			if !ok {
				continue
			}
			if homeID == nil {
				homeID = &id
			} else if awayID == nil && *homeID != id {
				awayID = &id
			}
		}
	}

	setResolved(q, homeID, awayID)
}

func setResolved(q *MatchQuery, homeID, awayID *core.TeamID) {
	if homeID != nil {
		name := string(*homeID)
		q.HomeTeamName = &name
	}
	if awayID != nil {
		name := string(*awayID)
		q.AwayTeamName = &name
	}
}
