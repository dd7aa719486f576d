package feed

import (
	"context"
	"errors"
	"strings"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

var errNoTeams = errors.New("no teams stored")

// TeamsPage lists the clubs whose name or short name contains search,
// ignoring case
func (s *Service) TeamsPage(ctx context.Context, search string) models.TeamsPage {
	res := upstream.Result[[]models.Team]{Err: errNoTeams}
	if s.teams != nil {
		res = upstream.Fetch(ctx, s.teams.GetTeams)
		if res.OK() && len(res.Value) == 0 {
			res.Err = errNoTeams
		}
	}
	if !res.OK() {
		s.logFallback("teams", res.Err)
	}
	teams, usedFallback := res.Or(fallback.Teams())

	search = strings.TrimSpace(search)
	filtered := FilterTeams(teams, search)
	return models.TeamsPage{
		Teams:    filtered,
		Search:   search,
		Total:    len(filtered),
		Fallback: usedFallback,
	}
}

// FilterTeams keeps teams whose name or short name contains term
func FilterTeams(teams []models.Team, term string) []models.Team {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]models.Team, 0, len(teams))
	for _, t := range teams {
		if term == "" ||
			strings.Contains(strings.ToLower(t.Name), term) ||
			strings.Contains(strings.ToLower(t.ShortName), term) {
			out = append(out, t)
		}
	}
	return out
}
