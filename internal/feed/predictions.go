package feed

import (
	"context"
	"sync"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// PredictionsPage fetches upcoming matches and the leaderboard
// concurrently. Each section falls back independently.
func (s *Service) PredictionsPage(ctx context.Context) models.PredictionsPage {
	var (
		wg      sync.WaitGroup
		matches upstream.Result[[]models.Match]
		ranking upstream.Result[[]models.UserStats]
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		matches = upstream.Fetch(ctx, s.backend.UpcomingMatches)
	}()
	go func() {
		defer wg.Done()
		ranking = upstream.Fetch(ctx, func(ctx context.Context) ([]models.UserStats, error) {
			return s.backend.Ranking(ctx, RankingLimit)
		})
	}()
	wg.Wait()

	if !matches.OK() {
		s.logFallback("upcoming_matches", matches.Err)
	}
	if !ranking.OK() {
		s.logFallback("ranking", ranking.Err)
	}

	matchList, matchesFallback := matches.Or(fallback.UpcomingMatches())
	rankingList, rankingFallback := ranking.Or(fallback.Ranking())

	page := models.PredictionsPage{
		Matches:         UpcomingMatches(matchList),
		Ranking:         RankingEntries(rankingList),
		MatchesFallback: matchesFallback,
		RankingFallback: rankingFallback,
	}
	if matchesFallback || rankingFallback {
		page.Error = fallback.Notice
	}
	return page
}

// UpcomingMatches prepares matches for display with HH:MM kickoff times
func UpcomingMatches(matches []models.Match) []models.UpcomingMatch {
	out := make([]models.UpcomingMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, models.UpcomingMatch{
			ID:          m.ID,
			HomeTeam:    m.HomeTeam,
			AwayTeam:    m.AwayTeam,
			Date:        m.MatchDate,
			Time:        m.Kickoff(),
			Competition: m.Competition,
			Status:      m.Status,
		})
	}
	return out
}

// RankingEntries numbers leaderboard rows and assigns the podium badges.
// Rows without a position take their 1-based index.
func RankingEntries(stats []models.UserStats) []models.RankingEntry {
	out := make([]models.RankingEntry, 0, len(stats))
	for i, st := range stats {
		pos := st.Position
		if pos <= 0 {
			pos = i + 1
		}
		out = append(out, models.RankingEntry{
			Position:           pos,
			UserName:           st.UserName,
			TotalPredictions:   st.TotalPredictions,
			CorrectPredictions: st.CorrectPredictions,
			Accuracy:           st.Accuracy,
			TotalPoints:        st.TotalPoints,
			Trend:              "same",
			Badge:              badge(pos),
		})
	}
	return out
}

func badge(position int) string {
	switch position {
	case 1:
		return models.BadgeGold
	case 2:
		return models.BadgeSilver
	case 3:
		return models.BadgeBronze
	default:
		return ""
	}
}
