package feed

import (
	"context"
	"sync"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// MatchesPage lists every match, placeholder fixtures on failure
func (s *Service) MatchesPage(ctx context.Context) models.MatchesPage {
	res := upstream.Fetch(ctx, s.backend.ListMatches)
	if !res.OK() {
		s.logFallback("matches", res.Err)
	}
	matches, usedFallback := res.Or(fallback.UpcomingMatches())

	return models.MatchesPage{
		Matches:  UpcomingMatches(matches),
		Total:    len(matches),
		Fallback: usedFallback,
	}
}

// MatchPage fetches a match and the predictions made for it concurrently.
// The prediction split falls back to zero counts on its own.
func (s *Service) MatchPage(ctx context.Context, id int) (models.MatchPage, error) {
	var (
		wg    sync.WaitGroup
		match upstream.Result[models.Match]
		preds upstream.Result[[]models.Prediction]
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		match = upstream.Fetch(ctx, func(ctx context.Context) (models.Match, error) {
			return s.backend.GetMatch(ctx, id)
		})
	}()
	go func() {
		defer wg.Done()
		preds = upstream.Fetch(ctx, s.backend.ListPredictions)
	}()
	wg.Wait()

	var page models.MatchPage
	m := match.Value
	if !match.OK() {
		if isNotFound(match.Err) {
			return models.MatchPage{}, ErrMatchNotFound
		}
		s.logFallback("match", match.Err)
		var ok bool
		if m, ok = fallbackMatch(id); !ok {
			return models.MatchPage{}, ErrMatchNotFound
		}
		page.Fallback = true
	}

	page.Match = UpcomingMatches([]models.Match{m})[0]
	page.HomeScore = m.HomeScore
	page.AwayScore = m.AwayScore
	page.Result = Outcome(m)

	if !preds.OK() {
		s.logFallback("match_predictions", preds.Err)
		page.PredictionsFallback = true
	}
	page.Predictions, page.Split = PredictionSplit(preds.Value, id)
	return page, nil
}

// PredictionSplit counts the predictions for a match by outcome
func PredictionSplit(preds []models.Prediction, matchID int) (int, map[string]int) {
	split := map[string]int{
		models.OutcomeHome: 0,
		models.OutcomeDraw: 0,
		models.OutcomeAway: 0,
	}
	total := 0
	for _, p := range preds {
		if p.Match != matchID {
			continue
		}
		if _, ok := split[p.Prediction]; !ok {
			continue
		}
		split[p.Prediction]++
		total++
	}
	return total, split
}

func fallbackMatch(id int) (models.Match, bool) {
	for _, m := range fallback.UpcomingMatches() {
		if m.ID == id {
			return m, true
		}
	}
	return models.Match{}, false
}
