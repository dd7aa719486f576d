package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// profileRankingLimit bounds the leaderboard scanned for a user's position
const profileRankingLimit = 100

// UserProfile builds a predictor's profile from their predictions and the
// leaderboard. A failed predictions fetch yields the placeholder profile.
func (s *Service) UserProfile(ctx context.Context, email string) models.UserProfile {
	email = strings.ToLower(strings.TrimSpace(email))

	var (
		wg      sync.WaitGroup
		preds   upstream.Result[[]models.Prediction]
		ranking upstream.Result[[]models.UserStats]
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		preds = upstream.Fetch(ctx, func(ctx context.Context) ([]models.Prediction, error) {
			return s.backend.MyPredictions(ctx, email)
		})
	}()
	go func() {
		defer wg.Done()
		ranking = upstream.Fetch(ctx, func(ctx context.Context) ([]models.UserStats, error) {
			return s.backend.Ranking(ctx, profileRankingLimit)
		})
	}()
	wg.Wait()

	if !preds.OK() {
		s.logFallback("my_predictions", preds.Err)
		return fallback.Profile(email)
	}

	profile := BuildProfile(email, preds.Value)
	if !ranking.OK() {
		s.logFallback("profile_ranking", ranking.Err)
		return profile
	}
	for i, st := range ranking.Value {
		if strings.EqualFold(st.UserEmail, email) {
			profile.Position = st.Position
			if profile.Position <= 0 {
				profile.Position = i + 1
			}
			s.applyStats(ctx, &profile, st)
			break
		}
	}
	return profile
}

// applyStats sets the join date from the predictor's stats record. Ranking
// rows may omit timestamps, so the record is fetched when needed.
func (s *Service) applyStats(ctx context.Context, profile *models.UserProfile, st models.UserStats) {
	if st.CreatedAt.IsZero() && st.ID > 0 {
		res := upstream.Fetch(ctx, func(ctx context.Context) (models.UserStats, error) {
			return s.backend.UserStats(ctx, st.ID)
		})
		if !res.OK() {
			s.logFallback("user_stats", res.Err)
			return
		}
		st = res.Value
	}
	if !st.CreatedAt.IsZero() {
		profile.JoinDate = st.CreatedAt.Format("2006-01-02")
	}
}

// BuildProfile summarizes a user's predictions
func BuildProfile(email string, preds []models.Prediction) models.UserProfile {
	profile := models.UserProfile{
		Email:   email,
		History: make([]models.HistoryEntry, 0, len(preds)),
	}

	for _, p := range preds {
		if profile.Name == "" {
			profile.Name = p.UserName
		}
		profile.TotalPredictions++
		if p.IsCorrect != nil && *p.IsCorrect {
			profile.CorrectPredictions++
		}
		profile.TotalPoints += p.PointsEarned
		profile.History = append(profile.History, historyEntry(p))
	}

	profile.Accuracy = Accuracy(profile.CorrectPredictions, profile.TotalPredictions)
	return profile
}

// Accuracy returns correct/total as a percentage with one decimal,
// 0 when there are no predictions
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(correct) * 100).Div(decimal.NewFromInt(int64(total)))
	return pct.Round(1).InexactFloat64()
}

func historyEntry(p models.Prediction) models.HistoryEntry {
	entry := models.HistoryEntry{
		ID:         p.ID,
		Match:      fmt.Sprintf("Partida #%d", p.Match),
		Prediction: p.Prediction,
		Correct:    p.IsCorrect,
		Points:     p.PointsEarned,
	}
	if !p.CreatedAt.IsZero() {
		entry.Date = p.CreatedAt.Format("2006-01-02")
	}
	if m := p.MatchDetails; m != nil {
		entry.Match = m.HomeTeam + " vs " + m.AwayTeam
		entry.Result = Outcome(*m)
		if entry.Date == "" {
			entry.Date = m.MatchDate
		}
	}
	return entry
}

// Outcome returns home, draw or away for a finished match, "" otherwise
func Outcome(m models.Match) string {
	if m.Status != "finished" || m.HomeScore == nil || m.AwayScore == nil {
		return ""
	}
	switch {
	case *m.HomeScore > *m.AwayScore:
		return models.OutcomeHome
	case *m.HomeScore < *m.AwayScore:
		return models.OutcomeAway
	default:
		return models.OutcomeDraw
	}
}
