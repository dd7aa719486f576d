package models

import (
	"strings"
	"time"
)

// Match represents a fixture as served by the football backend
type Match struct {
	ID          int     `json:"id"`
	HomeTeam    string  `json:"home_team"`
	AwayTeam    string  `json:"away_team"`
	Competition string  `json:"competition"`
	MatchDate   string  `json:"match_date"` // YYYY-MM-DD
	MatchTime   string  `json:"match_time"` // HH:MM:SS
	Status      string  `json:"status"`     // scheduled, live, finished, postponed, cancelled
	HomeScore   *int    `json:"home_score"`
	AwayScore   *int    `json:"away_score"`
	ExternalID  *string `json:"external_id"`
}

// Kickoff returns the match time as HH:MM
func (m Match) Kickoff() string {
	if len(m.MatchTime) >= 5 {
		return m.MatchTime[:5]
	}
	return m.MatchTime
}

// Prediction outcomes
const (
	OutcomeHome = "home"
	OutcomeDraw = "draw"
	OutcomeAway = "away"
)

// Prediction is a user's guess for a match result
type Prediction struct {
	ID           int       `json:"id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	Match        int       `json:"match"`
	MatchDetails *Match    `json:"match_details,omitempty"`
	Prediction   string    `json:"prediction"`
	Confidence   int       `json:"confidence"`
	IsCorrect    *bool     `json:"is_correct"`
	PointsEarned int       `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExpectedPoints returns the points a settled prediction is worth:
// 10 per confidence star when correct, nothing otherwise.
func (p Prediction) ExpectedPoints() int {
	if p.IsCorrect == nil || !*p.IsCorrect {
		return 0
	}
	return 10 * p.Confidence
}

// PredictionInput is the body of a new prediction
type PredictionInput struct {
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Match      int    `json:"match"`
	Prediction string `json:"prediction"`
	Confidence int    `json:"confidence"`
}

// Normalize trims the identity fields and applies the default confidence
func (p *PredictionInput) Normalize() {
	p.UserName = strings.TrimSpace(p.UserName)
	p.UserEmail = strings.ToLower(strings.TrimSpace(p.UserEmail))
	p.Prediction = strings.ToLower(strings.TrimSpace(p.Prediction))
	if p.Confidence == 0 {
		p.Confidence = 3
	}
}

// UserStats is a row of the prediction leaderboard
type UserStats struct {
	ID                 int       `json:"id"`
	Position           int       `json:"position,omitempty"`
	UserName           string    `json:"user_name"`
	UserEmail          string    `json:"user_email"`
	TotalPredictions   int       `json:"total_predictions"`
	CorrectPredictions int       `json:"correct_predictions"`
	TotalPoints        int       `json:"total_points"`
	Accuracy           float64   `json:"accuracy"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SyncResult is returned by the backend after syncing matches
type SyncResult struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Total   int    `json:"total"`
}

// Team is a club shown on the teams page
type Team struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	ShortName      string `json:"short_name"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}
