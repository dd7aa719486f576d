package models

// Page is a slice of items with pagination metadata
type Page[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	Fallback   bool `json:"fallback"`
}

// Ranking badges for the top three positions
const (
	BadgeGold   = "gold"
	BadgeSilver = "silver"
	BadgeBronze = "bronze"
)

// RankingEntry is a leaderboard row prepared for display
type RankingEntry struct {
	Position           int     `json:"position"`
	UserName           string  `json:"user_name"`
	TotalPredictions   int     `json:"total_predictions"`
	CorrectPredictions int     `json:"correct_predictions"`
	Accuracy           float64 `json:"accuracy"`
	TotalPoints        int     `json:"total_points"`
	Trend              string  `json:"trend"` // up, down, same
	Badge              string  `json:"badge,omitempty"`
}

// UpcomingMatch is a match prepared for the predictions page
type UpcomingMatch struct {
	ID          int    `json:"id"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	Date        string `json:"date"`
	Time        string `json:"time"` // HH:MM
	Competition string `json:"competition"`
	Status      string `json:"status"`
}

// PredictionsPage is the view-model of the predictions page
type PredictionsPage struct {
	Matches         []UpcomingMatch `json:"matches"`
	Ranking         []RankingEntry  `json:"ranking"`
	MatchesFallback bool            `json:"matches_fallback"`
	RankingFallback bool            `json:"ranking_fallback"`
	Error           string          `json:"error,omitempty"`
}

// HomePage is the view-model of the landing page
type HomePage struct {
	Popular          []Post     `json:"popular"`
	Recent           []Post     `json:"recent"`
	Categories       []Category `json:"categories"`
	Tags             []Tag      `json:"tags"`
	PopularFallback  bool       `json:"popular_fallback"`
	RecentFallback   bool       `json:"recent_fallback"`
	CategoryFallback bool       `json:"categories_fallback"`
	TagsFallback     bool       `json:"tags_fallback"`
}

// PostPage is the view-model of a single post
type PostPage struct {
	Post     PostDetail `json:"post"`
	Fallback bool       `json:"fallback"`
}

// MatchesPage lists every match known to the backend
type MatchesPage struct {
	Matches  []UpcomingMatch `json:"matches"`
	Total    int             `json:"total"`
	Fallback bool            `json:"fallback"`
}

// MatchPage is the view-model of a single match with its prediction split
type MatchPage struct {
	Match               UpcomingMatch  `json:"match"`
	HomeScore           *int           `json:"home_score"`
	AwayScore           *int           `json:"away_score"`
	Result              string         `json:"result,omitempty"`
	Predictions         int            `json:"predictions"`
	Split               map[string]int `json:"prediction_split"`
	Fallback            bool           `json:"fallback"`
	PredictionsFallback bool           `json:"predictions_fallback"`
}

// TeamsPage is the view-model of the teams listing
type TeamsPage struct {
	Teams    []Team `json:"teams"`
	Search   string `json:"search,omitempty"`
	Total    int    `json:"total"`
	Fallback bool   `json:"fallback"`
}

// HistoryEntry is a settled or pending prediction on the profile page
type HistoryEntry struct {
	ID         int    `json:"id"`
	Match      string `json:"match"`
	Prediction string `json:"prediction"`
	Result     string `json:"result,omitempty"`
	Correct    *bool  `json:"correct"`
	Points     int    `json:"points"`
	Date       string `json:"date"`
}

// UserProfile is the view-model of a predictor's profile page
type UserProfile struct {
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	TotalPredictions   int            `json:"total_predictions"`
	CorrectPredictions int            `json:"correct_predictions"`
	Accuracy           float64        `json:"accuracy"`
	TotalPoints        int            `json:"total_points"`
	Position           int            `json:"position,omitempty"`
	JoinDate           string         `json:"join_date,omitempty"`
	History            []HistoryEntry `json:"history"`
	Fallback           bool           `json:"fallback"`
}
