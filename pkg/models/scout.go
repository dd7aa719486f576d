package models

import "time"

// Position is one of the fixed pitch slots of the 4-3-3 formation
type Position struct {
	ID    string  `json:"id"`
	Label string  `json:"label"` // Short pitch label (GOL, ZAG, MC...)
	Role  string  `json:"role"`
	X     float64 `json:"x"` // Display coordinates, percent of pitch width
	Y     float64 `json:"y"` // Percent of pitch height, goal line at 100
}

// Player is a scouted player record
type Player struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Number      string         `json:"number,omitempty"`
	Rating      int            `json:"rating"`
	Age         int            `json:"age"`
	Height      int            `json:"height"` // cm
	Weight      int            `json:"weight"` // kg
	Nationality string         `json:"nationality"`
	Contract    string         `json:"contract,omitempty"`
	MarketValue string         `json:"market_value"` // e.g. "15M"
	Technical   int            `json:"technical"`
	Physical    int            `json:"physical"`
	Mental      int            `json:"mental"`
	Tactical    int            `json:"tactical"`
	Attributes  map[string]int `json:"attributes,omitempty"`
}

// SelectedPlayer is a Position merged with the Player assigned to it
type SelectedPlayer struct {
	PositionID  string         `json:"id"`
	Label       string         `json:"label"`
	Role        string         `json:"role"`
	X           float64        `json:"x"`
	Y           float64        `json:"y"`
	PlayerID    string         `json:"player_id"`
	Name        string         `json:"name"`
	Number      string         `json:"number,omitempty"`
	Rating      int            `json:"rating"`
	Age         int            `json:"age"`
	Height      int            `json:"height"`
	Weight      int            `json:"weight"`
	Nationality string         `json:"nationality"`
	Contract    string         `json:"contract,omitempty"`
	MarketValue string         `json:"market_value"`
	Technical   int            `json:"technical"`
	Physical    int            `json:"physical"`
	Mental      int            `json:"mental"`
	Tactical    int            `json:"tactical"`
	Attributes  map[string]int `json:"attributes,omitempty"`
}

// AggregateReport holds mean statistics over a selection.
// Means are formatted with one decimal place.
type AggregateReport struct {
	Count            int    `json:"count"`
	Rating           string `json:"rating"`
	Age              string `json:"age"`
	Technical        string `json:"technical"`
	Physical         string `json:"physical"`
	Mental           string `json:"mental"`
	Tactical         string `json:"tactical"`
	TotalMarketValue string `json:"total_market_value"`
}

// LineupEntry is a single row of a team lineup card
type LineupEntry struct {
	PositionID  string `json:"id"`
	Name        string `json:"name"`
	Number      string `json:"number"`
	Position    string `json:"position"`
	Role        string `json:"role"`
	Age         int    `json:"age"`
	Nationality string `json:"nationality"`
}

// ScoutSession is the public view of a scouting session
type ScoutSession struct {
	ID        string           `json:"id"`
	Version   uint64           `json:"version"`
	Team      string           `json:"team,omitempty"`
	Notes     string           `json:"notes"`
	Selected  []SelectedPlayer `json:"selected_players"`
	Report    AggregateReport  `json:"aggregate"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ScoutReport is the exported scouting document
type ScoutReport struct {
	Date      time.Time        `json:"date"`
	Formation string           `json:"formation"`
	Team      string           `json:"team,omitempty"`
	Notes     string           `json:"notes"`
	Selected  []SelectedPlayer `json:"selected_players"`
	Metrics   AggregateReport  `json:"metrics"`
}

// SelectionUpdate is emitted whenever a session's selection changes
type SelectionUpdate struct {
	SessionID string           `json:"session_id"`
	Version   uint64           `json:"version"`
	Kind      string           `json:"kind"` // toggle, clear, load_team, notes, deleted, snapshot
	Team      string           `json:"team,omitempty"`
	Selected  []SelectedPlayer `json:"selected_players"`
	Report    AggregateReport  `json:"aggregate"`
	ChangedAt time.Time        `json:"changed_at"`
}

// Selection update kinds
const (
	UpdateKindToggle   = "toggle"
	UpdateKindClear    = "clear"
	UpdateKindLoadTeam = "load_team"
	UpdateKindNotes    = "notes"
	UpdateKindDeleted  = "deleted"
	UpdateKindSnapshot = "snapshot"
)
