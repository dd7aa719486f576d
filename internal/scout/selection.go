package scout

import "github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"

// Selection is an ordered set of players keyed by pitch slot.
// The zero value is an empty selection ready to use. A Selection is not
// safe for concurrent use; Store serializes access to it.
type Selection struct {
	entries []models.SelectedPlayer
}

// Merge combines a pitch slot with the player occupying it. The position id
// is kept as the entry id and the player id is exposed separately.
func Merge(pos models.Position, p models.Player) models.SelectedPlayer {
	return models.SelectedPlayer{
		PositionID:  pos.ID,
		Label:       pos.Label,
		Role:        pos.Role,
		X:           pos.X,
		Y:           pos.Y,
		PlayerID:    p.ID,
		Name:        p.Name,
		Number:      p.Number,
		Rating:      p.Rating,
		Age:         p.Age,
		Height:      p.Height,
		Weight:      p.Weight,
		Nationality: p.Nationality,
		Contract:    p.Contract,
		MarketValue: p.MarketValue,
		Technical:   p.Technical,
		Physical:    p.Physical,
		Mental:      p.Mental,
		Tactical:    p.Tactical,
		Attributes:  p.Attributes,
	}
}

// Toggle removes pos from the selection if present, otherwise appends it
// merged with its player from the database. A slot without a player is
// appended with placeholder values. Returns true when the slot was added.
// A full selection ignores additions.
func (s *Selection) Toggle(pos models.Position) bool {
	for i, e := range s.entries {
		if e.PositionID == pos.ID {
			s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
			return false
		}
	}
	if len(s.entries) >= MaxSelection {
		return false
	}

	player, _ := PlayerFor(pos.ID)
	s.entries = append(s.entries, Merge(pos, player))
	return true
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.entries = nil
}

// LoadTeam replaces the selection with all eleven slots in canonical order,
// using the roster's names and numbers over the player database stats.
// Slots missing from the roster keep the role as name and "-" as number.
func (s *Selection) LoadTeam(r Roster) {
	entries := make([]models.SelectedPlayer, 0, len(positions))
	for _, pos := range positions {
		player, _ := PlayerFor(pos.ID)
		if rp, ok := r[pos.ID]; ok && rp.Name != "" {
			player.Name = rp.Name
			player.Number = rp.Number
		} else {
			player.Name = pos.Role
			player.Number = "-"
		}
		entries = append(entries, Merge(pos, player))
	}
	s.entries = entries
}

// Entries returns a copy of the selection in insertion order
func (s *Selection) Entries() []models.SelectedPlayer {
	out := make([]models.SelectedPlayer, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of selected slots
func (s *Selection) Len() int {
	return len(s.entries)
}

// Contains reports whether the slot is selected
func (s *Selection) Contains(positionID string) bool {
	for _, e := range s.entries {
		if e.PositionID == positionID {
			return true
		}
	}
	return false
}

// Lineup builds the lineup card of a team from its roster
func Lineup(r Roster) []models.LineupEntry {
	lineup := make([]models.LineupEntry, 0, len(positions))
	for _, pos := range positions {
		player, _ := PlayerFor(pos.ID)
		entry := models.LineupEntry{
			PositionID:  pos.ID,
			Name:        pos.Role,
			Number:      "-",
			Position:    pos.Label,
			Role:        pos.Role,
			Age:         player.Age,
			Nationality: "BRA",
		}
		if rp, ok := r[pos.ID]; ok {
			if rp.Name != "" {
				entry.Name = rp.Name
			}
			if rp.Number != "" {
				entry.Number = rp.Number
			}
		}
		lineup = append(lineup, entry)
	}
	return lineup
}
