package scout_test

import (
	"reflect"
	"testing"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

func mustPosition(t *testing.T, id string) models.Position {
	t.Helper()
	pos, ok := scout.PositionByID(id)
	if !ok {
		t.Fatalf("position %s not found", id)
	}
	return pos
}

func ids(entries []models.SelectedPlayer) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.PositionID
	}
	return out
}

func TestSelection_ToggleAddsAndRemoves(t *testing.T) {
	var sel scout.Selection

	if added := sel.Toggle(mustPosition(t, "ST")); !added {
		t.Fatal("expected ST to be added")
	}
	if !sel.Contains("ST") || sel.Len() != 1 {
		t.Fatalf("expected selection [ST], got %v", ids(sel.Entries()))
	}

	entry := sel.Entries()[0]
	if entry.PositionID != "ST" || entry.PlayerID != "P010" {
		t.Errorf("expected position id ST and player id P010, got %s/%s", entry.PositionID, entry.PlayerID)
	}
	if entry.Role != "Atacante" || entry.Rating != 88 {
		t.Errorf("unexpected merged entry: %+v", entry)
	}

	if added := sel.Toggle(mustPosition(t, "ST")); added {
		t.Fatal("expected ST to be removed")
	}
	if sel.Len() != 0 {
		t.Errorf("expected empty selection, got %v", ids(sel.Entries()))
	}
}

func TestSelection_ToggleTwiceRestoresPriorState(t *testing.T) {
	var sel scout.Selection
	for _, id := range []string{"GK", "CB1", "CM1"} {
		sel.Toggle(mustPosition(t, id))
	}
	before := sel.Entries()

	for _, id := range []string{"LW", "GK"} {
		pos := mustPosition(t, id)
		sel.Toggle(pos)
		sel.Toggle(pos)
		// Removing then re-adding GK moves it to the end, so only the
		// add-then-remove direction is order preserving.
		if id == "LW" && !reflect.DeepEqual(before, sel.Entries()) {
			t.Errorf("toggling %s twice changed selection: %v -> %v", id, ids(before), ids(sel.Entries()))
		}
	}

	if sel.Len() != len(before) {
		t.Errorf("expected %d entries, got %d", len(before), sel.Len())
	}
}

func TestSelection_InsertionOrderPreserved(t *testing.T) {
	var sel scout.Selection
	order := []string{"LW", "GK", "CDM", "RB"}
	for _, id := range order {
		sel.Toggle(mustPosition(t, id))
	}
	if got := ids(sel.Entries()); !reflect.DeepEqual(got, order) {
		t.Errorf("expected %v, got %v", order, got)
	}
}

func TestSelection_NeverExceedsElevenOrDuplicates(t *testing.T) {
	var sel scout.Selection
	for round := 0; round < 3; round++ {
		for _, pos := range scout.Positions() {
			sel.Toggle(pos)
		}
		sel.Toggle(models.Position{ID: "EXTRA", Role: "Reserva"})

		if sel.Len() > scout.MaxSelection {
			t.Fatalf("selection grew to %d entries", sel.Len())
		}
		seen := map[string]bool{}
		for _, e := range sel.Entries() {
			if seen[e.PositionID] {
				t.Fatalf("duplicate position %s", e.PositionID)
			}
			seen[e.PositionID] = true
		}
	}
}

func TestSelection_ToggleUnknownPositionUsesPlaceholder(t *testing.T) {
	var sel scout.Selection
	sel.Toggle(models.Position{ID: "SUB"})

	entries := sel.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "" || entries[0].Role != "" || entries[0].Rating != 0 {
		t.Errorf("expected placeholder entry, got %+v", entries[0])
	}
}

func TestSelection_LoadTeam(t *testing.T) {
	tests := []struct {
		name  string
		team  string
		known bool
	}{
		{"recognised team", "Flamengo", true},
		{"case insensitive", "  palmeiras ", true},
		{"unknown team falls back", "Juventude", false},
		{"empty name falls back", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sel scout.Selection
			sel.Toggle(mustPosition(t, "ST"))

			roster, known := scout.RosterFor(tt.team)
			if known != tt.known {
				t.Fatalf("expected known=%v, got %v", tt.known, known)
			}
			sel.LoadTeam(roster)

			entries := sel.Entries()
			if got := ids(entries); !reflect.DeepEqual(got, scout.PositionIDs()) {
				t.Fatalf("expected canonical order %v, got %v", scout.PositionIDs(), got)
			}
			for _, e := range entries {
				if e.Name == "" {
					t.Errorf("position %s has no name", e.PositionID)
				}
			}
		})
	}
}

func TestSelection_LoadTeamUsesRosterNames(t *testing.T) {
	var sel scout.Selection
	roster, _ := scout.RosterFor("Flamengo")
	sel.LoadTeam(roster)

	for _, e := range sel.Entries() {
		want := roster[e.PositionID]
		if e.Name != want.Name || e.Number != want.Number {
			t.Errorf("%s: expected %s #%s, got %s #%s", e.PositionID, want.Name, want.Number, e.Name, e.Number)
		}
		if e.Rating == 0 {
			t.Errorf("%s: expected database stats to be kept", e.PositionID)
		}
	}
}

func TestSelection_LoadTeamPartialRoster(t *testing.T) {
	var sel scout.Selection
	sel.LoadTeam(scout.Roster{"GK": {Name: "Goleiro Titular", Number: "1"}})

	entries := sel.Entries()
	if len(entries) != scout.MaxSelection {
		t.Fatalf("expected %d entries, got %d", scout.MaxSelection, len(entries))
	}
	if entries[0].Name != "Goleiro Titular" {
		t.Errorf("expected roster name for GK, got %s", entries[0].Name)
	}
	if entries[1].Name != "Lateral Direito" || entries[1].Number != "-" {
		t.Errorf("expected role placeholder for RB, got %s #%s", entries[1].Name, entries[1].Number)
	}
}

func TestLineup(t *testing.T) {
	roster, _ := scout.RosterFor("Botafogo")
	lineup := scout.Lineup(roster)

	if len(lineup) != scout.MaxSelection {
		t.Fatalf("expected 11 lineup rows, got %d", len(lineup))
	}
	if lineup[0].Position != "GOL" || lineup[0].Name != "John" || lineup[0].Age != 28 {
		t.Errorf("unexpected goalkeeper row: %+v", lineup[0])
	}
	for _, row := range lineup {
		if row.Nationality != "BRA" {
			t.Errorf("expected BRA nationality, got %s", row.Nationality)
		}
	}
}

func TestPlayerFor_ReturnsCopy(t *testing.T) {
	p, ok := scout.PlayerFor("GK")
	if !ok {
		t.Fatal("expected GK player")
	}
	p.Attributes["reflexos"] = 1

	again, _ := scout.PlayerFor("GK")
	if again.Attributes["reflexos"] != 88 {
		t.Errorf("player database was mutated: %d", again.Attributes["reflexos"])
	}
}

func TestRosterFor_ReturnsCopies(t *testing.T) {
	tests := []struct {
		name string
		team string
	}{
		{"known team", "Flamengo"},
		{"unknown team", "Juventude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster, _ := scout.RosterFor(tt.team)
			original := roster["GK"]
			roster["GK"] = scout.RosterPlayer{Name: "Alterado", Number: "99"}
			delete(roster, "ST")

			again, _ := scout.RosterFor(tt.team)
			if again["GK"] != original {
				t.Errorf("static roster was mutated: GK is now %+v", again["GK"])
			}
			if _, ok := again["ST"]; !ok {
				t.Error("static roster lost its ST slot")
			}
		})
	}

	d := scout.DefaultRoster()
	d["GK"] = scout.RosterPlayer{Name: "Alterado"}
	if scout.DefaultRoster()["GK"].Name == "Alterado" {
		t.Error("DefaultRoster returned the shared table")
	}
}
