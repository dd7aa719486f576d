package scout

import "github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"

// Formation is the only supported pitch layout
const Formation = "4-3-3"

// MaxSelection is the number of pitch slots in the formation
const MaxSelection = 11

// positions lists the pitch slots in canonical order
var positions = []models.Position{
	{ID: "GK", Label: "GOL", Role: "Goleiro", X: 50, Y: 90},
	{ID: "RB", Label: "LD", Role: "Lateral Direito", X: 20, Y: 75},
	{ID: "CB1", Label: "ZAG", Role: "Zagueiro", X: 40, Y: 78},
	{ID: "CB2", Label: "ZAG", Role: "Zagueiro", X: 60, Y: 78},
	{ID: "LB", Label: "LE", Role: "Lateral Esquerdo", X: 80, Y: 75},
	{ID: "CDM", Label: "VOL", Role: "Volante", X: 50, Y: 60},
	{ID: "CM1", Label: "MC", Role: "Meio Campo", X: 35, Y: 50},
	{ID: "CM2", Label: "MC", Role: "Meio Campo", X: 65, Y: 50},
	{ID: "RW", Label: "PD", Role: "Ponta Direita", X: 20, Y: 25},
	{ID: "ST", Label: "ATA", Role: "Atacante", X: 50, Y: 20},
	{ID: "LW", Label: "PE", Role: "Ponta Esquerda", X: 80, Y: 25},
}

// Positions returns a copy of the pitch slots in canonical order
func Positions() []models.Position {
	out := make([]models.Position, len(positions))
	copy(out, positions)
	return out
}

// PositionIDs returns the canonical position ids
func PositionIDs() []string {
	ids := make([]string, len(positions))
	for i, p := range positions {
		ids[i] = p.ID
	}
	return ids
}

// PositionByID looks up a pitch slot
func PositionByID(id string) (models.Position, bool) {
	for _, p := range positions {
		if p.ID == id {
			return p, true
		}
	}
	return models.Position{}, false
}
