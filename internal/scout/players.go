package scout

import "github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"

// playerDatabase holds the scouted player for each pitch slot
var playerDatabase = map[string]models.Player{
	"GK": {
		ID: "P001", Name: "Jogador #001", Age: 28, Height: 190, Weight: 85, Rating: 85,
		Nationality: "BRA", Contract: "2025", MarketValue: "15M",
		Technical: 82, Physical: 88, Mental: 85, Tactical: 84,
		Attributes: map[string]int{"reflexos": 88, "posicionamento": 85, "jogo_aéreo": 82, "saída": 80},
	},
	"RB": {
		ID: "P002", Name: "Jogador #002", Age: 26, Height: 178, Weight: 75, Rating: 82,
		Nationality: "ARG", Contract: "2024", MarketValue: "12M",
		Technical: 84, Physical: 86, Mental: 80, Tactical: 82,
		Attributes: map[string]int{"velocidade": 88, "cruzamento": 82, "desarme": 84, "resistência": 86},
	},
	"CB1": {
		ID: "P003", Name: "Jogador #003", Age: 29, Height: 188, Weight: 83, Rating: 87,
		Nationality: "FRA", Contract: "2026", MarketValue: "25M",
		Technical: 80, Physical: 90, Mental: 87, Tactical: 88,
		Attributes: map[string]int{"força": 92, "marcação": 90, "antecipação": 88, "jogo_aéreo": 89},
	},
	"CB2": {
		ID: "P004", Name: "Jogador #004", Age: 27, Height: 186, Weight: 82, Rating: 86,
		Nationality: "ESP", Contract: "2025", MarketValue: "22M",
		Technical: 82, Physical: 89, Mental: 85, Tactical: 87,
		Attributes: map[string]int{"passe": 84, "marcação": 89, "posicionamento": 87, "força": 88},
	},
	"LB": {
		ID: "P005", Name: "Jogador #005", Age: 25, Height: 176, Weight: 74, Rating: 83,
		Nationality: "POR", Contract: "2024", MarketValue: "14M",
		Technical: 86, Physical: 85, Mental: 81, Tactical: 83,
		Attributes: map[string]int{"drible": 86, "velocidade": 87, "cruzamento": 84, "resistência": 85},
	},
	"CDM": {
		ID: "P006", Name: "Jogador #006", Age: 24, Height: 182, Weight: 78, Rating: 84,
		Nationality: "ITA", Contract: "2026", MarketValue: "18M",
		Technical: 85, Physical: 84, Mental: 83, Tactical: 86,
		Attributes: map[string]int{"passe": 87, "visão": 86, "desarme": 84, "interceptação": 85},
	},
	"CM1": {
		ID: "P007", Name: "Jogador #007", Age: 26, Height: 180, Weight: 76, Rating: 85,
		Nationality: "GER", Contract: "2025", MarketValue: "20M",
		Technical: 88, Physical: 83, Mental: 84, Tactical: 85,
		Attributes: map[string]int{"passe": 89, "visão": 88, "chute_longa_distância": 85, "controle": 87},
	},
	"CM2": {
		ID: "P008", Name: "Jogador #008", Age: 23, Height: 175, Weight: 72, Rating: 82,
		Nationality: "NED", Contract: "2024", MarketValue: "16M",
		Technical: 87, Physical: 80, Mental: 82, Tactical: 81,
		Attributes: map[string]int{"drible": 88, "velocidade": 82, "controle": 87, "criatividade": 86},
	},
	"RW": {
		ID: "P009", Name: "Jogador #009", Age: 22, Height: 177, Weight: 73, Rating: 89,
		Nationality: "BRA", Contract: "2027", MarketValue: "35M",
		Technical: 92, Physical: 87, Mental: 86, Tactical: 85,
		Attributes: map[string]int{"velocidade": 93, "drible": 92, "finalização": 88, "aceleração": 94},
	},
	"ST": {
		ID: "P010", Name: "Jogador #010", Age: 30, Height: 183, Weight: 79, Rating: 88,
		Nationality: "URU", Contract: "2025", MarketValue: "28M",
		Technical: 90, Physical: 86, Mental: 89, Tactical: 87,
		Attributes: map[string]int{"finalização": 92, "posicionamento": 90, "jogo_aéreo": 87, "força": 86},
	},
	"LW": {
		ID: "P011", Name: "Jogador #011", Age: 24, Height: 179, Weight: 74, Rating: 87,
		Nationality: "ENG", Contract: "2026", MarketValue: "30M",
		Technical: 91, Physical: 85, Mental: 84, Tactical: 86,
		Attributes: map[string]int{"drible": 91, "velocidade": 88, "cruzamento": 89, "finalização": 87},
	},
}

// PlayerFor returns the scouted player for a pitch slot. The attribute
// map is copied so callers may not mutate the database.
func PlayerFor(positionID string) (models.Player, bool) {
	p, ok := playerDatabase[positionID]
	if !ok {
		return models.Player{}, false
	}
	attrs := make(map[string]int, len(p.Attributes))
	for k, v := range p.Attributes {
		attrs[k] = v
	}
	p.Attributes = attrs
	return p, true
}
