package scout

import (
	"fmt"
	"sort"
	"strings"
)

// RosterPlayer is a named player occupying a pitch slot for a team
type RosterPlayer struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// Roster maps position ids to the team's player in that slot
type Roster map[string]RosterPlayer

// defaultRoster is used for teams without a roster table
var defaultRoster = func() Roster {
	r := make(Roster, len(positions))
	for i, p := range positions {
		r[p.ID] = RosterPlayer{
			Name:   fmt.Sprintf("Jogador #%03d", i+1),
			Number: fmt.Sprintf("%d", i+1),
		}
	}
	return r
}()

// DefaultRoster returns a copy of the generic roster used for unknown teams
func DefaultRoster() Roster {
	return defaultRoster.Clone()
}

// Clone returns an independent copy of the roster
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	cp := make(Roster, len(r))
	for pos, p := range r {
		cp[pos] = p
	}
	return cp
}

func roster(names [11]string, numbers [11]string) Roster {
	r := make(Roster, len(positions))
	for i, p := range positions {
		r[p.ID] = RosterPlayer{Name: names[i], Number: numbers[i]}
	}
	return r
}

// teamRosters holds the starting elevens, in canonical position order
var teamRosters = map[string]Roster{
	"Flamengo": roster(
		[11]string{"Rossi", "Varela", "Léo Ortiz", "Léo Pereira", "Alex Sandro", "Pulgar", "De La Cruz", "Arrascaeta", "Luiz Araújo", "Pedro", "Samuel Lino"},
		[11]string{"1", "2", "3", "4", "26", "5", "18", "10", "7", "9", "16"},
	),
	"Palmeiras": roster(
		[11]string{"Weverton", "Giay", "Gustavo Gómez", "Murilo", "Piquerez", "Aníbal Moreno", "Raphael Veiga", "Maurício", "Estêvão", "Vitor Roque", "Facundo Torres"},
		[11]string{"21", "4", "15", "26", "22", "5", "23", "18", "41", "9", "17"},
	),
	"Botafogo": roster(
		[11]string{"John", "Vitinho", "Jair", "Alexander Barboza", "Alex Telles", "Marlon Freitas", "Gregore", "Savarino", "Artur", "Igor Jesus", "Santiago Rodríguez"},
		[11]string{"24", "2", "4", "20", "13", "17", "26", "10", "7", "99", "23"},
	),
	"São Paulo": roster(
		[11]string{"Rafael", "Cédric", "Arboleda", "Alan Franco", "Wendell", "Pablo Maia", "Alisson", "Oscar", "Lucas Moura", "Calleri", "Ferreira"},
		[11]string{"23", "2", "5", "28", "18", "29", "25", "8", "7", "9", "47"},
	),
	"Corinthians": roster(
		[11]string{"Hugo Souza", "Matheuzinho", "André Ramalho", "Gustavo Henrique", "Hugo", "José Martínez", "Raniele", "Rodrigo Garro", "Romero", "Yuri Alberto", "Memphis Depay"},
		[11]string{"1", "2", "5", "13", "46", "70", "14", "10", "11", "9", "94"},
	),
	"Fluminense": roster(
		[11]string{"Fábio", "Samuel Xavier", "Thiago Silva", "Ignácio", "Renê", "Hércules", "Martinelli", "Ganso", "Serna", "Cano", "Canobbio"},
		[11]string{"1", "2", "3", "4", "6", "35", "8", "10", "90", "14", "17"},
	),
	"Internacional": roster(
		[11]string{"Rochet", "Aguirre", "Vitão", "Juninho", "Bernabei", "Fernando", "Thiago Maia", "Alan Patrick", "Wesley", "Borré", "Carbonero"},
		[11]string{"1", "28", "4", "44", "26", "5", "29", "10", "21", "19", "7"},
	),
	"Cruzeiro": roster(
		[11]string{"Cássio", "William", "Fabrício Bruno", "Jonathan Jesus", "Kaiki", "Lucas Romero", "Christian", "Matheus Pereira", "Wanderson", "Kaio Jorge", "Gabigol"},
		[11]string{"1", "12", "15", "4", "6", "29", "88", "10", "11", "19", "9"},
	),
}

// RosterFor returns the roster of a team and whether the team was
// recognised. Unknown teams get DefaultRoster. Matching ignores case and
// surrounding whitespace. The result is a copy.
func RosterFor(team string) (Roster, bool) {
	key := strings.TrimSpace(team)
	if r, ok := teamRosters[key]; ok {
		return r.Clone(), true
	}
	for name, r := range teamRosters {
		if strings.EqualFold(name, key) {
			return r.Clone(), true
		}
	}
	return DefaultRoster(), false
}

// TeamNames returns the teams with a roster table, sorted
func TeamNames() []string {
	names := make([]string, 0, len(teamRosters))
	for name := range teamRosters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rosters returns a copy of every built-in team roster
func Rosters() map[string]Roster {
	out := make(map[string]Roster, len(teamRosters))
	for team, r := range teamRosters {
		out[team] = r.Clone()
	}
	return out
}
