package game

// NoOwner marks a territory that has not been assigned to any player.
const NoOwner = "none"

// UnownedColor is the color territories carry before the game starts.
const UnownedColor = "white"

// DefaultPlayerColor is the placeholder color a player carries until Start
// assigns one from the palette.
const DefaultPlayerColor = "#030f63"

// Colors is the fixed palette assigned to players by join order, cycling.
var Colors = []string{"#030f63", "#d6040e", "#d86b04", "#0eb7ae", "#104704", "#c6c617"}

// Territory is one node of a session's board. Name, Continent and Neighbours
// are fixed at session creation; Owner, Color and Army change during play.
type Territory struct {
	Name       string   `json:"name"`
	Continent  string   `json:"continent"`
	Owner      string   `json:"owner"`
	Color      string   `json:"color"`
	Army       int      `json:"army"`
	Neighbours []string `json:"neighbours"`
}

// Player is one participant in a session. Areas always holds exactly the
// names of the territories whose Owner equals the player's ID; every
// ownership change goes through Session helpers that keep both sides in sync.
type Player struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country"` // cosmetic pick, unrelated to territories
	Color   string   `json:"color"`
	Army    int      `json:"army"`
	Reserve int      `json:"reserve"`
	Areas   []string `json:"areas"`
	Bonus   int      `json:"bonus"`
	Alive   bool     `json:"alive"`
}

// NewPlayer creates a player with pre-start defaults.
func NewPlayer(id, name, country string) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Country: country,
		Color:   DefaultPlayerColor,
		Army:    20,
		Reserve: 20,
		Areas:   []string{},
		Bonus:   2,
		Alive:   true,
	}
}

// addArea appends a territory name to the player's area list.
func (p *Player) addArea(name string) {
	p.Areas = append(p.Areas, name)
}

// removeArea deletes a territory name from the player's area list, preserving
// order. Returns false if the name was not present.
func (p *Player) removeArea(name string) bool {
	for i, a := range p.Areas {
		if a == name {
			p.Areas = append(p.Areas[:i], p.Areas[i+1:]...)
			return true
		}
	}
	return false
}
