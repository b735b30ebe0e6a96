package game

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pixil98/go-conquest/internal/board"
)

// Session is one running game, isolated from all others. Every command
// touching a session must run under its lock so commands are atomic with
// respect to each other; different sessions proceed fully in parallel.
//
// Unless noted otherwise, methods assume the caller holds the lock.
type Session struct {
	mu sync.Mutex

	ID              string
	MaxPlayers      int
	Stage           Stage
	Turn            int
	CurrentPlayerID string
	Started         bool
	CreatedAt       time.Time

	Territories []*Territory

	players map[string]*Player
	order   []string // join order, which is also turn order
}

func newSession(id string, maxPlayers int) *Session {
	territories := make([]*Territory, 0, board.Size)
	for _, n := range board.Template() {
		territories = append(territories, &Territory{
			Name:       n.Name,
			Continent:  n.Continent,
			Owner:      NoOwner,
			Color:      UnownedColor,
			Army:       0,
			Neighbours: n.Neighbours,
		})
	}

	return &Session{
		ID:          id,
		MaxPlayers:  maxPlayers,
		Stage:       StageWaiting,
		Turn:        1,
		Started:     false,
		CreatedAt:   time.Now(),
		Territories: territories,
		players:     map[string]*Player{},
	}
}

// Lock acquires the session's mutation lock. Callers must pair it with
// Unlock around the whole command, snapshot included.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's mutation lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Player returns the player with the given id, or nil.
func (s *Session) Player(id string) *Player {
	return s.players[id]
}

// PlayerCount returns the number of joined players.
func (s *Session) PlayerCount() int {
	return len(s.order)
}

// PlayerIDs returns the player ids in join order.
func (s *Session) PlayerIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Territory returns the territory with the given name, or nil.
func (s *Session) Territory(name string) *Territory {
	for _, t := range s.Territories {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (s *Session) addPlayer(p *Player) {
	s.players[p.ID] = p
	s.order = append(s.order, p.ID)
}

// removePlayer deletes a player. If the departing player holds the turn of a
// started session, the turn advances first so CurrentPlayerID never points at
// a departed player.
func (s *Session) removePlayer(id string) {
	if _, ok := s.players[id]; !ok {
		return
	}

	if s.Started && s.CurrentPlayerID == id && len(s.order) > 1 {
		s.advanceTurn()
	}

	delete(s.players, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// start transitions the session from waiting to fortify: colors by join
// order, starting armies, random round-robin territory distribution.
func (s *Session) start() error {
	if s.Started {
		return ErrAlreadyStarted
	}
	if len(s.order) < 2 {
		return ErrNotEnoughPlayers
	}

	s.Started = true
	s.Stage = StageFortify

	for i, id := range s.order {
		p := s.players[id]
		p.Color = Colors[i%len(Colors)]
		p.Army = 20
		p.Reserve = 20
		p.Bonus = 2
		p.Alive = true
	}

	s.CurrentPlayerID = s.order[0]

	names := make([]string, len(s.Territories))
	for i, t := range s.Territories {
		names[i] = t.Name
	}
	rand.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	for i, name := range names {
		p := s.players[s.order[i%len(s.order)]]
		t := s.Territory(name)
		t.Owner = p.ID
		t.Color = p.Color
		t.Army = rand.IntN(3) + 1
		p.addArea(name)
	}

	return nil
}

// PlaceArmy moves armies from the acting player's reserve onto one of their
// territories. A caller that is not the current player, overdraws its
// reserve, or names a territory it does not own is a no-op; the return value
// reports whether state changed.
func (s *Session) PlaceArmy(playerID, territory string, amount int) bool {
	if playerID != s.CurrentPlayerID {
		return false
	}

	p := s.players[playerID]
	if p == nil || amount <= 0 || amount > p.Reserve {
		return false
	}

	t := s.Territory(territory)
	if t == nil || t.Owner != playerID {
		return false
	}

	p.Reserve -= amount
	t.Army += amount
	return true
}

// EndTurn rotates the current player to the next join-order entry, wrapping
// to the first. Calls by a non-current player are no-ops.
func (s *Session) EndTurn(playerID string) bool {
	if playerID != s.CurrentPlayerID || len(s.order) == 0 {
		return false
	}

	s.advanceTurn()
	return true
}

func (s *Session) advanceTurn() {
	for i, id := range s.order {
		if id == s.CurrentPlayerID {
			s.CurrentPlayerID = s.order[(i+1)%len(s.order)]
			return
		}
	}
	// Current player no longer in the order; fall back to the first entry.
	s.CurrentPlayerID = s.order[0]
}

// TransferTerritory reassigns a territory to a new owner, keeping the
// owner/areas pairing consistent on both players.
func (s *Session) TransferTerritory(t *Territory, toID string) {
	if prev := s.players[t.Owner]; prev != nil {
		prev.removeArea(t.Name)
	}

	next := s.players[toID]
	t.Owner = toID
	if next != nil {
		t.Color = next.Color
		next.addArea(t.Name)
	}
}

// Snapshot is the full, client-facing copy of a session's state. Events
// always carry a snapshot so clients can resynchronize from any single event.
type Snapshot struct {
	ID              string             `json:"id"`
	Players         map[string]*Player `json:"players"`
	Countries       []*Territory       `json:"countries"`
	Stage           Stage              `json:"stage"`
	Turn            int                `json:"turn"`
	CurrentPlayerID string             `json:"current_player_id"`
	MaxPlayers      int                `json:"max_players"`
	CreatedAt       time.Time          `json:"created_at"`
	Started         bool               `json:"started"`
}

// Snapshot deep-copies the session for delivery outside the lock.
func (s *Session) Snapshot() *Snapshot {
	players := make(map[string]*Player, len(s.players))
	for id, p := range s.players {
		cp := *p
		cp.Areas = append([]string{}, p.Areas...)
		players[id] = &cp
	}

	countries := make([]*Territory, len(s.Territories))
	for i, t := range s.Territories {
		cp := *t
		countries[i] = &cp
	}

	return &Snapshot{
		ID:              s.ID,
		Players:         players,
		Countries:       countries,
		Stage:           s.Stage,
		Turn:            s.Turn,
		CurrentPlayerID: s.CurrentPlayerID,
		MaxPlayers:      s.MaxPlayers,
		CreatedAt:       s.CreatedAt,
		Started:         s.Started,
	}
}

// SetStage moves the session to a new stage, enforcing the transition table.
func (s *Session) SetStage(to Stage) error {
	if !s.Stage.CanTransition(to) {
		return fmt.Errorf("illegal stage transition %s -> %s", s.Stage, to)
	}
	s.Stage = to
	return nil
}
