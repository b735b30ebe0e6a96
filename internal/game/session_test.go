package game

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-conquest/internal/board"
)

// startedSession builds a three-player started session for turn tests.
func startedSession(t *testing.T) *Session {
	t.Helper()

	s := newSession("test1234", 6)
	for _, pid := range []string{"p1", "p2", "p3"} {
		s.addPlayer(NewPlayer(pid, strings.ToUpper(pid), "x"))
	}
	if err := s.start(); err != nil {
		t.Fatalf("starting session: %v", err)
	}
	return s
}

// ownedBy returns some territory owned by the given player.
func ownedBy(t *testing.T, s *Session, playerID string) *Territory {
	t.Helper()

	for _, territory := range s.Territories {
		if territory.Owner == playerID {
			return territory
		}
	}
	t.Fatalf("no territory owned by %s", playerID)
	return nil
}

func TestPlaceArmy(t *testing.T) {
	tests := map[string]struct {
		playerID  string
		territory func(s *Session) string
		amount    int
		expChange bool
	}{
		"current player places on own territory": {
			playerID:  "p1",
			territory: func(s *Session) string { return ownedBy(t, s, "p1").Name },
			amount:    5,
			expChange: true,
		},
		"non-current player is a no-op": {
			playerID:  "p2",
			territory: func(s *Session) string { return ownedBy(t, s, "p2").Name },
			amount:    5,
			expChange: false,
		},
		"overdrawn reserve": {
			playerID:  "p1",
			territory: func(s *Session) string { return ownedBy(t, s, "p1").Name },
			amount:    21,
			expChange: false,
		},
		"zero amount": {
			playerID:  "p1",
			territory: func(s *Session) string { return ownedBy(t, s, "p1").Name },
			amount:    0,
			expChange: false,
		},
		"unowned territory": {
			playerID:  "p1",
			territory: func(s *Session) string { return ownedBy(t, s, "p2").Name },
			amount:    5,
			expChange: false,
		},
		"unknown territory": {
			playerID:  "p1",
			territory: func(s *Session) string { return "atlantis" },
			amount:    5,
			expChange: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := startedSession(t)
			target := tt.territory(s)

			var prevArmy, prevReserve int
			if territory := s.Territory(target); territory != nil {
				prevArmy = territory.Army
			}
			if p := s.Player(tt.playerID); p != nil {
				prevReserve = p.Reserve
			}

			changed := s.PlaceArmy(tt.playerID, target, tt.amount)
			testutil.AssertEqual(t, "changed", changed, tt.expChange)

			if tt.expChange {
				testutil.AssertEqual(t, "army", s.Territory(target).Army, prevArmy+tt.amount)
				testutil.AssertEqual(t, "reserve", s.Player(tt.playerID).Reserve, prevReserve-tt.amount)
			} else {
				if territory := s.Territory(target); territory != nil {
					testutil.AssertEqual(t, "army unchanged", territory.Army, prevArmy)
				}
				if p := s.Player(tt.playerID); p != nil {
					testutil.AssertEqual(t, "reserve unchanged", p.Reserve, prevReserve)
				}
			}
		})
	}
}

func TestEndTurn(t *testing.T) {
	s := startedSession(t)

	// Non-current player call changes nothing.
	testutil.AssertEqual(t, "no-op", s.EndTurn("p2"), false)
	testutil.AssertEqual(t, "current unchanged", s.CurrentPlayerID, "p1")

	// Rotation follows join order and wraps.
	for _, want := range []string{"p2", "p3", "p1"} {
		if !s.EndTurn(s.CurrentPlayerID) {
			t.Fatal("expected end turn to succeed for current player")
		}
		testutil.AssertEqual(t, "current", s.CurrentPlayerID, want)
	}

	// The counter never advances; only the current player rotates.
	testutil.AssertEqual(t, "turn counter", s.Turn, 1)
}

func TestTransferTerritory(t *testing.T) {
	s := startedSession(t)

	territory := ownedBy(t, s, "p2")
	s.TransferTerritory(territory, "p1")

	testutil.AssertEqual(t, "owner", territory.Owner, "p1")
	testutil.AssertEqual(t, "color", territory.Color, s.Player("p1").Color)

	for _, area := range s.Player("p2").Areas {
		if area == territory.Name {
			t.Error("expected territory removed from old owner's areas")
		}
	}

	found := false
	for _, area := range s.Player("p1").Areas {
		if area == territory.Name {
			found = true
		}
	}
	if !found {
		t.Error("expected territory in new owner's areas")
	}

	// Territory count is conserved: ownership moved, nothing vanished.
	total := 0
	for _, pid := range s.PlayerIDs() {
		total += len(s.Player(pid).Areas)
	}
	testutil.AssertEqual(t, "total areas", total, board.Size)
}

func TestStageTransitions(t *testing.T) {
	tests := map[string]struct {
		from  Stage
		to    Stage
		expOk bool
	}{
		"waiting to fortify": {StageWaiting, StageFortify, true},
		"fortify to battle":  {StageFortify, StageBattle, true},
		"battle to fortify":  {StageBattle, StageFortify, true},
		"battle to ai turn":  {StageBattle, StageAITurn, true},
		"ai turn to battle":  {StageAITurn, StageBattle, true},
		"waiting to battle":  {StageWaiting, StageBattle, false},
		"fortify to waiting": {StageFortify, StageWaiting, false},
		"fortify to ai turn": {StageFortify, StageAITurn, false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := newSession("test1234", 6)
			s.Stage = tt.from

			err := s.SetStage(tt.to)
			if tt.expOk {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				testutil.AssertEqual(t, "stage", s.Stage, tt.to)
			} else {
				if err == nil {
					t.Fatal("expected transition to be rejected")
				}
				testutil.AssertEqual(t, "stage unchanged", s.Stage, tt.from)
			}
		})
	}
}

func TestStageText(t *testing.T) {
	for stage, want := range map[Stage]string{
		StageWaiting: "waiting",
		StageFortify: "fortify",
		StageBattle:  "battle",
		StageAITurn:  "ai_turn",
	} {
		testutil.AssertEqual(t, "string", stage.String(), want)

		text, err := stage.MarshalText()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "text", string(text), want)

		var parsed Stage
		if err := parsed.UnmarshalText(text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "roundtrip", parsed, stage)
	}

	var parsed Stage
	if err := parsed.UnmarshalText([]byte("intermission")); err == nil {
		t.Error("expected unknown stage to be rejected")
	}
}

func TestSnapshot(t *testing.T) {
	s := startedSession(t)

	snap := s.Snapshot()
	testutil.AssertEqual(t, "id", snap.ID, s.ID)
	testutil.AssertEqual(t, "players", len(snap.Players), 3)
	testutil.AssertEqual(t, "countries", len(snap.Countries), board.Size)

	// Snapshots are deep copies; mutating one must not touch the session.
	snap.Players["p1"].Reserve = 0
	snap.Players["p1"].Areas[0] = "mutated"
	snap.Countries[0].Army = 99

	testutil.AssertEqual(t, "session reserve", s.Player("p1").Reserve, 20)
	if s.Player("p1").Areas[0] == "mutated" {
		t.Error("snapshot shares area slice with session")
	}
	if s.Territories[0].Army == 99 {
		t.Error("snapshot shares territory with session")
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := startedSession(t)

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "stage", decoded["stage"], "fortify")
	testutil.AssertEqual(t, "current player", decoded["current_player_id"], "p1")
	testutil.AssertEqual(t, "started", decoded["started"], true)

	countries, ok := decoded["countries"].([]any)
	if !ok {
		t.Fatal("expected countries array")
	}
	testutil.AssertEqual(t, "countries", len(countries), board.Size)
}
