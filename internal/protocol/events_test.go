package protocol

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-conquest/internal/combat"
	"github.com/pixil98/go-conquest/internal/game"
)

func decodeEvent(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return decoded
}

func testSnapshot(t *testing.T) *game.Snapshot {
	t.Helper()

	r := game.NewRegistry()
	id := r.Create(4)
	if err := r.Join(id, game.NewPlayer("p1", "Alice", "France")); err != nil {
		t.Fatalf("joining: %v", err)
	}

	sess := r.Get(id)
	sess.Lock()
	defer sess.Unlock()
	return sess.Snapshot()
}

func TestSnapshotEvents(t *testing.T) {
	snap := testSnapshot(t)

	tests := map[string]struct {
		encode  func() ([]byte, error)
		expType string
	}{
		"game joined":  {func() ([]byte, error) { return GameJoined(snap) }, "game_joined"},
		"game started": {func() ([]byte, error) { return GameStarted(snap) }, "game_started"},
		"army placed":  {func() ([]byte, error) { return ArmyPlaced(snap) }, "army_placed"},
		"turn ended":   {func() ([]byte, error) { return TurnEnded(snap) }, "turn_ended"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			data, err := tt.encode()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			decoded := decodeEvent(t, data)
			testutil.AssertEqual(t, "type", decoded["type"], tt.expType)

			gameField, ok := decoded["game"].(map[string]any)
			if !ok {
				t.Fatal("expected game snapshot in event")
			}
			testutil.AssertEqual(t, "game id", gameField["id"], snap.ID)

			// Full resend: the snapshot must carry the whole board.
			countries, ok := gameField["countries"].([]any)
			if !ok || len(countries) != 42 {
				t.Errorf("expected 42 countries in snapshot, got %d", len(countries))
			}
		})
	}
}

func TestPlayerJoined(t *testing.T) {
	data, err := PlayerJoined(game.NewPlayer("p1", "Alice", "France"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := decodeEvent(t, data)
	testutil.AssertEqual(t, "type", decoded["type"], "player_joined")

	player, ok := decoded["player"].(map[string]any)
	if !ok {
		t.Fatal("expected player payload")
	}
	testutil.AssertEqual(t, "id", player["id"], "p1")
	testutil.AssertEqual(t, "name", player["name"], "Alice")
}

func TestAttackResult(t *testing.T) {
	outcome := combat.Outcome{Success: true, Winner: combat.WinnerAttacker, Message: "ukraine conquered ural"}

	data, err := AttackResult(outcome, testSnapshot(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := decodeEvent(t, data)
	testutil.AssertEqual(t, "type", decoded["type"], "attack_result")

	result, ok := decoded["result"].(map[string]any)
	if !ok {
		t.Fatal("expected result payload")
	}
	testutil.AssertEqual(t, "success", result["success"], true)
	testutil.AssertEqual(t, "winner", result["winner"], "attacker")
	testutil.AssertEqual(t, "message", result["message"], "ukraine conquered ural")
}

func TestPlayerLeft(t *testing.T) {
	data, err := PlayerLeft("p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := decodeEvent(t, data)
	testutil.AssertEqual(t, "type", decoded["type"], "player_left")
	testutil.AssertEqual(t, "player id", decoded["player_id"], "p1")
}

func TestErrorEvent(t *testing.T) {
	data, err := ErrorEvent("Could not join game")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded := decodeEvent(t, data)
	testutil.AssertEqual(t, "type", decoded["type"], "error")
	testutil.AssertEqual(t, "message", decoded["message"], "Could not join game")
}
