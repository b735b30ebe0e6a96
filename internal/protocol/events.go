package protocol

import (
	"encoding/json"

	"github.com/pixil98/go-conquest/internal/combat"
	"github.com/pixil98/go-conquest/internal/game"
)

// Outbound events always carry a full session snapshot where a client could
// need to resynchronize; there are no diffs.

type gameEvent struct {
	Type string         `json:"type"`
	Game *game.Snapshot `json:"game"`
}

// GameJoined is unicast to a player that just joined.
func GameJoined(snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(gameEvent{Type: "game_joined", Game: snap})
}

// PlayerJoined is broadcast to everyone except the joiner.
func PlayerJoined(p *game.Player) ([]byte, error) {
	return json.Marshal(struct {
		Type   string       `json:"type"`
		Player *game.Player `json:"player"`
	}{Type: "player_joined", Player: p})
}

// GameStarted is broadcast to all session members.
func GameStarted(snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(gameEvent{Type: "game_started", Game: snap})
}

// ArmyPlaced is broadcast to all session members after a placement.
func ArmyPlaced(snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(gameEvent{Type: "army_placed", Game: snap})
}

// AttackResult carries the combat outcome plus the post-battle snapshot.
func AttackResult(result combat.Outcome, snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(struct {
		Type   string         `json:"type"`
		Result combat.Outcome `json:"result"`
		Game   *game.Snapshot `json:"game"`
	}{Type: "attack_result", Result: result, Game: snap})
}

// TurnEnded is broadcast to all session members after a turn rotation.
func TurnEnded(snap *game.Snapshot) ([]byte, error) {
	return json.Marshal(gameEvent{Type: "turn_ended", Game: snap})
}

// PlayerLeft announces a disconnect to the remaining clients.
func PlayerLeft(playerID string) ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"type"`
		PlayerID string `json:"player_id"`
	}{Type: "player_left", PlayerID: playerID})
}

// ErrorEvent is unicast when an admission attempt fails.
func ErrorEvent(message string) ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{Type: "error", Message: message})
}
