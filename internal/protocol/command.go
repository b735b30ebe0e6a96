// Package protocol defines the wire contract: the closed set of inbound
// commands and the outbound events that carry session snapshots back to
// clients. Field names match what the browser client already speaks.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Command is one decoded inbound message. The set of variants is closed;
// anything else fails Decode and is dropped by the dispatcher.
type Command interface {
	isCommand()
}

// JoinGame admits the sender into the session it connected to.
type JoinGame struct {
	Name    string `json:"name"`
	Country string `json:"country"` // cosmetic home-country pick
}

// StartGame begins the session the sender connected to.
type StartGame struct{}

// PlaceArmy moves armies from the sender's reserve onto one territory.
type PlaceArmy struct {
	Country string `json:"country"`
	Amount  int    `json:"amount"`
}

// Attack resolves one battle between two territories.
type Attack struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EndTurn passes the turn to the next player.
type EndTurn struct{}

func (JoinGame) isCommand()  {}
func (StartGame) isCommand() {}
func (PlaceArmy) isCommand() {}
func (Attack) isCommand()    {}
func (EndTurn) isCommand()   {}

// Decode parses an inbound message into its command variant. Messages with a
// missing or unknown type, unparsable JSON, or missing required fields are
// rejected; the caller drops them without a reply.
func Decode(data []byte) (Command, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parsing command: %w", err)
	}

	switch env.Type {
	case "join_game":
		var c JoinGame
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing join_game: %w", err)
		}
		if c.Name == "" {
			c.Name = "Player"
		}
		if c.Country == "" {
			c.Country = "Unknown"
		}
		return c, nil

	case "start_game":
		return StartGame{}, nil

	case "place_army":
		var c PlaceArmy
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing place_army: %w", err)
		}
		if c.Country == "" {
			return nil, fmt.Errorf("place_army: country is required")
		}
		if c.Amount == 0 {
			c.Amount = 1
		}
		return c, nil

	case "attack":
		var c Attack
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing attack: %w", err)
		}
		if c.From == "" || c.To == "" {
			return nil, fmt.Errorf("attack: from and to are required")
		}
		return c, nil

	case "end_turn":
		return EndTurn{}, nil

	case "":
		return nil, fmt.Errorf("command type is required")

	default:
		return nil, fmt.Errorf("unknown command type %q", env.Type)
	}
}
