// Package combat resolves single attacks between two territories of a
// session. The ruleset is deliberately simple: one draw decides the battle at
// fixed 60/40 odds for the attacker, regardless of army counts, and no
// adjacency is required between the territories. Tightening either rule
// belongs here if it ever happens.
package combat

import (
	"math/rand/v2"

	"github.com/pixil98/go-conquest/internal/game"
)

// Outcome is the structured result of one attack. Failed preconditions are a
// normal outcome delivered to clients, not an error.
type Outcome struct {
	Success bool   `json:"success"`
	Winner  string `json:"winner,omitempty"` // "attacker" or "defender"
	Message string `json:"message"`
}

const (
	WinnerAttacker = "attacker"
	WinnerDefender = "defender"
)

// Resolver resolves attacks. The draw is injectable so tests can force
// either side to win.
type Resolver struct {
	roll func() float64
}

type ResolverOpt func(*Resolver)

// WithRoll replaces the random draw. The attacker wins when the draw
// exceeds 0.4.
func WithRoll(roll func() float64) ResolverOpt {
	return func(r *Resolver) {
		r.roll = roll
	}
}

func NewResolver(opts ...ResolverOpt) *Resolver {
	r := &Resolver{
		roll: rand.Float64,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve runs one attack from the territory named from against the one
// named to, mutating the session on success. The caller must hold the
// session lock.
func (r *Resolver) Resolve(s *game.Session, from, to string) Outcome {
	attacker := s.Territory(from)
	defender := s.Territory(to)

	if attacker == nil || defender == nil {
		return Outcome{Success: false, Message: "Invalid countries"}
	}

	if attacker.Army <= 1 {
		return Outcome{Success: false, Message: "Not enough armies to attack"}
	}

	// 60% chance for the attacker.
	if r.roll() > 0.4 {
		s.TransferTerritory(defender, attacker.Owner)

		pool := attacker.Army + defender.Army
		attacker.Army = max(1, pool/2)
		defender.Army = pool - attacker.Army

		return Outcome{
			Success: true,
			Winner:  WinnerAttacker,
			Message: narrate(conquestNarrative, from, to),
		}
	}

	attacker.Army = max(0, attacker.Army-2)
	defender.Army = max(1, defender.Army)

	return Outcome{
		Success: true,
		Winner:  WinnerDefender,
		Message: narrate(defenseNarrative, from, to),
	}
}
