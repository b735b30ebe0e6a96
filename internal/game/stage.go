package game

import "fmt"

// Stage is the coarse phase of a session's lifecycle. StageBattle and
// StageAITurn are declared reachable in the transition table but nothing
// drives a transition into them yet; they reserve the phase split between
// placing armies and attacking, and single-player-vs-computer turns.
type Stage int

const (
	StageWaiting Stage = iota
	StageFortify
	StageBattle
	StageAITurn
)

var stageNames = map[Stage]string{
	StageWaiting: "waiting",
	StageFortify: "fortify",
	StageBattle:  "battle",
	StageAITurn:  "ai_turn",
}

// transitions declares which stage changes are legal.
var transitions = map[Stage][]Stage{
	StageWaiting: {StageFortify},
	StageFortify: {StageBattle},
	StageBattle:  {StageFortify, StageAITurn},
	StageAITurn:  {StageBattle},
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

func (s Stage) MarshalText() ([]byte, error) {
	name, ok := stageNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown stage %d", int(s))
	}
	return []byte(name), nil
}

func (s *Stage) UnmarshalText(text []byte) error {
	for stage, name := range stageNames {
		if name == string(text) {
			*s = stage
			return nil
		}
	}
	return fmt.Errorf("unknown stage: %s", text)
}

// CanTransition reports whether moving from s to the given stage is declared
// in the transition table.
func (s Stage) CanTransition(to Stage) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}
