package game

import "errors"

// Admission errors. These are normal, recoverable outcomes surfaced to the
// caller; none of them is fatal to the process.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionFull      = errors.New("session is full")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
)
