package brackets

import (
	"errors"
	"fmt"
)

var (
	ErrOddPlayerCount             = errors.New("odd number of players cannot be paired")
	ErrInconsistentMatchReference = errors.New("match references a player that is not registered")
)

// OddPlayerCountError is returned when pairings are requested for a field
// with an odd number of players. No player is ever dropped or given a bye.
type OddPlayerCountError struct {
	Count int
}

func (e *OddPlayerCountError) Error() string {
	return fmt.Sprintf("%v (found %d players)", ErrOddPlayerCount, e.Count)
}

func (e *OddPlayerCountError) Unwrap() error {
	return ErrOddPlayerCount
}

// InconsistentMatchReferenceError means the persisted data is broken upstream:
// a match points at a player id missing from the player set, or its winner is
// not one of its two sides.
type InconsistentMatchReferenceError struct {
	MatchID  int
	Field    string
	PlayerID int
}

func (e *InconsistentMatchReferenceError) Error() string {
	return fmt.Sprintf("match %d: %s=%d: %v", e.MatchID, e.Field, e.PlayerID, ErrInconsistentMatchReference)
}

func (e *InconsistentMatchReferenceError) Unwrap() error {
	return ErrInconsistentMatchReference
}
