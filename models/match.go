package models

import "time"

type MatchState string

const (
	// MatchStateCompleted is the only state a reported match is stored with.
	MatchStateCompleted MatchState = "completed"
)

// Match is a recorded outcome between two distinct players. It is never
// updated after creation; only bulk deletion removes it.
type Match struct {
	ID          int        `json:"id"`
	PlayerOneID int        `json:"player_one_id"`
	PlayerTwoID int        `json:"player_two_id"`
	WinnerID    int        `json:"winner_id"`
	State       MatchState `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoserID returns the side of the match that is not the winner.
func (m Match) LoserID() int {
	if m.WinnerID == m.PlayerOneID {
		return m.PlayerTwoID
	}
	return m.PlayerOneID
}
