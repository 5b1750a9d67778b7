package models

// Standing is a derived, never persisted view of a player's record.
type Standing struct {
	PlayerID      int    `json:"id"`
	Name          string `json:"name"`
	Wins          int    `json:"wins"`
	MatchesPlayed int    `json:"matches"`
}

// Pairing assigns two players to play each other in the next round.
type Pairing struct {
	Player1ID   int    `json:"id1"`
	Player1Name string `json:"name1"`
	Player2ID   int    `json:"id2"`
	Player2Name string `json:"name2"`
}
