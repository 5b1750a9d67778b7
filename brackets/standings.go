package brackets

import (
	"sort"

	"github.com/Dosada05/swiss-tournament/models"
)

// ComputeStandings aggregates recorded matches into one standing per player,
// ordered by wins descending and then by player id ascending. Players without
// matches are included with zero wins and zero matches played.
func ComputeStandings(players []models.Player, matches []models.Match) ([]models.Standing, error) {
	standings := make([]models.Standing, 0, len(players))
	index := make(map[int]int, len(players))
	for _, p := range players {
		if _, seen := index[p.ID]; seen {
			continue
		}
		index[p.ID] = len(standings)
		standings = append(standings, models.Standing{PlayerID: p.ID, Name: p.Name})
	}

	for _, m := range matches {
		one, ok := index[m.PlayerOneID]
		if !ok {
			return nil, &InconsistentMatchReferenceError{MatchID: m.ID, Field: "player_one_id", PlayerID: m.PlayerOneID}
		}
		two, ok := index[m.PlayerTwoID]
		if !ok {
			return nil, &InconsistentMatchReferenceError{MatchID: m.ID, Field: "player_two_id", PlayerID: m.PlayerTwoID}
		}
		if m.WinnerID != m.PlayerOneID && m.WinnerID != m.PlayerTwoID {
			return nil, &InconsistentMatchReferenceError{MatchID: m.ID, Field: "winner_id", PlayerID: m.WinnerID}
		}

		standings[one].MatchesPlayed++
		standings[two].MatchesPlayed++
		standings[index[m.WinnerID]].Wins++
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PlayerID < standings[j].PlayerID
	})

	return standings, nil
}
