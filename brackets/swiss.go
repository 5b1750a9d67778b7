package brackets

import "github.com/Dosada05/swiss-tournament/models"

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

func (g *SwissGenerator) GeneratePairings(standings []models.Standing) ([]models.Pairing, error) {
	return GeneratePairings(standings)
}

// GeneratePairings pairs standings entries strictly by adjacency: positions
// (0,1), (2,3), ... Players with equal or nearly equal records end up together
// only because the standings are already sorted. Earlier pairings are not
// consulted, so rematches are possible.
func GeneratePairings(standings []models.Standing) ([]models.Pairing, error) {
	if len(standings)%2 != 0 {
		return nil, &OddPlayerCountError{Count: len(standings)}
	}

	pairings := make([]models.Pairing, 0, len(standings)/2)
	for i := 0; i+1 < len(standings); i += 2 {
		first, second := standings[i], standings[i+1]
		pairings = append(pairings, models.Pairing{
			Player1ID:   first.PlayerID,
			Player1Name: first.Name,
			Player2ID:   second.PlayerID,
			Player2Name: second.Name,
		})
	}
	return pairings, nil
}
