package brackets

import "github.com/Dosada05/swiss-tournament/models"

// PairingGenerator turns ordered standings into the next round's pairings.
type PairingGenerator interface {
	GeneratePairings(standings []models.Standing) ([]models.Pairing, error)

	GetName() string
}
