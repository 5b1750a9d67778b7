package repositories

import (
	"strings"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func normalizePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPlayerNameRequired
	}
	return name, nil
}

// validateMatch mirrors the table constraints so every backend rejects the
// same records before touching storage.
func validateMatch(match *models.Match) error {
	if match.PlayerOneID == match.PlayerTwoID {
		return ErrMatchSamePlayer
	}
	if match.WinnerID != match.PlayerOneID && match.WinnerID != match.PlayerTwoID {
		return ErrMatchWinnerInvalid
	}
	if match.State == "" {
		match.State = models.MatchStateCompleted
	}
	return nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
