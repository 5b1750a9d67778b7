package services

import "errors"

var (
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrInvalidPlayerID    = errors.New("player id must be a positive integer")
	ErrSelfMatch          = errors.New("a player cannot play against themselves")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayersHaveMatches = errors.New("players cannot be deleted while matches reference them")
	ErrExportDisabled     = errors.New("standings export is not configured")

	ErrInvalidCredentials   = errors.New("invalid admin password")
	ErrAuthenticationFailed = errors.New("authentication failed")
)
