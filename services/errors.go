package services

import "errors"

// Shared sentinel errors mapped to HTTP statuses in the handlers layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrUserNotFound   = errors.New("user not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrGameNotFound   = errors.New("game not found")

	ErrAuthInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists             = errors.New("user already exists")

	ErrPlayerIDTaken = errors.New("player with this id already exists")
	ErrTeamIDTaken   = errors.New("team with this id already exists")

	ErrPlayerAlreadyRostered = errors.New("player is already in this team")

	// ErrGameAccessForbidden covers reads, updates and deletes of a game
	// by anyone other than its owner.
	ErrGameAccessForbidden = errors.New("not authorized to access this game")

	ErrLogoStorageUnavailable = errors.New("logo storage is not configured")
)
