package service

import "errors"

var (
	// ErrNotAuthenticated marks operations attempted without a valid user
	// session, so callers can redirect to sign-in instead of showing a
	// generic failure.
	ErrNotAuthenticated = errors.New("user not authenticated")

	// ErrInvalidCredentials is returned for a failed sign-in attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned when registering an already-used email.
	ErrUserExists = errors.New("user already exists")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateRecipe is returned when a save attempt matches an
	// existing library recipe by title or by ingredient-set similarity.
	ErrDuplicateRecipe = errors.New("recipe already saved")
)
