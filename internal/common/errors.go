// Package common defines shared constants and sentinel errors. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrIncompletePair = errors.New("token pair must have both access and refresh tokens")
	ErrNotLoggedIn    = errors.New("not logged in")

	ErrMissingCredentials = errors.New("email and password are required")

	// Validation errors.
	ErrInvalidPage = errors.New("invalid page request")
	ErrInvalidIP   = errors.New("invalid ip address")
	ErrEmptyScanID = errors.New("scan id is required")
)
