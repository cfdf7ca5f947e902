package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a unique field (email, license number) is already taken.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned when the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for OAuth state or code problems.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when the caller's role may not perform the action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is returned when a ride request is asked to move to a status
	// that is not reachable from its current one (e.g. completing a cancelled request).
	ErrInvalidTransition = errors.New("ride request cannot move to the requested status")

	// ErrNotPayable is returned when payment is recorded for a ride request that is
	// not completed or has already been paid.
	ErrNotPayable = errors.New("ride request is not in a state that can be paid for")

	// ErrFeatureDisabled is returned by optional integrations that are not configured.
	ErrFeatureDisabled = errors.New("feature is not configured")
)
