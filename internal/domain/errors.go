// Package domain holds the error taxonomy shared by the data-access packages.
//
// Callers distinguish outcomes with errors.Is; anything not in this list is a
// storage failure wrapped from the driver.
package domain

import "errors"

var (
	// ErrNotFound means a referenced id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAccessDenied means the caller is authenticated but not authorized
	// for the specific resource. Distinct from ErrNotFound.
	ErrAccessDenied = errors.New("access denied")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken. The Users.email UNIQUE constraint is authoritative.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrDuplicateReview is returned when a client reviews the same
	// property twice. Enforced by a UNIQUE constraint on Reviews.
	ErrDuplicateReview = errors.New("property already reviewed by this client")

	// ErrInvalidCredentials covers every login failure mode uniformly:
	// unknown email, inactive account, and wrong password all look the same
	// to the caller so the boundary cannot leak which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrValidation means a caller-supplied field failed a type or range
	// check before reaching storage.
	ErrValidation = errors.New("validation failed")
)
