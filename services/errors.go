package services

import "errors"

// Sentinel errors the HTTP layer maps onto response codes.
var (
	// ErrInvalidInput marks a validation failure. Wrap it with the
	// field detail: fmt.Errorf("%w: name is required", ErrInvalidInput).
	ErrInvalidInput = errors.New("invalid input")

	// ErrPortalDenied is returned for a bad, revoked or expired portal
	// token and for a wrong passcode. Deliberately indistinct so the
	// portal endpoint leaks nothing about which check failed.
	ErrPortalDenied = errors.New("portal access denied")
)
