package usecase

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrOwnerNotEligible rejects ownership transfers to users that do not
	// exist or are still pending approval.
	ErrOwnerNotEligible = errors.New("owner must be an approved user")
)
