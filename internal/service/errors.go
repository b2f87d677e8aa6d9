package service

import (
	"errors"

	"github.com/straye-as/crm-portal/internal/repository"
)

// Common service errors
var (
	// ErrNotFound is returned when a record does not exist or is outside the caller's tenant
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a write would break a uniqueness rule
	ErrConflict = errors.New("resource conflict")

	// ErrNoNextStage is returned when a deal has no successor stage
	ErrNoNextStage = errors.New("deal has no next stage")

	// ErrInvalidTransition is returned for a status change the lifecycle does not allow
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAlreadyConverted is returned when converting a lead that already has an account
	ErrAlreadyConverted = errors.New("lead already converted")

	// ErrInvalidOwner is returned when a contact transfer names zero or two owners
	ErrInvalidOwner = errors.New("contact must belong to exactly one company")

	// ErrHistoryUnavailable is returned when stage history is requested without a local database
	ErrHistoryUnavailable = errors.New("stage history requires the local database")
)

// notFound maps the repository sentinel onto the service one
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
