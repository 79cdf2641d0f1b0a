package domain

import (
	"github.com/allisson/modelgate/internal/errors"
)

// Record-specific error definitions.
var (
	// ErrRecordNotFound indicates no record of the resource has the requested ID.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "record not found")

	// ErrUnknownResource indicates the resource name is not in the registry.
	ErrUnknownResource = errors.Wrap(errors.ErrInvalidModel, "unknown resource")

	// ErrEmptyUpdate indicates an update body without any field.
	ErrEmptyUpdate = errors.Wrap(errors.ErrInvalidInput, "update must set at least one field")
)
