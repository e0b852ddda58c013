package incident

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrIntegrity matches any *IntegrityError.
	ErrIntegrity = errors.New("integrity violation")
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("incident not found")
)

// ValidationError reports a missing field or a value outside its bounds.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IntegrityError reports a violated uniqueness constraint. The attempted
// write has been rolled back.
type IntegrityError struct {
	Constraint string
	Err        error
}

func (e *IntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("constraint %s violated: %v", e.Constraint, e.Err)
	}
	return fmt.Sprintf("constraint %s violated", e.Constraint)
}

// Is reports whether target is ErrIntegrity.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// Unwrap returns the driver error.
func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned by lookups of a single incident by id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("incident %d not found", e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsValidation returns true if err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsIntegrity returns true if err is or wraps an *IntegrityError.
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrIntegrity)
}

// IsNotFound returns true if err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
