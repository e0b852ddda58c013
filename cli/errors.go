package cli

import (
	"errors"
	"fmt"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/core/walkthrough"
)

// Exit codes.
const (
	ExitSuccess    = 0 // Success
	ExitGeneral    = 1 // General/unknown error
	ExitConfig     = 2 // Invalid YAML, invalid or missing config values
	ExitDatabase   = 3 // Database cannot be opened, migrated or queried
	ExitNotFound   = 4 // No incident with the requested id
	ExitIntegrity  = 5 // Composite business key already taken
	ExitValidation = 6 // Invalid field value or flag
)

// ExitCoder is an interface for errors that carry a custom exit code and message.
type ExitCoder interface {
	ExitCode() int
	Message() string
}

// cliError is a typed error that carries an exit code.
type cliError struct {
	code    int
	message string
	err     error
}

// NewCLIError creates a new CLIError with the given code and message.
func NewCLIError(code int, message string) *cliError {
	return &cliError{
		code:    code,
		message: message,
	}
}

// WrapError creates a new CLIError wrapping an underlying error.
func WrapError(code int, message string, err error) *cliError {
	return &cliError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Error implements the error interface.
func (e *cliError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

// ExitCode returns the exit code for this error.
func (e *cliError) ExitCode() int {
	return e.code
}

// Message returns the formatted message for display.
func (e *cliError) Message() string {
	return fmt.Sprintf("Error: %s\n", e.Error())
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *cliError) Unwrap() error {
	return e.err
}

// ErrConfig creates a configuration error.
func ErrConfig(message string, err error) *cliError {
	return WrapError(ExitConfig, message, err)
}

// ErrDatabase creates a database error.
func ErrDatabase(message string, err error) *cliError {
	return WrapError(ExitDatabase, message, err)
}

// ErrValidation creates an invalid input error.
func ErrValidation(message string, err error) *cliError {
	if err == nil {
		return NewCLIError(ExitValidation, message)
	}
	return WrapError(ExitValidation, message, err)
}

// ErrNotFound creates an error for a missing incident.
func ErrNotFound(id int64) *cliError {
	return WrapError(ExitNotFound, "lookup failed", &incident.NotFoundError{ID: id})
}

// storeError maps an error returned by the store to its exit code.
func storeError(message string, err error) *cliError {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case incident.IsValidation(err):
		return WrapError(ExitValidation, message, err)
	case incident.IsNotFound(err):
		return WrapError(ExitNotFound, message, err)
	case incident.IsIntegrity(err):
		return WrapError(ExitIntegrity, message, err)
	case errors.Is(err, walkthrough.ErrMismatch):
		return WrapError(ExitGeneral, message, err)
	default:
		return WrapError(ExitDatabase, message, err)
	}
}
