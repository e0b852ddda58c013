package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/core/walkthrough"
)

func TestStoreError_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &incident.ValidationError{Field: "description", Reason: "is required"}, ExitValidation},
		{"not_found", &incident.NotFoundError{ID: 3}, ExitNotFound},
		{"integrity", &incident.IntegrityError{Constraint: incident.UniqueConstraint}, ExitIntegrity},
		{"wrapped_integrity", fmt.Errorf("save: %w", &incident.IntegrityError{Constraint: "x"}), ExitIntegrity},
		{"mismatch", &walkthrough.MismatchError{ID: 1, Diff: "-a\n+b\n"}, ExitGeneral},
		{"driver", errors.New("database is locked"), ExitDatabase},
		{"already_mapped", ErrConfig("bad", nil), ExitConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError("operation failed", tt.err)
			assert.Equal(t, tt.code, err.ExitCode())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCLIError_Message(t *testing.T) {
	err := ErrNotFound(9)
	assert.Equal(t, ExitNotFound, err.ExitCode())
	assert.Equal(t, "Error: lookup failed: incident 9 not found\n", err.Message())
	assert.True(t, incident.IsNotFound(err))

	plain := ErrValidation("nothing to update", nil)
	assert.Equal(t, "nothing to update", plain.Error())
	assert.NoError(t, plain.Unwrap())
}
