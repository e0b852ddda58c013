package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunWithSpinner(t *testing.T) {
	errQuery := errors.New("query failed")

	tests := []struct {
		name    string
		fn      func() (*DatabaseView, error)
		wantNil bool
		wantErr error
	}{
		{
			name: "returns value from fn",
			fn: func() (*DatabaseView, error) {
				return &DatabaseView{Driver: "sqlite", IncidentCount: 3}, nil
			},
		},
		{
			name:    "propagates error from fn",
			fn:      func() (*DatabaseView, error) { return nil, errQuery },
			wantNil: true,
			wantErr: errQuery,
		},
		{
			name: "returns value even when fn also returns error",
			fn: func() (*DatabaseView, error) {
				return &DatabaseView{Driver: "sqlite"}, errQuery
			},
			wantErr: errQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got, err := RunWithSpinner("Collecting statistics...", tt.fn, WithWriter(&buf))

			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, "sqlite", got.Driver)
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, buf.String(), "non-TTY writer should produce no spinner output")
		})
	}
}
