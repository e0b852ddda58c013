package incident

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"FAILURE", TypeFailure, false},
		{"security", TypeSecurity, false},
		{" Operation ", TypeOperation, false},
		{"OPERACION", TypeOperation, false},
		{"otro", TypeOther, false},
		{"outage", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseType(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"OPEN", StatusOpen, false},
		{"in_progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"In Progress", StatusInProgress, false},
		{"EN_PROCESO", StatusInProgress, false},
		{"cerrado", StatusClosed, false},
		{"pending", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseStatus(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatus_NextCyclesThroughAllValues(t *testing.T) {
	s := StatusOpen
	seen := map[Status]bool{}
	for range Statuses() {
		seen[s] = true
		s = s.Next()
	}
	assert.Equal(t, StatusOpen, s)
	assert.Len(t, seen, 4)
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Operation", TypeOperation.DisplayName())
	assert.Equal(t, "In progress", StatusInProgress.DisplayName())
	assert.Equal(t, "BOGUS", Type("BOGUS").DisplayName())
}

func TestIncident_String(t *testing.T) {
	inc := &Incident{ID: 7, Type: TypeOperation, Status: StatusOpen, Responsible: "Juan Pérez"}
	assert.Equal(t, "#7 OPERATION - OPEN (Juan Pérez)", inc.String())
}

func TestInput_BuildAppliesDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC)

	inc, err := Input{Description: "x", Responsible: "y"}.Build(now)
	require.NoError(t, err)

	assert.Equal(t, TypeOther, inc.Type)
	assert.Equal(t, StatusOpen, inc.Status)
	assert.True(t, inc.IsActive)
	assert.True(t, inc.Date.Equal(now.Truncate(time.Microsecond)))
	assert.Zero(t, inc.ID)
	assert.True(t, inc.CreatedAt.IsZero())
}

func TestInput_BuildKeepsExplicitValues(t *testing.T) {
	now := time.Now()
	date := time.Date(2025, 12, 24, 8, 30, 0, 0, time.FixedZone("CLT", -3*3600))
	inactive := false

	inc, err := Input{
		Date:        date,
		Type:        TypeSecurity,
		Description: "badge reader bypassed",
		Status:      StatusResolved,
		Responsible: "  Ana Soto ",
		IsActive:    &inactive,
	}.Build(now)
	require.NoError(t, err)

	assert.Equal(t, TypeSecurity, inc.Type)
	assert.Equal(t, StatusResolved, inc.Status)
	assert.Equal(t, "Ana Soto", inc.Responsible)
	assert.False(t, inc.IsActive)
	assert.Equal(t, time.UTC, inc.Date.Location())
	assert.True(t, inc.Date.Equal(date))
}

func TestInput_BuildValidation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"missing description", Input{Responsible: "y"}, FieldDescription},
		{"blank description", Input{Description: "   ", Responsible: "y"}, FieldDescription},
		{"missing responsible", Input{Description: "x"}, FieldResponsible},
		{"responsible too long", Input{Description: "x", Responsible: strings.Repeat("a", 121)}, FieldResponsible},
		{"bad type", Input{Description: "x", Responsible: "y", Type: "OUTAGE"}, FieldType},
		{"bad status", Input{Description: "x", Responsible: "y", Status: "PENDING"}, FieldStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.in.Build(now)
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestResponsibleLengthCountsCharacters(t *testing.T) {
	// 120 two-byte runes is within bounds.
	name := strings.Repeat("é", MaxResponsibleLength)
	_, err := Input{Description: "x", Responsible: name}.Build(time.Now())
	assert.NoError(t, err)
}

func TestNormalizeResponsible_NFC(t *testing.T) {
	decomposed := "Juan Pe\u0301rez"
	assert.Equal(t, "Juan P\u00e9rez", NormalizeResponsible(decomposed))
	assert.NotEqual(t, decomposed, NormalizeResponsible(decomposed))
}

func TestChanges(t *testing.T) {
	c := NewChanges()
	assert.True(t, c.IsEmpty())

	c.SetStatus(StatusInProgress).SetActive(false)
	assert.Equal(t, []string{FieldStatus, FieldIsActive}, c.Fields())

	inc := &Incident{Status: StatusOpen, IsActive: true}
	c.ApplyTo(inc)
	assert.Equal(t, StatusInProgress, inc.Status)
	assert.False(t, inc.IsActive)
}

func TestChanges_Validate(t *testing.T) {
	err := NewChanges().SetStatus("WAITING").Validate()
	assert.True(t, IsValidation(err))

	err = NewChanges().SetResponsible("").Validate()
	assert.True(t, IsValidation(err))

	c := NewChanges().SetResponsible(" Juan Pe\u0301rez ")
	require.NoError(t, c.Validate())
	assert.Equal(t, "Juan P\u00e9rez", *c.Responsible)
}

func TestErrorTaxonomy(t *testing.T) {
	var err error = &NotFoundError{ID: 3}
	assert.True(t, IsNotFound(err))
	assert.False(t, IsIntegrity(err))
	assert.EqualError(t, err, "incident 3 not found")

	driverErr := errors.New("UNIQUE constraint failed")
	err = &IntegrityError{Constraint: UniqueConstraint, Err: driverErr}
	assert.True(t, IsIntegrity(err))
	assert.ErrorIs(t, err, driverErr)
}
