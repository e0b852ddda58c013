package incident

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxResponsibleLength bounds the responsible field, in characters.
	MaxResponsibleLength = 120

	// UniqueConstraint is the composite business key over
	// (date, incident_type, responsible).
	UniqueConstraint = "uq_incident_date_type_responsible"
)

// NormalizeResponsible trims surrounding space and converts the name to
// Unicode NFC so that visually identical names share one business key.
func NormalizeResponsible(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// NormalizeTime converts t to UTC with microsecond precision, the finest
// resolution every supported backend stores.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Build applies defaults to the input and returns the incident to insert.
// now supplies the default date. Timestamps are left for the store to stamp.
func (in Input) Build(now time.Time) (*Incident, error) {
	inc := &Incident{
		Date:        in.Date,
		Type:        in.Type,
		Description: in.Description,
		Status:      in.Status,
		Responsible: NormalizeResponsible(in.Responsible),
		IsActive:    true,
	}

	if inc.Date.IsZero() {
		inc.Date = now
	}
	inc.Date = NormalizeTime(inc.Date)

	if inc.Type == "" {
		inc.Type = TypeOther
	}
	if inc.Status == "" {
		inc.Status = StatusOpen
	}
	if in.IsActive != nil {
		inc.IsActive = *in.IsActive
	}

	if err := inc.Validate(); err != nil {
		return nil, err
	}
	return inc, nil
}

// Validate checks required fields, bounds and enumerations.
func (i *Incident) Validate() error {
	if i.Date.IsZero() {
		return &ValidationError{Field: FieldDate, Reason: "is required"}
	}
	if !i.Type.IsValid() {
		return &ValidationError{Field: FieldType, Reason: fmt.Sprintf("unknown value %q", i.Type)}
	}
	if err := validateDescription(i.Description); err != nil {
		return err
	}
	if !i.Status.IsValid() {
		return &ValidationError{Field: FieldStatus, Reason: fmt.Sprintf("unknown value %q", i.Status)}
	}
	return validateResponsible(i.Responsible)
}

// Validate checks every set field. It normalizes Date and Responsible in place.
func (c *Changes) Validate() error {
	if c.Date != nil {
		if c.Date.IsZero() {
			return &ValidationError{Field: FieldDate, Reason: "is required"}
		}
		d := NormalizeTime(*c.Date)
		c.Date = &d
	}
	if c.Type != nil && !c.Type.IsValid() {
		return &ValidationError{Field: FieldType, Reason: fmt.Sprintf("unknown value %q", *c.Type)}
	}
	if c.Description != nil {
		if err := validateDescription(*c.Description); err != nil {
			return err
		}
	}
	if c.Status != nil && !c.Status.IsValid() {
		return &ValidationError{Field: FieldStatus, Reason: fmt.Sprintf("unknown value %q", *c.Status)}
	}
	if c.Responsible != nil {
		r := NormalizeResponsible(*c.Responsible)
		if err := validateResponsible(r); err != nil {
			return err
		}
		c.Responsible = &r
	}
	return nil
}

func validateDescription(d string) error {
	if strings.TrimSpace(d) == "" {
		return &ValidationError{Field: FieldDescription, Reason: "is required"}
	}
	return nil
}

func validateResponsible(r string) error {
	if r == "" {
		return &ValidationError{Field: FieldResponsible, Reason: "is required"}
	}
	if n := utf8.RuneCountInString(r); n > MaxResponsibleLength {
		return &ValidationError{
			Field:  FieldResponsible,
			Reason: fmt.Sprintf("exceeds %d characters (got %d)", MaxResponsibleLength, n),
		}
	}
	return nil
}
