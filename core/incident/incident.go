package incident

import (
	"fmt"
	"time"
)

// Field names accepted by Store.Save to restrict the persisted columns.
const (
	FieldDate        = "date"
	FieldType        = "incident_type"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldResponsible = "responsible"
	FieldIsActive    = "is_active"
	FieldUpdatedAt   = "updated_at"
)

// MutableFields lists the fields a caller may change after creation.
// created_at is deliberately absent.
var MutableFields = []string{
	FieldDate,
	FieldType,
	FieldDescription,
	FieldStatus,
	FieldResponsible,
	FieldIsActive,
}

// Incident is one operational event record.
type Incident struct {
	// ID is the auto-incremented identity key.
	ID int64 `json:"id"`
	// Date is when the incident happened (UTC).
	Date time.Time `json:"date"`
	// Type classifies the incident.
	Type Type `json:"incident_type"`
	// Description is the free-form account of what happened.
	Description string `json:"description"`
	// Status is the current lifecycle state.
	Status Status `json:"status"`
	// Responsible is the person assigned to the incident.
	Responsible string `json:"responsible"`
	// IsActive is false when the record has been soft-deleted.
	IsActive bool `json:"is_active"`
	// CreatedAt is stamped once by the store on insert.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is stamped by the store on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders the incident as "#<id> <TYPE> - <STATUS> (<responsible>)".
func (i *Incident) String() string {
	return fmt.Sprintf("#%d %s - %s (%s)", i.ID, i.Type, i.Status, i.Responsible)
}

// Clone returns a copy of the incident.
func (i *Incident) Clone() *Incident {
	c := *i
	return &c
}

// Input carries the fields supplied when creating an incident. Zero values
// select the defaults: Date now, Type OTHER, Status OPEN, IsActive true.
type Input struct {
	Date        time.Time
	Type        Type
	Description string
	Status      Status
	Responsible string
	IsActive    *bool
}

// Changes describes a partial update. Only non-nil fields are applied.
type Changes struct {
	Date        *time.Time
	Type        *Type
	Description *string
	Status      *Status
	Responsible *string
	IsActive    *bool
}

// NewChanges creates an empty change set.
func NewChanges() *Changes {
	return &Changes{}
}

// SetDate sets the Date change.
func (c *Changes) SetDate(t time.Time) *Changes {
	c.Date = &t
	return c
}

// SetType sets the Type change.
func (c *Changes) SetType(t Type) *Changes {
	c.Type = &t
	return c
}

// SetDescription sets the Description change.
func (c *Changes) SetDescription(d string) *Changes {
	c.Description = &d
	return c
}

// SetStatus sets the Status change.
func (c *Changes) SetStatus(s Status) *Changes {
	c.Status = &s
	return c
}

// SetResponsible sets the Responsible change.
func (c *Changes) SetResponsible(r string) *Changes {
	c.Responsible = &r
	return c
}

// SetActive sets the IsActive change.
func (c *Changes) SetActive(active bool) *Changes {
	c.IsActive = &active
	return c
}

// IsEmpty returns true if no field is set.
func (c *Changes) IsEmpty() bool {
	return len(c.Fields()) == 0
}

// Fields returns the names of the fields set in this change set.
func (c *Changes) Fields() []string {
	var fields []string
	if c.Date != nil {
		fields = append(fields, FieldDate)
	}
	if c.Type != nil {
		fields = append(fields, FieldType)
	}
	if c.Description != nil {
		fields = append(fields, FieldDescription)
	}
	if c.Status != nil {
		fields = append(fields, FieldStatus)
	}
	if c.Responsible != nil {
		fields = append(fields, FieldResponsible)
	}
	if c.IsActive != nil {
		fields = append(fields, FieldIsActive)
	}
	return fields
}

// ApplyTo copies the set fields onto inc. Timestamps are left to the store.
func (c *Changes) ApplyTo(inc *Incident) {
	if c.Date != nil {
		inc.Date = *c.Date
	}
	if c.Type != nil {
		inc.Type = *c.Type
	}
	if c.Description != nil {
		inc.Description = *c.Description
	}
	if c.Status != nil {
		inc.Status = *c.Status
	}
	if c.Responsible != nil {
		inc.Responsible = *c.Responsible
	}
	if c.IsActive != nil {
		inc.IsActive = *c.IsActive
	}
}
