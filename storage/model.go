package storage

import (
	"slices"
	"time"

	"github.com/opsdesk/incidents/core/incident"
	entschema "github.com/opsdesk/incidents/storage/ent/schema"
)

const (
	incidentsTable  = entschema.IncidentTable
	columnID        = "id"
	columnCreatedAt = "created_at"
)

// incidentColumns is the select list, in incidentRecord order.
var incidentColumns = []string{
	columnID,
	incident.FieldDate,
	incident.FieldType,
	incident.FieldDescription,
	incident.FieldStatus,
	incident.FieldResponsible,
	incident.FieldIsActive,
	columnCreatedAt,
	incident.FieldUpdatedAt,
}

// incidentRecord is the persisted row shape. Timestamps are stamped by the
// store, never by the database.
type incidentRecord struct {
	ID           int64     `sql:"id"`
	Date         time.Time `sql:"date"`
	IncidentType string    `sql:"incident_type"`
	Description  string    `sql:"description"`
	Status       string    `sql:"status"`
	Responsible  string    `sql:"responsible"`
	IsActive     bool      `sql:"is_active"`
	CreatedAt    time.Time `sql:"created_at"`
	UpdatedAt    time.Time `sql:"updated_at"`
}

func (r *incidentRecord) toIncident() *incident.Incident {
	return &incident.Incident{
		ID:          r.ID,
		Date:        incident.NormalizeTime(r.Date),
		Type:        incident.Type(r.IncidentType),
		Description: r.Description,
		Status:      incident.Status(r.Status),
		Responsible: r.Responsible,
		IsActive:    r.IsActive,
		CreatedAt:   incident.NormalizeTime(r.CreatedAt),
		UpdatedAt:   incident.NormalizeTime(r.UpdatedAt),
	}
}

// scanTargets returns pointers to the fields of r in incidentColumns order.
func (r *incidentRecord) scanTargets() []any {
	return []any{
		&r.ID,
		&r.Date,
		&r.IncidentType,
		&r.Description,
		&r.Status,
		&r.Responsible,
		&r.IsActive,
		&r.CreatedAt,
		&r.UpdatedAt,
	}
}

// assignment is one column = value pair of an INSERT or UPDATE.
type assignment struct {
	column string
	value  any
}

// insertValues lists every column of inc except the generated id.
func insertValues(inc *incident.Incident) []assignment {
	return []assignment{
		{incident.FieldDate, inc.Date},
		{incident.FieldType, string(inc.Type)},
		{incident.FieldDescription, inc.Description},
		{incident.FieldStatus, string(inc.Status)},
		{incident.FieldResponsible, inc.Responsible},
		{incident.FieldIsActive, inc.IsActive},
		{columnCreatedAt, inc.CreatedAt},
		{incident.FieldUpdatedAt, inc.UpdatedAt},
	}
}

// columnValues maps the given fields of inc to their column values. An
// empty fields list selects every mutable field. Order follows
// incident.MutableFields so generated statements are stable.
func columnValues(inc *incident.Incident, fields []string) []assignment {
	if len(fields) == 0 {
		fields = incident.MutableFields
	}
	values := make([]assignment, 0, len(fields)+1)
	for _, f := range incident.MutableFields {
		if !slices.Contains(fields, f) {
			continue
		}
		switch f {
		case incident.FieldDate:
			values = append(values, assignment{f, inc.Date})
		case incident.FieldType:
			values = append(values, assignment{f, string(inc.Type)})
		case incident.FieldDescription:
			values = append(values, assignment{f, inc.Description})
		case incident.FieldStatus:
			values = append(values, assignment{f, string(inc.Status)})
		case incident.FieldResponsible:
			values = append(values, assignment{f, inc.Responsible})
		case incident.FieldIsActive:
			values = append(values, assignment{f, inc.IsActive})
		}
	}
	return values
}

// changeValues maps a partial update to column values.
func changeValues(c *incident.Changes) []assignment {
	values := make([]assignment, 0, 7)
	if c.Date != nil {
		values = append(values, assignment{incident.FieldDate, *c.Date})
	}
	if c.Type != nil {
		values = append(values, assignment{incident.FieldType, string(*c.Type)})
	}
	if c.Description != nil {
		values = append(values, assignment{incident.FieldDescription, *c.Description})
	}
	if c.Status != nil {
		values = append(values, assignment{incident.FieldStatus, string(*c.Status)})
	}
	if c.Responsible != nil {
		values = append(values, assignment{incident.FieldResponsible, *c.Responsible})
	}
	if c.IsActive != nil {
		values = append(values, assignment{incident.FieldIsActive, *c.IsActive})
	}
	return values
}
