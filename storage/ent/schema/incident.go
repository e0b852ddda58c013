package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/opsdesk/incidents/core/incident"
)

// IncidentTable is the table incidents are stored in.
const IncidentTable = "incidents"

// Incident holds the schema definition for the Incident entity.
type Incident struct {
	ent.Schema
}

// Annotations of the Incident.
func (Incident) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Table(IncidentTable),
	}
}

// Mixin of the Incident.
func (Incident) Mixin() []ent.Mixin {
	return []ent.Mixin{
		TimeMixin{},
	}
}

// Fields of the Incident.
func (Incident) Fields() []ent.Field {
	return []ent.Field{
		field.Time("date").
			Default(time.Now),
		field.Enum("incident_type").
			Values(typeValues()...).
			Default(string(incident.TypeOther)),
		field.Text("description").
			NotEmpty().
			SchemaType(map[string]string{
				dialect.SQLite: "text",
			}),
		field.Enum("status").
			Values(statusValues()...).
			Default(string(incident.StatusOpen)),
		field.String("responsible").
			NotEmpty().
			MaxRuneLen(incident.MaxResponsibleLength),
		field.Bool("is_active").
			Default(true),
	}
}

// Indexes of the Incident.
func (Incident) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("date").
			StorageKey("idx_incidents_date"),
		index.Fields("incident_type").
			StorageKey("idx_incidents_incident_type"),
		index.Fields("status").
			StorageKey("idx_incidents_status"),
		index.Fields("responsible").
			StorageKey("idx_incidents_responsible"),
		index.Fields("date", "incident_type", "responsible").
			Unique().
			StorageKey(incident.UniqueConstraint),
	}
}

func typeValues() []string {
	types := incident.Types()
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return values
}

func statusValues() []string {
	statuses := incident.Statuses()
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}
