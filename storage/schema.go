package storage

import (
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/opsdesk/incidents/storage/ent/schema"
)

// incidentTable builds the migration table from the ent schema of the
// Incident entity. Mixin columns come first, matching the order ent's code
// generator uses.
func incidentTable() (*schema.Table, error) {
	def := entschema.Incident{}

	name := entschema.IncidentTable
	for _, a := range def.Annotations() {
		if ann, ok := a.(*entsql.Annotation); ok && ann.Table != "" {
			name = ann.Table
		}
	}

	table := schema.NewTable(name).AddPrimary(&schema.Column{
		Name:      "id",
		Type:      field.TypeInt,
		Increment: true,
	})

	var fields []ent.Field
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, def.Fields()...)

	for _, f := range fields {
		col, err := columnFromDescriptor(f.Descriptor())
		if err != nil {
			return nil, err
		}
		table.AddColumn(col)
	}

	for _, idx := range def.Indexes() {
		desc := idx.Descriptor()
		for _, c := range desc.Fields {
			if !table.HasColumn(c) {
				return nil, fmt.Errorf("index on %s references unknown column %q", name, c)
			}
		}
		key := desc.StorageKey
		if key == "" {
			key = name + "_" + strings.Join(desc.Fields, "_")
		}
		table.AddIndex(key, desc.Unique, desc.Fields)
	}

	return table, nil
}

func columnFromDescriptor(d *field.Descriptor) (*schema.Column, error) {
	if d.Err != nil {
		return nil, fmt.Errorf("invalid field %q: %w", d.Name, d.Err)
	}

	col := &schema.Column{
		Name:       d.Name,
		Type:       d.Info.Type,
		Nullable:   d.Optional,
		SchemaType: d.SchemaType,
	}
	if d.StorageKey != "" {
		col.Name = d.StorageKey
	}
	if d.Size > 0 {
		col.Size = int64(d.Size)
	}
	for _, e := range d.Enums {
		col.Enums = append(col.Enums, e.V)
	}

	// Function defaults such as time.Now are applied by the store, not the
	// database.
	switch v := d.Default.(type) {
	case string, bool, int, int64, float64:
		col.Default = v
	}

	return col, nil
}
