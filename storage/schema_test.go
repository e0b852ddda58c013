package storage

import (
	"testing"

	"entgo.io/ent/schema/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/incidents/core/incident"
)

func TestIncidentTable(t *testing.T) {
	table, err := incidentTable()
	require.NoError(t, err)

	assert.Equal(t, incidentsTable, table.Name)
	require.Len(t, table.PrimaryKey, 1)
	assert.Equal(t, columnID, table.PrimaryKey[0].Name)
	assert.True(t, table.PrimaryKey[0].Increment)

	var columns []string
	for _, c := range table.Columns {
		columns = append(columns, c.Name)
	}
	assert.ElementsMatch(t, incidentColumns, columns)

	responsible, ok := table.Column(incident.FieldResponsible)
	require.True(t, ok)
	assert.Equal(t, int64(incident.MaxResponsibleLength), responsible.Size)
	assert.False(t, responsible.Nullable)

	status, ok := table.Column(incident.FieldStatus)
	require.True(t, ok)
	assert.Equal(t, field.TypeEnum, status.Type)
	assert.Equal(t, string(incident.StatusOpen), status.Default)
	assert.Len(t, status.Enums, len(incident.Statuses()))

	active, ok := table.Column(incident.FieldIsActive)
	require.True(t, ok)
	assert.Equal(t, true, active.Default)

	date, ok := table.Column(incident.FieldDate)
	require.True(t, ok)
	assert.Equal(t, field.TypeTime, date.Type)
	assert.Nil(t, date.Default)

	indexes := make(map[string][]string)
	unique := make(map[string]bool)
	for _, idx := range table.Indexes {
		for _, c := range idx.Columns {
			indexes[idx.Name] = append(indexes[idx.Name], c.Name)
		}
		unique[idx.Name] = idx.Unique
	}
	assert.Equal(t, []string{incident.FieldDate, incident.FieldType, incident.FieldResponsible}, indexes[incident.UniqueConstraint])
	assert.True(t, unique[incident.UniqueConstraint])
	assert.Equal(t, []string{incident.FieldStatus}, indexes["idx_incidents_status"])
	assert.False(t, unique["idx_incidents_status"])
	assert.Len(t, indexes, 5)
}
