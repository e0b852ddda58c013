package tui

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIncident(id int64, responsible string) *incident.Incident {
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &incident.Incident{
		ID:          id,
		Date:        date,
		Type:        incident.TypeOperation,
		Description: "Pump pressure dropped\nValve replaced",
		Status:      incident.StatusOpen,
		Responsible: responsible,
		IsActive:    true,
		CreatedAt:   date.Add(time.Minute),
		UpdatedAt:   date.Add(2 * time.Minute),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" jsonl ", FormatJSONL, false},
		{"csv", FormatCSV, false},
		{"", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewIncidentView(t *testing.T) {
	inc := sampleIncident(7, "Juan Pérez")
	loc := time.FixedZone("UTC-3", -3*60*60)

	view := NewIncidentView(inc, loc)
	assert.Equal(t, int64(7), view.ID)
	assert.Equal(t, "OPERATION", view.Type)
	assert.Equal(t, "OPEN", view.Status)
	assert.Equal(t, 9, view.Date.Hour())
	assert.True(t, view.Date.Equal(inc.Date))
	assert.Empty(t, view.Description)
	assert.Nil(t, view.CreatedAt)

	detail := NewIncidentDetailView(inc, loc)
	assert.Equal(t, inc.Description, detail.Description)
	require.NotNil(t, detail.CreatedAt)
	require.NotNil(t, detail.UpdatedAt)
	assert.True(t, detail.CreatedAt.Equal(inc.CreatedAt))
	assert.Equal(t, loc, detail.UpdatedAt.Location())
}

func TestTablePresenter_RenderIncidents(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(PresenterOptions{Writer: &buf, TerminalWidth: 100})

	views := NewIncidentViews([]*incident.Incident{
		sampleIncident(2, "Ana Soto"),
		sampleIncident(1, "Juan Pérez"),
	}, time.UTC)
	require.NoError(t, p.RenderIncidents(views))

	out := buf.String()
	assert.Contains(t, out, "Incidents (2)")
	assert.Contains(t, out, "RESPONSIBLE")
	assert.Contains(t, out, "2026-03-01 12:00:00")
	assert.Contains(t, out, "Juan Pérez")
	assert.NotContains(t, out, "\033[", "colors disabled")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "2     "))
}

func TestTablePresenter_RenderIncidents_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(PresenterOptions{Writer: &buf, TerminalWidth: 80})

	require.NoError(t, p.RenderIncidents(nil))
	assert.Equal(t, "No incidents found.\n", buf.String())
}

func TestTablePresenter_RenderIncident(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(PresenterOptions{Writer: &buf, TerminalWidth: 80})

	require.NoError(t, p.RenderIncident(NewIncidentDetailView(sampleIncident(3, "Ana Soto"), time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "Incident #3")
	assert.Contains(t, out, "OPERATION (Operation)")
	assert.Contains(t, out, "OPEN (Open)")
	assert.Contains(t, out, "Created        2026-03-01 12:01:00")
	assert.Contains(t, out, "  Pump pressure dropped\n  Valve replaced\n")
}

func TestTablePresenter_Colors(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(PresenterOptions{Writer: &buf, UseColors: true, TerminalWidth: 80})

	require.NoError(t, p.RenderIncidents([]*IncidentView{NewIncidentView(sampleIncident(1, "Ana Soto"), time.UTC)}))
	assert.Contains(t, buf.String(), Yellow+"OPEN")
	assert.Contains(t, buf.String(), Cyan+"OPERATION")
}

func TestTablePresenter_RenderAffectedAndStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(PresenterOptions{Writer: &buf, TerminalWidth: 80})

	require.NoError(t, p.RenderAffected(&AffectedView{Action: "Deleted", Count: 1200}))
	assert.Equal(t, "Deleted: 1,200\n", buf.String())

	buf.Reset()
	require.NoError(t, p.RenderStatus(&StatusView{
		Version: "1.0.0",
		Database: DatabaseView{
			Driver:        "sqlite",
			Location:      "/tmp/incidents.db",
			SizeHuman:     "4.0 KB",
			IncidentCount: 2,
			ActiveCount:   1,
			StatusCounts:  []StatusCountView{{Status: "IN_PROGRESS", Count: 2}},
		},
		Config: ConfigStatusView{Location: "/tmp/config.yaml", SQLLogLevel: "silent", Timezone: "utc"},
	}))

	out := buf.String()
	assert.Contains(t, out, "incidents 1.0.0")
	assert.Contains(t, out, "/tmp/incidents.db")
	assert.Contains(t, out, "In progress")
	assert.NotContains(t, out, "Oldest")
}

func TestTablePresenter_RenderConfig(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(PresenterOptions{Writer: &buf, TerminalWidth: 60})

	require.NoError(t, p.RenderConfig(&ConfigView{
		Location: "/tmp/config.yaml",
		Values: map[string]interface{}{
			"storage": map[string]interface{}{"driver": "sqlite"},
		},
	}))
	assert.Contains(t, buf.String(), "storage:\n    driver: sqlite\n")
}

func TestJSONPresenter_RenderIncidents(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONPresenter(PresenterOptions{Writer: &buf})

	require.NoError(t, p.RenderIncidents(nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, p.RenderIncidents(NewIncidentViews([]*incident.Incident{sampleIncident(4, "Ana Soto")}, time.UTC)))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, float64(4), decoded[0]["id"])
	assert.Equal(t, "OPERATION", decoded[0]["type"])
	assert.Equal(t, true, decoded[0]["is_active"])
	assert.NotContains(t, decoded[0], "description")
}

func TestJSONLPresenter_RenderIncidents(t *testing.T) {
	var buf bytes.Buffer
	p := NewJSONLPresenter(PresenterOptions{Writer: &buf})

	views := NewIncidentViews([]*incident.Incident{
		sampleIncident(2, "Ana Soto"),
		sampleIncident(1, "Juan Pérez"),
	}, time.UTC)
	require.NoError(t, p.RenderIncidents(views))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first IncidentView
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "Ana Soto", first.Responsible)
}

func TestCSVPresenter_RenderIncident(t *testing.T) {
	var buf bytes.Buffer
	p := NewCSVPresenter(PresenterOptions{Writer: &buf})

	require.NoError(t, p.RenderIncident(NewIncidentDetailView(sampleIncident(5, "Ana Soto"), time.UTC)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, incidentCSVHeader, records[0])
	assert.Equal(t, "5", records[1][0])
	assert.Equal(t, "2026-03-01T12:00:00Z", records[1][1])
	assert.Equal(t, "true", records[1][5])
	assert.Equal(t, "Pump pressure dropped\nValve replaced", records[1][6])
}

func TestCSVPresenter_RenderConfig_SortedKeys(t *testing.T) {
	var buf bytes.Buffer
	p := NewCSVPresenter(PresenterOptions{Writer: &buf})

	require.NoError(t, p.RenderConfig(&ConfigView{Values: map[string]interface{}{
		"walkthrough": map[string]interface{}{"list_limit": 5},
		"display":     map[string]interface{}{"timezone": "utc", "colors": "auto"},
	}}))

	assert.Equal(t,
		"key,value\ndisplay.colors,auto\ndisplay.timezone,utc\nwalkthrough.list_limit,5\n",
		buf.String())
}

func TestPresenters_RenderError(t *testing.T) {
	err := errors.New("incident 9 not found")

	for _, format := range []Format{FormatTable, FormatJSON, FormatJSONL, FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			p := NewPresenter(format, PresenterOptions{Writer: &buf, TerminalWidth: 80})
			require.NoError(t, p.RenderError(err))
			assert.Contains(t, buf.String(), "incident 9 not found")
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "-", FormatTime(time.Time{}))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
	assert.Equal(t, "yes", FormatBool(true))
	assert.Equal(t, "Pér...", TruncateString("Pérez González", 6))
	assert.Equal(t, "Pérez ", PadRight("Pérez", 6))
}
