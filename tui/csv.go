package tui

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"
)

// CSVPresenter renders output as CSV.
type CSVPresenter struct {
	w      io.Writer
	writer *csv.Writer
}

// NewCSVPresenter creates a new CSV presenter.
func NewCSVPresenter(opts PresenterOptions) *CSVPresenter {
	return &CSVPresenter{
		w:      opts.Writer,
		writer: csv.NewWriter(opts.Writer),
	}
}

var incidentCSVHeader = []string{
	"id", "date", "type", "status", "responsible", "is_active",
	"description", "created_at", "updated_at",
}

func formatCSVTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func incidentCSVRecord(inc *IncidentView) []string {
	return []string{
		strconv.FormatInt(inc.ID, 10),
		formatCSVTime(&inc.Date),
		inc.Type,
		inc.Status,
		inc.Responsible,
		strconv.FormatBool(inc.IsActive),
		inc.Description,
		formatCSVTime(inc.CreatedAt),
		formatCSVTime(inc.UpdatedAt),
	}
}

// RenderIncidents renders a list of incidents as CSV.
func (p *CSVPresenter) RenderIncidents(incidents []*IncidentView) error {
	p.writer.Write(incidentCSVHeader)
	for _, inc := range incidents {
		p.writer.Write(incidentCSVRecord(inc))
	}

	p.writer.Flush()
	return p.writer.Error()
}

// RenderIncident renders a single incident as CSV.
func (p *CSVPresenter) RenderIncident(incident *IncidentView) error {
	return p.RenderIncidents([]*IncidentView{incident})
}

// RenderAffected renders a bulk operation result as CSV.
func (p *CSVPresenter) RenderAffected(result *AffectedView) error {
	p.writer.Write([]string{"action", "count"})
	p.writer.Write([]string{result.Action, strconv.Itoa(result.Count)})
	p.writer.Flush()
	return p.writer.Error()
}

// RenderStatus renders the tool status as CSV.
func (p *CSVPresenter) RenderStatus(status *StatusView) error {
	// Write header
	p.writer.Write([]string{"type", "name", "value"})

	p.writer.Write([]string{"version", "incidents", status.Version})

	// Database
	db := status.Database
	p.writer.Write([]string{"database", "driver", db.Driver})
	p.writer.Write([]string{"database", "location", db.Location})
	p.writer.Write([]string{"database", "size_bytes", strconv.FormatInt(db.SizeBytes, 10)})
	p.writer.Write([]string{"database", "incidents", strconv.Itoa(db.IncidentCount)})
	p.writer.Write([]string{"database", "active", strconv.Itoa(db.ActiveCount)})
	for _, sc := range db.StatusCounts {
		p.writer.Write([]string{"status", sc.Status, strconv.Itoa(sc.Count)})
	}

	// Config
	p.writer.Write([]string{"config", "location", status.Config.Location})
	p.writer.Write([]string{"config", "sql_log_level", status.Config.SQLLogLevel})
	p.writer.Write([]string{"config", "timezone", status.Config.Timezone})

	p.writer.Flush()
	return p.writer.Error()
}

// RenderConfig renders the configuration as CSV.
func (p *CSVPresenter) RenderConfig(config *ConfigView) error {
	p.writer.Write([]string{"key", "value"})
	p.renderConfigMap(config.Values, "")
	p.writer.Flush()
	return p.writer.Error()
}

func (p *CSVPresenter) renderConfigMap(m map[string]interface{}, prefix string) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := m[key].(type) {
		case map[string]interface{}:
			p.renderConfigMap(v, fullKey)
		default:
			p.writer.Write([]string{fullKey, fmt.Sprintf("%v", v)})
		}
	}
}

// RenderError renders an error message as CSV.
func (p *CSVPresenter) RenderError(err error) error {
	p.writer.Write([]string{"error"})
	p.writer.Write([]string{err.Error()})
	p.writer.Flush()
	return p.writer.Error()
}

// RenderMessage renders a simple message as CSV.
func (p *CSVPresenter) RenderMessage(message string) error {
	p.writer.Write([]string{"message"})
	p.writer.Write([]string{message})
	p.writer.Flush()
	return p.writer.Error()
}

// Ensure CSVPresenter implements Presenter
var _ Presenter = (*CSVPresenter)(nil)
