package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/opsdesk/incidents/core/incident"
	"gopkg.in/yaml.v3"
)

// TablePresenter renders output in table format.
type TablePresenter struct {
	w         io.Writer
	color     *Colorizer
	termWidth int
}

// NewTablePresenter creates a new table presenter.
func NewTablePresenter(opts PresenterOptions) *TablePresenter {
	termWidth := opts.TerminalWidth
	if termWidth == 0 {
		termWidth = TerminalWidth(opts.Writer)
	}
	return &TablePresenter{
		w:         opts.Writer,
		color:     NewColorizer(opts.UseColors),
		termWidth: termWidth,
	}
}

// incidentColumnWidths holds the calculated widths for the incidents table.
type incidentColumnWidths struct {
	id          int
	date        int
	kind        int
	status      int
	active      int
	responsible int
	total       int
}

// calculateIncidentColumnWidths computes column widths based on terminal width.
// Fixed columns: ID(6), Date(19), Type(10), Status(12), Active(6)
// Flexible column: Responsible (absorbs remaining space)
func (p *TablePresenter) calculateIncidentColumnWidths() incidentColumnWidths {
	const (
		idWidth      = 6
		dateWidth    = 19
		typeWidth    = 10
		statusWidth  = 12
		activeWidth  = 6
		minRespWidth = 12
		maxRespWidth = incident.MaxResponsibleLength
		spacing      = 10 // two spaces between columns
	)

	fixedWidth := idWidth + dateWidth + typeWidth + statusWidth + activeWidth + spacing
	respWidth := p.termWidth - fixedWidth
	if respWidth < minRespWidth {
		respWidth = minRespWidth
	}
	if respWidth > maxRespWidth {
		respWidth = maxRespWidth
	}

	return incidentColumnWidths{
		id:          idWidth,
		date:        dateWidth,
		kind:        typeWidth,
		status:      statusWidth,
		active:      activeWidth,
		responsible: respWidth,
		total:       fixedWidth + respWidth,
	}
}

// RenderIncidents renders the admin projection of a list of incidents.
func (p *TablePresenter) RenderIncidents(incidents []*IncidentView) error {
	tw := &tableWriter{w: p.w}

	if len(incidents) == 0 {
		tw.println("No incidents found.")
		return tw.Err()
	}

	cols := p.calculateIncidentColumnWidths()

	tw.printf("%s\n", p.color.Header(fmt.Sprintf("Incidents (%d)", len(incidents))))
	tw.println(HorizontalLine(cols.total))
	tw.printf("%s  %s  %s  %s  %s  %s\n",
		PadRight("ID", cols.id),
		PadRight("DATE", cols.date),
		PadRight("TYPE", cols.kind),
		PadRight("STATUS", cols.status),
		PadRight("ACTIVE", cols.active),
		"RESPONSIBLE")

	for _, inc := range incidents {
		tw.printf("%s  %s  %s  %s  %s  %s\n",
			PadRight(fmt.Sprintf("%d", inc.ID), cols.id),
			PadRight(FormatTime(inc.Date), cols.date),
			p.color.Type(incident.Type(inc.Type), PadRight(inc.Type, cols.kind)),
			p.color.Status(incident.Status(inc.Status), PadRight(inc.Status, cols.status)),
			p.color.Active(inc.IsActive, PadRight(FormatBool(inc.IsActive), cols.active)),
			TruncateString(inc.Responsible, cols.responsible))
	}

	return tw.Err()
}

// RenderIncident renders a single incident with all of its fields.
func (p *TablePresenter) RenderIncident(inc *IncidentView) error {
	tw := &tableWriter{w: p.w}
	kind := incident.Type(inc.Type)
	status := incident.Status(inc.Status)

	tw.printf("%s\n", p.color.Header(fmt.Sprintf("Incident #%d", inc.ID)))
	tw.println(HorizontalLine(p.termWidth))
	tw.field("Date", FormatTime(inc.Date))
	tw.field("Type", p.color.Type(kind, inc.Type)+" "+p.color.Dim("("+kind.DisplayName()+")"))
	tw.field("Status", p.color.Status(status, inc.Status)+" "+p.color.Dim("("+status.DisplayName()+")"))
	tw.field("Responsible", inc.Responsible)
	tw.field("Active", p.color.Active(inc.IsActive, FormatBool(inc.IsActive)))
	if inc.CreatedAt != nil {
		tw.field("Created", FormatTime(*inc.CreatedAt))
	}
	if inc.UpdatedAt != nil {
		tw.field("Updated", FormatTime(*inc.UpdatedAt))
	}

	if inc.Description != "" {
		tw.println()
		tw.printf("%s\n", p.color.Header("Description"))
		for _, line := range strings.Split(inc.Description, "\n") {
			tw.printf("  %s\n", line)
		}
	}

	return tw.Err()
}

// RenderAffected renders the number of rows changed by a bulk operation.
func (p *TablePresenter) RenderAffected(result *AffectedView) error {
	tw := &tableWriter{w: p.w}
	tw.printf("%s: %s\n", result.Action, p.color.Number(FormatNumber(result.Count)))
	return tw.Err()
}

// RenderStatus renders the tool status.
func (p *TablePresenter) RenderStatus(status *StatusView) error {
	tw := &tableWriter{w: p.w}

	tw.printf("%s\n\n", p.color.Header("incidents "+status.Version))

	db := status.Database
	tw.section(p.color.Header("Database"))
	tw.field("Driver", db.Driver)
	tw.field("Location", p.color.Path(db.Location))
	tw.field("Size", db.SizeHuman)
	tw.field("Incidents", p.color.Number(FormatNumber(db.IncidentCount)))
	tw.field("Active", p.color.Number(FormatNumber(db.ActiveCount)))
	for _, sc := range db.StatusCounts {
		label := incident.Status(sc.Status).DisplayName()
		tw.printf("    %-12s %s\n", label, FormatNumber(sc.Count))
	}
	if !db.OldestIncident.IsZero() {
		tw.field("Oldest", FormatTime(db.OldestIncident))
		tw.field("Latest", FormatTime(db.NewestIncident))
	}
	tw.println()

	tw.section(p.color.Header("Config"))
	tw.field("Location", p.color.Path(status.Config.Location))
	tw.field("SQL logging", status.Config.SQLLogLevel)
	tw.field("Timezone", status.Config.Timezone)

	return tw.Err()
}

// RenderConfig renders the configuration as YAML.
func (p *TablePresenter) RenderConfig(config *ConfigView) error {
	tw := &tableWriter{w: p.w}

	tw.printf("%s\n", p.color.Header("Configuration"))
	tw.printf("Location: %s\n", p.color.Path(config.Location))
	tw.println(HorizontalLine(p.termWidth))
	if err := tw.Err(); err != nil {
		return err
	}

	data, err := yaml.Marshal(config.Values)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	tw.printf("%s", data)

	return tw.Err()
}

// RenderError renders an error message.
func (p *TablePresenter) RenderError(err error) error {
	tw := &tableWriter{w: p.w}
	tw.printf("%s %s\n", p.color.Error("Error:"), err.Error())
	return tw.Err()
}

// RenderMessage renders a simple message.
func (p *TablePresenter) RenderMessage(message string) error {
	tw := &tableWriter{w: p.w}
	tw.println(message)
	return tw.Err()
}

// Ensure TablePresenter implements Presenter
var _ Presenter = (*TablePresenter)(nil)
