package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/tui"
)

const (
	idWidth     = 6
	dateWidth   = 16
	typeWidth   = 10
	statusWidth = 12
	activeWidth = 3
)

type listModel struct {
	incidents []*incident.Incident
	cursor    int
	loc       *time.Location
}

func newListModel(loc *time.Location) listModel {
	return listModel{loc: loc}
}

func (l *listModel) set(incidents []*incident.Incident) {
	l.incidents = incidents
	if l.cursor >= len(incidents) {
		l.cursor = len(incidents) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l listModel) selected() *incident.Incident {
	if l.cursor < 0 || l.cursor >= len(l.incidents) {
		return nil
	}
	return l.incidents[l.cursor]
}

func (l *listModel) moveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *listModel) moveDown() {
	if l.cursor < len(l.incidents)-1 {
		l.cursor++
	}
}

func (l listModel) view(width, height int) string {
	if len(l.incidents) == 0 {
		return columnHeaderStyle.Render("  no incidents match the current filter")
	}

	respWidth := width - (idWidth + dateWidth + typeWidth + statusWidth + activeWidth + 12)
	if respWidth < 10 {
		respWidth = 10
	}

	var b strings.Builder
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("  %s %s %s %s %s %s",
		tui.PadRight("ID", idWidth),
		tui.PadRight("DATE", dateWidth),
		tui.PadRight("TYPE", typeWidth),
		tui.PadRight("STATUS", statusWidth),
		tui.PadRight("ON", activeWidth),
		"RESPONSIBLE")))
	b.WriteByte('\n')

	rows := height - 1
	start := 0
	if l.cursor >= rows && rows > 0 {
		start = l.cursor - rows + 1
	}

	for i := start; i < len(l.incidents) && i-start < rows; i++ {
		b.WriteString(l.row(l.incidents[i], i == l.cursor, respWidth))
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

func (l listModel) row(inc *incident.Incident, selected bool, respWidth int) string {
	active := "●"
	if !inc.IsActive {
		active = "○"
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}

	kind := tui.PadRight(string(inc.Type), typeWidth)
	status := tui.PadRight(string(inc.Status), statusWidth)
	if !selected {
		kind = typeStyleFor(inc.Type).Render(kind)
		status = statusStyleFor(inc.Status).Render(status)
	}

	line := fmt.Sprintf("%s%s %s %s %s %s %s",
		cursor,
		tui.PadRight(fmt.Sprintf("%d", inc.ID), idWidth),
		tui.PadRight(inc.Date.In(l.loc).Format("2006-01-02 15:04"), dateWidth),
		kind,
		status,
		tui.PadRight(active, activeWidth),
		tui.TruncateString(inc.Responsible, respWidth))

	switch {
	case selected:
		return selectedRowStyle.Render(line)
	case !inc.IsActive:
		return inactiveRowStyle.Render(line)
	default:
		return line
	}
}
