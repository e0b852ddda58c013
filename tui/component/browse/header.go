package browse

import (
	"fmt"

	"github.com/opsdesk/incidents/core/incident"
)

type headerState struct {
	status     incident.Status
	activeOnly bool
	total      int
	page       int
	pages      int
}

type headerModel struct {
	title string
}

func newHeaderModel() headerModel {
	return headerModel{title: "incidents browse"}
}

func (h headerModel) view(width int, s headerState) string {
	status := "all"
	if s.status != "" {
		status = string(s.status)
	}

	active := "all records"
	if s.activeOnly {
		active = "active only"
	}

	content := fmt.Sprintf(" %s | status: %s | %s | %d total | page %d/%d",
		h.title, status, active, s.total, s.page, s.pages)
	return headerStyle.Width(width).Render(content)
}
