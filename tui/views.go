package tui

import (
	"time"

	"github.com/opsdesk/incidents/core/incident"
)

// IncidentView represents an incident for display.
// Description and the audit timestamps are only set on detail views.
type IncidentView struct {
	ID          int64      `json:"id"`
	Date        time.Time  `json:"date"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Responsible string     `json:"responsible"`
	IsActive    bool       `json:"is_active"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewIncidentView builds the admin projection of inc with times in loc.
func NewIncidentView(inc *incident.Incident, loc *time.Location) *IncidentView {
	if loc == nil {
		loc = time.Local
	}
	return &IncidentView{
		ID:          inc.ID,
		Date:        inc.Date.In(loc),
		Type:        inc.Type.String(),
		Status:      inc.Status.String(),
		Responsible: inc.Responsible,
		IsActive:    inc.IsActive,
	}
}

// NewIncidentDetailView builds a view carrying every field of inc.
func NewIncidentDetailView(inc *incident.Incident, loc *time.Location) *IncidentView {
	view := NewIncidentView(inc, loc)
	created := inc.CreatedAt.In(view.Date.Location())
	updated := inc.UpdatedAt.In(view.Date.Location())
	view.Description = inc.Description
	view.CreatedAt = &created
	view.UpdatedAt = &updated
	return view
}

// NewIncidentViews builds list views for incidents.
func NewIncidentViews(incidents []*incident.Incident, loc *time.Location) []*IncidentView {
	views := make([]*IncidentView, 0, len(incidents))
	for _, inc := range incidents {
		views = append(views, NewIncidentView(inc, loc))
	}
	return views
}

// AffectedView reports the outcome of a bulk update or delete.
type AffectedView struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// StatusView represents the status output data.
type StatusView struct {
	Version  string           `json:"version"`
	Database DatabaseView     `json:"database"`
	Config   ConfigStatusView `json:"config"`
}

// DatabaseView represents database information.
type DatabaseView struct {
	Driver         string            `json:"driver"`
	Location       string            `json:"location"`
	SizeBytes      int64             `json:"size_bytes"`
	SizeHuman      string            `json:"size_human"`
	IncidentCount  int               `json:"incident_count"`
	ActiveCount    int               `json:"active_count"`
	StatusCounts   []StatusCountView `json:"status_counts"`
	OldestIncident time.Time         `json:"oldest_incident"`
	NewestIncident time.Time         `json:"newest_incident"`
}

// StatusCountView is the number of incidents in one status.
type StatusCountView struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ConfigStatusView represents configuration status.
type ConfigStatusView struct {
	Location    string `json:"location"`
	SQLLogLevel string `json:"sql_log_level"`
	Timezone    string `json:"timezone"`
}

// ConfigView represents configuration for display.
type ConfigView struct {
	Location string                 `json:"location"`
	Values   map[string]interface{} `json:"values"`
}
