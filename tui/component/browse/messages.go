package browse

import "github.com/opsdesk/incidents/core/incident"

type pageLoadedMsg struct {
	incidents []*incident.Incident
	total     int
}

type mutatedMsg struct {
	message string
}

type errMsg struct {
	err error
}
