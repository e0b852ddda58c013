package browse

import (
	"time"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/storage"
)

type Options struct {
	Store    storage.Store
	Search   string
	Types    []incident.Type
	PageSize int
	Location *time.Location
}

func (o Options) pageSize() int {
	if o.PageSize > 0 {
		return o.PageSize
	}
	return 20
}

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}
