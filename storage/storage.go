// Package storage provides the incident store interface and its SQL
// implementation.
package storage

import (
	"context"
	"time"

	"github.com/opsdesk/incidents/core/incident"
)

// Store defines the persistence contract for incidents.
type Store interface {
	// Create inserts a new incident after applying defaults. The store stamps
	// created_at and updated_at.
	Create(ctx context.Context, in incident.Input) (*incident.Incident, error)

	// Get retrieves an incident by ID. It returns *incident.NotFoundError
	// when no row matches.
	Get(ctx context.Context, id int64) (*incident.Incident, error)

	// Filter returns a lazy query over the incidents matching filter.
	Filter(filter *incident.Filter) *Query

	// Save persists a loaded incident. When fields is non-empty only those
	// columns and updated_at are written.
	Save(ctx context.Context, inc *incident.Incident, fields ...string) error

	// Update applies changes to every incident matching filter without
	// loading them and returns the number of affected rows.
	Update(ctx context.Context, filter *incident.Filter, changes *incident.Changes) (int, error)

	// Refresh reloads inc from storage in place.
	Refresh(ctx context.Context, inc *incident.Incident) error

	// Delete physically removes every incident matching filter and returns
	// the number of removed rows.
	Delete(ctx context.Context, filter *incident.Filter) (int, error)

	// Info reports the backend, its location and record counts.
	Info(ctx context.Context) (*DatabaseInfo, error)

	// Init initializes the database schema.
	Init(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}

// DatabaseInfo contains information about the database.
type DatabaseInfo struct {
	Driver         string
	Location       string
	SizeBytes      int64
	IncidentCount  int
	ActiveCount    int
	StatusCounts   map[incident.Status]int
	OldestIncident time.Time
	NewestIncident time.Time
}
