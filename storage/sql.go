package storage

import (
	"context"
	"fmt"
	"slices"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	"github.com/opsdesk/incidents/core/incident"
)

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Option configures an SQLStore.
type Option func(*options)

type options struct {
	now      func() time.Time
	logLevel LogLevel
}

// WithClock sets the clock used for defaults and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithSQLLogLevel sets the level at which SQL statements are logged.
func WithSQLLogLevel(level LogLevel) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

func buildOptions(opts []Option) *options {
	o := &options{now: time.Now, logLevel: LogSilent}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SQLStore implements Store using ent's SQL driver.
type SQLStore struct {
	raw      *entsql.Driver
	drv      dialect.Driver
	driver   string
	location string
	now      func() time.Time
	sizeFn   func(ctx context.Context) int64
}

var _ Store = (*SQLStore)(nil)

func newSQLStore(raw *entsql.Driver, driver, location string, o *options) *SQLStore {
	return &SQLStore{
		raw:      raw,
		drv:      withLogging(raw, o.logLevel),
		driver:   driver,
		location: location,
		now:      o.now,
	}
}

// Driver returns the name of the backing driver.
func (s *SQLStore) Driver() string {
	return s.driver
}

func (s *SQLStore) stamp() time.Time {
	return incident.NormalizeTime(s.now())
}

func (s *SQLStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// Init initializes the database schema.
func (s *SQLStore) Init(ctx context.Context) error {
	table, err := incidentTable()
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	migrate, err := schema.NewMigrate(s.raw)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := migrate.Create(ctx, table); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.raw.Close()
}

// withTx runs fn in a transaction, rolling back when it fails.
func (s *SQLStore) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Create inserts a new incident.
func (s *SQLStore) Create(ctx context.Context, in incident.Input) (*incident.Incident, error) {
	now := s.stamp()

	inc, err := in.Build(now)
	if err != nil {
		return nil, err
	}
	inc.CreatedAt = now
	inc.UpdatedAt = now

	insert := s.builder().Insert(incidentsTable)
	for _, a := range insertValues(inc) {
		insert.Set(a.column, a.value)
	}
	insert.Returning(columnID)

	err = s.withTx(ctx, func(tx dialect.Tx) error {
		query, args := insert.Query()
		var rows entsql.Rows
		if err := tx.Query(ctx, query, args, &rows); err != nil {
			return err
		}
		defer rows.Close()

		id, err := entsql.ScanInt64(rows)
		if err != nil {
			return err
		}
		inc.ID = id
		return nil
	})
	if err != nil {
		return nil, wrapWriteError("create incident", err)
	}

	return inc, nil
}

// Get retrieves an incident by ID.
func (s *SQLStore) Get(ctx context.Context, id int64) (*incident.Incident, error) {
	selector := s.builder().
		Select(incidentColumns...).
		From(entsql.Table(incidentsTable)).
		Where(entsql.EQ(columnID, id)).
		Limit(1)

	records, err := selectRecords(ctx, s.drv, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}
	if len(records) == 0 {
		return nil, &incident.NotFoundError{ID: id}
	}
	return records[0].toIncident(), nil
}

// Filter returns a lazy query over the matching incidents.
func (s *SQLStore) Filter(filter *incident.Filter) *Query {
	return newQuery(s.drv, filter)
}

// Save persists inc. With no fields every mutable column is written,
// otherwise only the named ones. updated_at is always stamped.
func (s *SQLStore) Save(ctx context.Context, inc *incident.Incident, fields ...string) error {
	if inc.ID == 0 {
		return &incident.ValidationError{Field: "id", Reason: "is required"}
	}
	for _, f := range fields {
		if f != incident.FieldUpdatedAt && !slices.Contains(incident.MutableFields, f) {
			return &incident.ValidationError{Field: "fields", Reason: fmt.Sprintf("%q cannot be saved", f)}
		}
	}

	inc.Date = incident.NormalizeTime(inc.Date)
	inc.Responsible = incident.NormalizeResponsible(inc.Responsible)
	if err := inc.Validate(); err != nil {
		return err
	}

	now := s.stamp()
	values := append(columnValues(inc, fields), assignment{incident.FieldUpdatedAt, now})

	affected, err := s.update(ctx, entsql.EQ(columnID, inc.ID), values)
	if err != nil {
		return wrapWriteError("save incident", err)
	}
	if affected == 0 {
		return &incident.NotFoundError{ID: inc.ID}
	}

	inc.UpdatedAt = now
	return nil
}

// Update applies changes to every matching incident without loading them.
func (s *SQLStore) Update(ctx context.Context, filter *incident.Filter, changes *incident.Changes) (int, error) {
	if filter == nil {
		filter = incident.NewFilter()
	}
	if err := filter.Validate(); err != nil {
		return 0, err
	}
	if changes == nil || changes.IsEmpty() {
		return 0, &incident.ValidationError{Field: "changes", Reason: "no fields to update"}
	}
	if err := changes.Validate(); err != nil {
		return 0, err
	}

	values := append(changeValues(changes), assignment{incident.FieldUpdatedAt, s.stamp()})

	affected, err := s.update(ctx, predicate(filter), values)
	if err != nil {
		return 0, wrapWriteError("update incidents", err)
	}
	return int(affected), nil
}

// update writes values to the rows matching p, or every row when p is nil.
func (s *SQLStore) update(ctx context.Context, p *entsql.Predicate, values []assignment) (int64, error) {
	update := s.builder().Update(incidentsTable)
	for _, a := range values {
		update.Set(a.column, a.value)
	}
	if p != nil {
		update.Where(p)
	}

	var affected int64
	err := s.withTx(ctx, func(tx dialect.Tx) error {
		query, args := update.Query()
		var res entsql.Result
		if err := tx.Exec(ctx, query, args, &res); err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	return affected, err
}

// Refresh reloads inc from storage.
func (s *SQLStore) Refresh(ctx context.Context, inc *incident.Incident) error {
	fresh, err := s.Get(ctx, inc.ID)
	if err != nil {
		return err
	}
	*inc = *fresh
	return nil
}

// Delete removes every matching incident.
func (s *SQLStore) Delete(ctx context.Context, filter *incident.Filter) (int, error) {
	if filter == nil {
		filter = incident.NewFilter()
	}
	if err := filter.Validate(); err != nil {
		return 0, err
	}

	del := s.builder().Delete(incidentsTable)
	if p := predicate(filter); p != nil {
		del.Where(p)
	}

	var affected int64
	err := s.withTx(ctx, func(tx dialect.Tx) error {
		query, args := del.Query()
		var res entsql.Result
		if err := tx.Exec(ctx, query, args, &res); err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete incidents: %w", err)
	}
	return int(affected), nil
}

// Info reports the backend, its location and record counts.
func (s *SQLStore) Info(ctx context.Context) (*DatabaseInfo, error) {
	info := &DatabaseInfo{
		Driver:       s.driver,
		Location:     s.location,
		StatusCounts: make(map[incident.Status]int),
	}
	if s.sizeFn != nil {
		info.SizeBytes = s.sizeFn(ctx)
	}

	total, err := s.Filter(nil).Count(ctx)
	if err != nil {
		return nil, err
	}
	info.IncidentCount = total

	active, err := s.Filter(incident.NewFilter().WithActive(true)).Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active incidents: %w", err)
	}
	info.ActiveCount = active

	byStatus := s.builder().
		Select(incident.FieldStatus, entsql.As(entsql.Count("*"), "total")).
		From(entsql.Table(incidentsTable)).
		GroupBy(incident.FieldStatus)
	query, args := byStatus.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("failed to count incidents by status: %w", err)
	}
	defer rows.Close()

	var counts []struct {
		Status string `sql:"status"`
		Total  int64  `sql:"total"`
	}
	if err := entsql.ScanSlice(rows, &counts); err != nil {
		return nil, fmt.Errorf("failed to count incidents by status: %w", err)
	}
	for _, c := range counts {
		info.StatusCounts[incident.Status(c.Status)] = int(c.Total)
	}

	oldest, err := s.Filter(incident.NewFilter().WithOrder(incident.OrderTerm{Field: incident.FieldDate})).First(ctx)
	if err == nil && oldest != nil {
		info.OldestIncident = oldest.Date
	}

	newest, err := s.Filter(incident.NewFilter().WithOrder(incident.OrderTerm{Field: incident.FieldDate, Desc: true})).First(ctx)
	if err == nil && newest != nil {
		info.NewestIncident = newest.Date
	}

	return info, nil
}

// wrapWriteError returns integrity violations unchanged and wraps any other
// failure with the attempted operation.
func wrapWriteError(op string, err error) error {
	classified := classifyError(err)
	if incident.IsIntegrity(classified) {
		return classified
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
