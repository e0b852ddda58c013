package storage

import (
	"context"
	"fmt"
	"iter"
	"math"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/opsdesk/incidents/core/incident"
)

// Query is a lazy selection of incidents. Nothing is read until one of its
// terminal methods runs, and every call evaluates against storage again.
type Query struct {
	drv    dialect.Driver
	filter incident.Filter
}

func newQuery(drv dialect.Driver, filter *incident.Filter) *Query {
	q := &Query{drv: drv}
	if filter != nil {
		q.filter = *filter
	}
	return q
}

// Filter returns a copy of the filter the query was built from.
func (q *Query) Filter() *incident.Filter {
	f := q.filter
	return &f
}

// All returns every matching incident in order.
func (q *Query) All(ctx context.Context) ([]*incident.Incident, error) {
	if err := q.filter.Validate(); err != nil {
		return nil, err
	}

	records, err := selectRecords(ctx, q.drv, q.selection())
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}

	result := make([]*incident.Incident, len(records))
	for i := range records {
		result[i] = records[i].toIncident()
	}
	return result, nil
}

// Count returns the number of matching incidents. Limit and Offset are not
// applied.
func (q *Query) Count(ctx context.Context) (int, error) {
	if err := q.filter.Validate(); err != nil {
		return 0, err
	}

	selector := entsql.Dialect(q.drv.Dialect()).
		Select().
		From(entsql.Table(incidentsTable)).
		Count()
	if p := predicate(&q.filter); p != nil {
		selector.Where(p)
	}

	count, err := queryInt(ctx, q.drv, selector)
	if err != nil {
		return 0, fmt.Errorf("failed to count incidents: %w", err)
	}
	return count, nil
}

// First returns the first matching incident, or nil when nothing matches.
func (q *Query) First(ctx context.Context) (*incident.Incident, error) {
	if err := q.filter.Validate(); err != nil {
		return nil, err
	}

	records, err := selectRecords(ctx, q.drv, q.selection().Limit(1))
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0].toIncident(), nil
}

// Iter streams matching incidents row by row. Iteration stops at the first
// error, which is yielded with a nil incident.
func (q *Query) Iter(ctx context.Context) iter.Seq2[*incident.Incident, error] {
	return func(yield func(*incident.Incident, error) bool) {
		if err := q.filter.Validate(); err != nil {
			yield(nil, err)
			return
		}

		query, args := q.selection().Query()
		var rows entsql.Rows
		if err := q.drv.Query(ctx, query, args, &rows); err != nil {
			yield(nil, fmt.Errorf("failed to query incidents: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var rec incidentRecord
			if err := rows.Scan(rec.scanTargets()...); err != nil {
				yield(nil, fmt.Errorf("failed to scan incident: %w", err))
				return
			}
			if !yield(rec.toIncident(), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("failed to read incidents: %w", err))
		}
	}
}

func (q *Query) selection() *entsql.Selector {
	selector := entsql.Dialect(q.drv.Dialect()).
		Select(incidentColumns...).
		From(entsql.Table(incidentsTable))
	if p := predicate(&q.filter); p != nil {
		selector.Where(p)
	}
	for _, term := range q.filter.EffectiveOrder() {
		if term.Desc {
			selector.OrderBy(entsql.Desc(term.Field))
		} else {
			selector.OrderBy(entsql.Asc(term.Field))
		}
	}
	switch {
	case q.filter.Limit > 0:
		selector.Limit(q.filter.Limit)
	case q.filter.Offset > 0:
		// OFFSET is only valid after a LIMIT.
		selector.Limit(math.MaxInt32)
	}
	if q.filter.Offset > 0 {
		selector.Offset(q.filter.Offset)
	}
	return selector
}

// predicate builds the WHERE condition of filter, or nil when it matches
// every row. Ordering and paging are not part of it.
func predicate(filter *incident.Filter) *entsql.Predicate {
	if filter == nil {
		return nil
	}

	var preds []*entsql.Predicate
	if len(filter.IDs) > 0 {
		ids := make([]any, len(filter.IDs))
		for i, id := range filter.IDs {
			ids[i] = id
		}
		preds = append(preds, entsql.In(columnID, ids...))
	}
	if len(filter.Types) > 0 {
		types := make([]any, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		preds = append(preds, entsql.In(incident.FieldType, types...))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]any, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		preds = append(preds, entsql.In(incident.FieldStatus, statuses...))
	}
	if filter.Active != nil {
		preds = append(preds, entsql.EQ(incident.FieldIsActive, *filter.Active))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		preds = append(preds, entsql.Or(
			entsql.ContainsFold(incident.FieldDescription, term),
			entsql.ContainsFold(incident.FieldResponsible, term),
		))
	}
	if filter.Since != nil {
		preds = append(preds, entsql.GTE(incident.FieldDate, incident.NormalizeTime(*filter.Since)))
	}
	if filter.Until != nil {
		preds = append(preds, entsql.LT(incident.FieldDate, incident.NormalizeTime(*filter.Until)))
	}

	switch len(preds) {
	case 0:
		return nil
	case 1:
		return preds[0]
	default:
		return entsql.And(preds...)
	}
}

func selectRecords(ctx context.Context, drv dialect.ExecQuerier, selector *entsql.Selector) ([]incidentRecord, error) {
	query, args := selector.Query()
	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []incidentRecord
	if err := entsql.ScanSlice(rows, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func queryInt(ctx context.Context, drv dialect.ExecQuerier, selector *entsql.Selector) (int, error) {
	query, args := selector.Query()
	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return 0, err
	}
	defer rows.Close()
	return entsql.ScanInt(rows)
}
