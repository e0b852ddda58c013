// Package walkthrough runs the scripted create, read, update and delete
// sequence against an incident store and reports every step.
package walkthrough

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/safedep/dry/log"

	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/storage"
)

const (
	DefaultDescription = "Intermittent interruption detected on process line."
	DefaultResponsible = "Juan Pérez"
	DefaultListLimit   = 5

	// DateLayout renders dates in the listing step.
	DateLayout = "2006-01-02 15:04:05.000000 -07:00"
)

// ErrMismatch matches any *MismatchError.
var ErrMismatch = errors.New("read-back mismatch")

// MismatchError is returned when the incident read back by id differs from
// the one created.
type MismatchError struct {
	ID   int64
	Diff string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("incident %d read back differs from created record:\n%s", e.ID, e.Diff)
}

// Is reports whether target is ErrMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Options tunes a walkthrough run. Zero values select the defaults.
type Options struct {
	Description string
	Responsible string
	ListLimit   int
	// Location is used to render dates. Defaults to UTC.
	Location *time.Location
	// Highlight decorates result lines, e.g. with color.
	Highlight func(string) string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Description) == "" {
		o.Description = DefaultDescription
	}
	if strings.TrimSpace(o.Responsible) == "" {
		o.Responsible = DefaultResponsible
	}
	if o.ListLimit <= 0 {
		o.ListLimit = DefaultListLimit
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Highlight == nil {
		o.Highlight = func(s string) string { return s }
	}
	return o
}

// Report carries the observable outcome of each step.
type Report struct {
	RunID string

	// Created is the incident as returned by Create.
	Created *incident.Incident
	// Found is the incident read back by id.
	Found *incident.Incident
	// OpenCount is the number of OPEN incidents.
	OpenCount int
	// OpenListed holds at most ListLimit OPEN incidents, newest first.
	OpenListed []*incident.Incident
	// Updated is the instance after the status change was saved.
	Updated *incident.Incident
	// BulkUpdated is the number of rows changed by the bulk update.
	BulkUpdated int
	// ActiveAfterBulk is the is_active flag after reloading.
	ActiveAfterBulk bool
	// Deleted is the number of rows removed.
	Deleted int
}

type runner struct {
	store  storage.Store
	out    io.Writer
	opts   Options
	report *Report
}

// Run executes the walkthrough. Each step writes a line to out. The first
// error aborts the remaining steps and is returned unchanged along with the
// partial report.
func Run(ctx context.Context, store storage.Store, out io.Writer, opts Options) (*Report, error) {
	r := &runner{
		store:  store,
		out:    out,
		opts:   opts.withDefaults(),
		report: &Report{RunID: uuid.New().String()},
	}

	log.Debugf("walkthrough %s: starting", r.report.RunID)

	r.println(r.opts.Highlight("== INCIDENTS CRUD WALKTHROUGH =="))

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"create", r.create},
		{"get", r.get},
		{"filter", r.filter},
		{"save", r.save},
		{"bulk update", r.bulkUpdate},
		{"delete", r.delete},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			log.Debugf("walkthrough %s: step %s failed: %v", r.report.RunID, step.name, err)
			return r.report, err
		}
		log.Debugf("walkthrough %s: step %s done", r.report.RunID, step.name)
	}

	r.println("")
	r.println(r.opts.Highlight("== END CRUD WALKTHROUGH =="))
	return r.report, nil
}

func (r *runner) println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

func (r *runner) section(s string) {
	r.println("")
	r.println(s)
}

func (r *runner) create(ctx context.Context) error {
	r.section("[CREATE] creating incident...")

	inc, err := r.store.Create(ctx, incident.Input{
		Type:        incident.TypeOperation,
		Description: r.opts.Description,
		Status:      incident.StatusOpen,
		Responsible: r.opts.Responsible,
	})
	if err != nil {
		return err
	}

	r.report.Created = inc
	r.println(r.opts.Highlight("Created: " + inc.String()))
	return nil
}

func (r *runner) get(ctx context.Context) error {
	r.section("[READ] reading incident by id...")

	found, err := r.store.Get(ctx, r.report.Created.ID)
	if err != nil {
		return err
	}
	if diff := Diff(r.report.Created, found); diff != "" {
		return &MismatchError{ID: found.ID, Diff: diff}
	}

	r.report.Found = found
	r.println(r.opts.Highlight("Found: " + found.String()))
	return nil
}

func (r *runner) filter(ctx context.Context) error {
	r.section("[READ] filtering by status OPEN...")

	order := []incident.OrderTerm{{Field: incident.FieldDate, Desc: true}}
	q := r.store.Filter(incident.NewFilter().WithStatuses(incident.StatusOpen).WithOrder(order...))

	count, err := q.Count(ctx)
	if err != nil {
		return err
	}

	listed, err := r.store.Filter(q.Filter().WithLimit(r.opts.ListLimit)).All(ctx)
	if err != nil {
		return err
	}

	r.report.OpenCount = count
	r.report.OpenListed = listed
	r.println(r.opts.Highlight(fmt.Sprintf("Total open: %d", count)))
	for _, inc := range listed {
		r.println(fmt.Sprintf(" - %d | %s | %s | %s",
			inc.ID, inc.Type, inc.Responsible, inc.Date.In(r.opts.Location).Format(DateLayout)))
	}
	return nil
}

func (r *runner) save(ctx context.Context) error {
	r.section("[UPDATE] setting status to IN_PROGRESS...")

	inc := r.report.Found.Clone()
	inc.Status = incident.StatusInProgress
	if err := r.store.Save(ctx, inc, incident.FieldStatus, incident.FieldUpdatedAt); err != nil {
		return err
	}

	r.report.Updated = inc
	r.println(r.opts.Highlight("Updated: " + inc.String()))
	return nil
}

func (r *runner) bulkUpdate(ctx context.Context) error {
	r.section("[UPDATE] bulk update marking is_active=false...")

	inc := r.report.Updated.Clone()
	n, err := r.store.Update(ctx, incident.ByID(inc.ID), incident.NewChanges().SetActive(false))
	if err != nil {
		return err
	}
	if err := r.store.Refresh(ctx, inc); err != nil {
		return err
	}

	r.report.BulkUpdated = n
	r.report.ActiveAfterBulk = inc.IsActive
	r.println(r.opts.Highlight(fmt.Sprintf("Updated is_active: %t", inc.IsActive)))
	return nil
}

func (r *runner) delete(ctx context.Context) error {
	r.section("[DELETE] deleting record (hard delete)...")

	n, err := r.store.Delete(ctx, incident.ByID(r.report.Created.ID))
	if err != nil {
		return err
	}

	r.report.Deleted = n
	r.println(r.opts.Highlight(fmt.Sprintf("Deleted: %d", n)))
	return nil
}

// Diff returns a unified diff between two incidents, or "" when every
// field is equal.
func Diff(want, got *incident.Incident) string {
	a, b := dump(want), dump(got)
	if a == b {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "created",
		ToFile:   "stored",
		Context:  3,
	})
	if err != nil {
		return a + "\n" + b
	}
	return diff
}

func dump(inc *incident.Incident) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "id: %d\n", inc.ID)
	fmt.Fprintf(&sb, "date: %s\n", inc.Date.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(&sb, "incident_type: %s\n", inc.Type)
	fmt.Fprintf(&sb, "description: %q\n", inc.Description)
	fmt.Fprintf(&sb, "status: %s\n", inc.Status)
	fmt.Fprintf(&sb, "responsible: %q\n", inc.Responsible)
	fmt.Fprintf(&sb, "is_active: %t\n", inc.IsActive)
	fmt.Fprintf(&sb, "created_at: %s\n", inc.CreatedAt.UTC().Format(time.RFC3339Nano))
	fmt.Fprintf(&sb, "updated_at: %s\n", inc.UpdatedAt.UTC().Format(time.RFC3339Nano))
	return sb.String()
}
