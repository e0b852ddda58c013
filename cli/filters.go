package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/incidents/core/incident"
)

// dateLayouts are accepted by date flags, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate parses a date flag value in loc unless it carries an offset.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "now" {
		return time.Now(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, YYYY-MM-DD HH:MM[:SS] or RFC 3339)", value)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrValidation(fmt.Sprintf("invalid incident id %q", arg), nil)
	}
	return id, nil
}

// filterFlags are the selection flags shared by list and delete.
type filterFlags struct {
	types    []string
	statuses []string
	active   string
	search   string
	since    string
	until    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.types, "type", nil, "filter by type: failure, security, operation, other (repeatable)")
	cmd.Flags().StringArrayVar(&f.statuses, "status", nil, "filter by status: open, in_progress, resolved, closed (repeatable)")
	cmd.Flags().StringVar(&f.active, "active", "", "filter by the active flag: true or false")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive text in description or responsible")
	cmd.Flags().StringVar(&f.since, "since", "", "incidents dated at or after this date")
	cmd.Flags().StringVar(&f.until, "until", "", "incidents dated before this date")
}

// build returns the filter selected by the flags. Dates are read in loc.
func (f *filterFlags) build(loc *time.Location) (*incident.Filter, error) {
	filter := incident.NewFilter()

	if len(f.types) > 0 {
		types := make([]incident.Type, len(f.types))
		for i, s := range f.types {
			t, err := incident.ParseType(s)
			if err != nil {
				return nil, ErrValidation("invalid --type", err)
			}
			types[i] = t
		}
		filter = filter.WithTypes(types...)
	}

	if len(f.statuses) > 0 {
		statuses := make([]incident.Status, len(f.statuses))
		for i, s := range f.statuses {
			st, err := incident.ParseStatus(s)
			if err != nil {
				return nil, ErrValidation("invalid --status", err)
			}
			statuses[i] = st
		}
		filter = filter.WithStatuses(statuses...)
	}

	if f.active != "" {
		active, err := strconv.ParseBool(f.active)
		if err != nil {
			return nil, ErrValidation(fmt.Sprintf("invalid --active %q (must be true or false)", f.active), nil)
		}
		filter = filter.WithActive(active)
	}

	if f.search != "" {
		filter = filter.WithSearch(f.search)
	}

	if f.since != "" {
		since, err := parseDate(f.since, loc)
		if err != nil {
			return nil, ErrValidation("invalid --since", err)
		}
		filter = filter.WithSince(since)
	}

	if f.until != "" {
		until, err := parseDate(f.until, loc)
		if err != nil {
			return nil, ErrValidation("invalid --until", err)
		}
		filter = filter.WithUntil(until)
	}

	return filter, nil
}
