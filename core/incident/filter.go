package incident

import (
	"fmt"
	"strings"
	"time"
)

// OrderTerm is one ordering key.
type OrderTerm struct {
	Field string
	Desc  bool
}

// String renders the term in "-field" notation.
func (o OrderTerm) String() string {
	if o.Desc {
		return "-" + o.Field
	}
	return o.Field
}

// orderableFields whitelists the columns an ordering may reference.
var orderableFields = map[string]bool{
	"id":             true,
	FieldDate:        true,
	FieldType:        true,
	FieldStatus:      true,
	FieldResponsible: true,
	FieldIsActive:    true,
	"created_at":     true,
	FieldUpdatedAt:   true,
}

// DefaultOrder is applied to any unqualified listing: date descending,
// ties broken by id descending.
func DefaultOrder() []OrderTerm {
	return []OrderTerm{{Field: FieldDate, Desc: true}, {Field: "id", Desc: true}}
}

// ParseOrder parses a comma separated ordering such as "-date,-id".
// A leading "-" means descending. "type" is accepted for incident_type.
func ParseOrder(s string) ([]OrderTerm, error) {
	var terms []OrderTerm
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		term := OrderTerm{Field: part}
		if strings.HasPrefix(part, "-") {
			term = OrderTerm{Field: strings.TrimPrefix(part, "-"), Desc: true}
		}
		if term.Field == "type" {
			term.Field = FieldType
		}
		if !orderableFields[term.Field] {
			return nil, fmt.Errorf("invalid order field: %q", term.Field)
		}
		terms = append(terms, term)
	}
	return terms, nil
}

// Filter selects incidents. The zero value matches every record.
type Filter struct {
	// IDs restricts to the given identity keys.
	IDs []int64
	// Types filters by incident type(s).
	Types []Type
	// Statuses filters by status(es).
	Statuses []Status
	// Active filters by the soft-delete flag when non-nil.
	Active *bool
	// Search is a case-insensitive substring matched against
	// description and responsible.
	Search string
	// Since keeps incidents dated at or after this time.
	Since *time.Time
	// Until keeps incidents dated before this time.
	Until *time.Time
	// Order overrides DefaultOrder when non-empty.
	Order []OrderTerm
	// Limit is the maximum number of results. Zero means no limit.
	Limit int
	// Offset is the number of results to skip.
	Offset int
}

// NewFilter creates an empty Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// ByID returns a filter matching a single identity key.
func ByID(id int64) *Filter {
	return NewFilter().WithIDs(id)
}

// WithIDs sets the IDs filter.
func (f *Filter) WithIDs(ids ...int64) *Filter {
	f.IDs = ids
	return f
}

// WithTypes sets the Types filter.
func (f *Filter) WithTypes(types ...Type) *Filter {
	f.Types = types
	return f
}

// WithStatuses sets the Statuses filter.
func (f *Filter) WithStatuses(statuses ...Status) *Filter {
	f.Statuses = statuses
	return f
}

// WithActive sets the Active filter.
func (f *Filter) WithActive(active bool) *Filter {
	f.Active = &active
	return f
}

// WithSearch sets the Search filter.
func (f *Filter) WithSearch(term string) *Filter {
	f.Search = term
	return f
}

// WithSince sets the Since filter.
func (f *Filter) WithSince(t time.Time) *Filter {
	f.Since = &t
	return f
}

// WithUntil sets the Until filter.
func (f *Filter) WithUntil(t time.Time) *Filter {
	f.Until = &t
	return f
}

// WithOrder sets the ordering.
func (f *Filter) WithOrder(terms ...OrderTerm) *Filter {
	f.Order = terms
	return f
}

// WithLimit sets the Limit.
func (f *Filter) WithLimit(limit int) *Filter {
	f.Limit = limit
	return f
}

// WithOffset sets the Offset.
func (f *Filter) WithOffset(offset int) *Filter {
	f.Offset = offset
	return f
}

// IsEmpty returns true if the filter has no predicate. Ordering and paging
// are not predicates.
func (f *Filter) IsEmpty() bool {
	return len(f.IDs) == 0 &&
		len(f.Types) == 0 &&
		len(f.Statuses) == 0 &&
		f.Active == nil &&
		strings.TrimSpace(f.Search) == "" &&
		f.Since == nil &&
		f.Until == nil
}

// Validate checks enumerations and ordering fields.
func (f *Filter) Validate() error {
	for _, t := range f.Types {
		if !t.IsValid() {
			return &ValidationError{Field: FieldType, Reason: fmt.Sprintf("unknown value %q", t)}
		}
	}
	for _, s := range f.Statuses {
		if !s.IsValid() {
			return &ValidationError{Field: FieldStatus, Reason: fmt.Sprintf("unknown value %q", s)}
		}
	}
	for _, o := range f.Order {
		if !orderableFields[o.Field] {
			return &ValidationError{Field: "order", Reason: fmt.Sprintf("unknown field %q", o.Field)}
		}
	}
	if f.Limit < 0 || f.Offset < 0 {
		return &ValidationError{Field: "limit", Reason: "must be non-negative"}
	}
	return nil
}

// EffectiveOrder returns the ordering to apply: DefaultOrder when none is
// set, otherwise the given terms with "-id" appended as a tie-break if id
// is not already part of the ordering.
func (f *Filter) EffectiveOrder() []OrderTerm {
	if len(f.Order) == 0 {
		return DefaultOrder()
	}
	terms := append([]OrderTerm(nil), f.Order...)
	for _, t := range terms {
		if t.Field == "id" {
			return terms
		}
	}
	return append(terms, OrderTerm{Field: "id", Desc: true})
}
