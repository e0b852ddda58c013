// Package incident provides the operational incident model, its enumerations,
// filters and the error taxonomy shared by storage and presentation.
package incident

import (
	"fmt"
	"strings"
)

// Type classifies an incident.
type Type string

const (
	// TypeFailure is an equipment or process failure.
	TypeFailure Type = "FAILURE"
	// TypeSecurity is a security event.
	TypeSecurity Type = "SECURITY"
	// TypeOperation is an operational disruption.
	TypeOperation Type = "OPERATION"
	// TypeOther is anything else. It is the default.
	TypeOther Type = "OTHER"
)

// typeDisplayNames maps each Type to its human-readable label and is the
// source of truth for IsValid.
var typeDisplayNames = map[Type]string{
	TypeFailure:   "Failure",
	TypeSecurity:  "Security",
	TypeOperation: "Operation",
	TypeOther:     "Other",
}

// legacyTypes maps the codes used by the original incident register.
var legacyTypes = map[string]Type{
	"FALLA":     TypeFailure,
	"SEGURIDAD": TypeSecurity,
	"OPERACION": TypeOperation,
	"OTRO":      TypeOther,
}

// Types returns all known incident types in declaration order.
func Types() []Type {
	return []Type{TypeFailure, TypeSecurity, TypeOperation, TypeOther}
}

// String returns the string representation of a Type.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the Type is a known type.
func (t Type) IsValid() bool {
	_, ok := typeDisplayNames[t]
	return ok
}

// DisplayName returns the human-readable label for the type.
func (t Type) DisplayName() string {
	if dn, ok := typeDisplayNames[t]; ok {
		return dn
	}
	return string(t)
}

// ParseType parses a string into a Type. Matching is case-insensitive and
// accepts legacy register codes (e.g. "OPERACION").
func ParseType(s string) (Type, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if t := Type(key); t.IsValid() {
		return t, nil
	}
	if t, ok := legacyTypes[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("invalid incident type: %q", s)
}

// Status is the lifecycle state of an incident. Any status may follow any
// other; no transition rules are enforced.
type Status string

const (
	// StatusOpen is a newly reported incident. It is the default.
	StatusOpen Status = "OPEN"
	// StatusInProgress is an incident being worked on.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusResolved is an incident whose cause has been addressed.
	StatusResolved Status = "RESOLVED"
	// StatusClosed is a finished incident.
	StatusClosed Status = "CLOSED"
)

var statusDisplayNames = map[Status]string{
	StatusOpen:       "Open",
	StatusInProgress: "In progress",
	StatusResolved:   "Resolved",
	StatusClosed:     "Closed",
}

var legacyStatuses = map[string]Status{
	"ABIERTO":    StatusOpen,
	"EN_PROCESO": StatusInProgress,
	"RESUELTO":   StatusResolved,
	"CERRADO":    StatusClosed,
}

// Statuses returns all known statuses in declaration order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// String returns the string representation of a Status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the Status is a known status.
func (s Status) IsValid() bool {
	_, ok := statusDisplayNames[s]
	return ok
}

// DisplayName returns the human-readable label for the status.
func (s Status) DisplayName() string {
	if dn, ok := statusDisplayNames[s]; ok {
		return dn
	}
	return string(s)
}

// Next returns the status that follows s in declaration order, wrapping
// around after CLOSED. Used by the browser to cycle values.
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return StatusOpen
}

// ParseStatus parses a string into a Status. Matching is case-insensitive,
// tolerates "-" or spaces in place of "_", and accepts legacy register codes.
func ParseStatus(s string) (Status, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if st := Status(key); st.IsValid() {
		return st, nil
	}
	if st, ok := legacyStatuses[key]; ok {
		return st, nil
	}
	return "", fmt.Errorf("invalid incident status: %q", s)
}
