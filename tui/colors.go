package tui

import "github.com/opsdesk/incidents/core/incident"

// ANSI color codes
const (
	Reset = "\033[0m"

	// Foreground colors
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	Gray    = "\033[90m"

	// Bold variants
	BoldWhite = "\033[1;37m"
	BoldRed   = "\033[1;31m"
)

// Colorizer wraps text with ANSI color codes if colors are enabled.
type Colorizer struct {
	enabled bool
}

// NewColorizer creates a new Colorizer.
func NewColorizer(enabled bool) *Colorizer {
	return &Colorizer{enabled: enabled}
}

// Apply applies the given color to the text.
func (c *Colorizer) Apply(color, text string) string {
	if !c.enabled {
		return text
	}
	return color + text + Reset
}

// Header formats text as a header.
func (c *Colorizer) Header(text string) string {
	return c.Apply(BoldWhite, text)
}

// Path formats a file path or database location.
func (c *Colorizer) Path(text string) string {
	return c.Apply(Blue, text)
}

// Success formats success text.
func (c *Colorizer) Success(text string) string {
	return c.Apply(Green, text)
}

// Error formats error text.
func (c *Colorizer) Error(text string) string {
	return c.Apply(Red, text)
}

// Warning formats warning text.
func (c *Colorizer) Warning(text string) string {
	return c.Apply(Yellow, text)
}

// Dim formats secondary/dim text.
func (c *Colorizer) Dim(text string) string {
	return c.Apply(Gray, text)
}

// Number formats numbers/stats.
func (c *Colorizer) Number(text string) string {
	return c.Apply(Yellow, text)
}

// Type formats text for an incident type code.
func (c *Colorizer) Type(t incident.Type, text string) string {
	switch t {
	case incident.TypeFailure:
		return c.Apply(Red, text)
	case incident.TypeSecurity:
		return c.Apply(BoldRed, text)
	case incident.TypeOperation:
		return c.Apply(Cyan, text)
	default:
		return c.Apply(Magenta, text)
	}
}

// Status formats text for an incident status code.
func (c *Colorizer) Status(s incident.Status, text string) string {
	switch s {
	case incident.StatusOpen:
		return c.Apply(Yellow, text)
	case incident.StatusInProgress:
		return c.Apply(Cyan, text)
	case incident.StatusResolved:
		return c.Apply(Green, text)
	default:
		return c.Apply(Gray, text)
	}
}

// Active formats the soft-delete flag.
func (c *Colorizer) Active(active bool, text string) string {
	if active {
		return c.Apply(Green, text)
	}
	return c.Apply(Gray, text)
}
