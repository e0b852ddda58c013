package browse

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/opsdesk/incidents/core/incident"
)

var (
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorRed    = lipgloss.Color("#E74C3C")
	colorAmber  = lipgloss.Color("#F0AD4E")
	colorViolet = lipgloss.Color("#9B59B6")
	colorTeal   = lipgloss.Color("#1ABC9C")
	colorWhite  = lipgloss.Color("#ECF0F1")
	colorDim    = lipgloss.Color("#7F8C8D")
	colorBg     = lipgloss.Color("#1E1E2E")
	colorSelect = lipgloss.Color("#3E3E5E")

	headerStyle = lipgloss.NewStyle().
			Background(colorBg).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Background(colorBg).
			Foreground(colorDim).
			Padding(0, 1)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(colorSelect).
				Foreground(colorWhite)

	inactiveRowStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Strikethrough(true)

	confirmStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorTeal)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	helpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorViolet).
				Padding(1, 2).
				Foreground(colorWhite)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAmber).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

func statusStyleFor(status incident.Status) lipgloss.Style {
	switch status {
	case incident.StatusOpen:
		return lipgloss.NewStyle().Foreground(colorAmber)
	case incident.StatusInProgress:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case incident.StatusResolved:
		return lipgloss.NewStyle().Foreground(colorGreen)
	default:
		return lipgloss.NewStyle().Foreground(colorDim)
	}
}

func typeStyleFor(t incident.Type) lipgloss.Style {
	switch t {
	case incident.TypeFailure, incident.TypeSecurity:
		return lipgloss.NewStyle().Foreground(colorRed)
	case incident.TypeOperation:
		return lipgloss.NewStyle().Foreground(colorTeal)
	default:
		return lipgloss.NewStyle().Foreground(colorViolet)
	}
}
