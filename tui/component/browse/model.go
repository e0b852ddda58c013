package browse

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/opsdesk/incidents/core/incident"
)

var statusCycle = append([]incident.Status{""}, incident.Statuses()...)

type Model struct {
	opts   Options
	width  int
	height int

	header headerModel
	footer footerModel
	list   listModel
	help   helpModel

	page          int
	total         int
	statusFilter  incident.Status
	activeOnly    bool
	confirmDelete bool
	ready         bool
}

func New(opts Options) Model {
	return Model{
		opts:   opts,
		header: newHeaderModel(),
		footer: newFooterModel(),
		list:   newListModel(opts.location()),
		help:   newHelpModel(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.reload()
}

// Filter returns the filter of the page currently displayed.
func (m Model) Filter() *incident.Filter {
	f := incident.NewFilter().
		WithSearch(m.opts.Search).
		WithLimit(m.opts.pageSize()).
		WithOffset(m.page * m.opts.pageSize())

	if len(m.opts.Types) > 0 {
		f = f.WithTypes(m.opts.Types...)
	}
	if m.statusFilter != "" {
		f = f.WithStatuses(m.statusFilter)
	}
	if m.activeOnly {
		f = f.WithActive(true)
	}
	return f
}

// Selected returns the incident under the cursor, or nil.
func (m Model) Selected() *incident.Incident {
	return m.list.selected()
}

func (m Model) reload() tea.Cmd {
	return loadPage(m.opts.Store, m.Filter())
}

func (m Model) pageCount() int {
	size := m.opts.pageSize()
	if m.total == 0 {
		return 1
	}
	return (m.total + size - 1) / size
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case pageLoadedMsg:
		m.total = msg.total
		// A delete can empty the last page.
		if len(msg.incidents) == 0 && m.page > 0 {
			m.page--
			return m, m.reload()
		}
		m.list.set(msg.incidents)
		m.footer.lastError = ""
		return m, nil

	case mutatedMsg:
		m.footer.message = msg.message
		m.footer.lastError = ""
		return m, m.reload()

	case errMsg:
		m.footer.lastError = msg.err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmDelete {
		m.confirmDelete = false
		m.footer.confirm = ""
		if msg.String() == "y" {
			if sel := m.list.selected(); sel != nil {
				return m, deleteIncident(m.opts.Store, sel.ID)
			}
		}
		m.footer.message = "delete cancelled"
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.help.toggle()
		return m, nil

	case "up", "k":
		m.list.moveUp()
		return m, nil

	case "down", "j":
		m.list.moveDown()
		return m, nil

	case "n", "pgdown":
		if m.page+1 < m.pageCount() {
			m.page++
			m.list.cursor = 0
			return m, m.reload()
		}
		return m, nil

	case "p", "pgup":
		if m.page > 0 {
			m.page--
			m.list.cursor = 0
			return m, m.reload()
		}
		return m, nil

	case "s":
		m.cycleStatusFilter()
		m.page = 0
		m.list.cursor = 0
		return m, m.reload()

	case "a":
		m.activeOnly = !m.activeOnly
		m.page = 0
		m.list.cursor = 0
		return m, m.reload()

	case "r":
		return m, m.reload()

	case " ", "t":
		if sel := m.list.selected(); sel != nil {
			return m, setActive(m.opts.Store, sel.ID, !sel.IsActive)
		}
		return m, nil

	case "enter", "x":
		if sel := m.list.selected(); sel != nil {
			return m, advanceStatus(m.opts.Store, sel)
		}
		return m, nil

	case "d", "delete":
		if sel := m.list.selected(); sel != nil {
			m.confirmDelete = true
			m.footer.confirm = sel.String()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) cycleStatusFilter() {
	for i, s := range statusCycle {
		if s == m.statusFilter {
			m.statusFilter = statusCycle[(i+1)%len(statusCycle)]
			return
		}
	}
	m.statusFilter = ""
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.header.view(m.width, headerState{
		status:     m.statusFilter,
		activeOnly: m.activeOnly,
		total:      m.total,
		page:       m.page + 1,
		pages:      m.pageCount(),
	})
	footer := m.footer.view(m.width)

	contentHeight := m.height - 2 // header + footer

	if m.help.visible {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.help.view(m.width, contentHeight), footer)
	}

	content := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(m.list.view(m.width, contentHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
