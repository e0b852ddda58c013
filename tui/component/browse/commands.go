package browse

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/opsdesk/incidents/core/incident"
	"github.com/opsdesk/incidents/storage"
)

func loadPage(store storage.Store, filter *incident.Filter) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		query := store.Filter(filter)

		incidents, err := query.All(ctx)
		if err != nil {
			return errMsg{err: err}
		}

		total, err := query.Count(ctx)
		if err != nil {
			return errMsg{err: err}
		}

		return pageLoadedMsg{incidents: incidents, total: total}
	}
}

func setActive(store storage.Store, id int64, active bool) tea.Cmd {
	return func() tea.Msg {
		n, err := store.Update(context.Background(), incident.ByID(id), incident.NewChanges().SetActive(active))
		if err != nil {
			return errMsg{err: err}
		}
		if n == 0 {
			return errMsg{err: &incident.NotFoundError{ID: id}}
		}
		return mutatedMsg{message: fmt.Sprintf("#%d is_active=%t", id, active)}
	}
}

func advanceStatus(store storage.Store, inc *incident.Incident) tea.Cmd {
	updated := inc.Clone()
	updated.Status = inc.Status.Next()

	return func() tea.Msg {
		if err := store.Save(context.Background(), updated, incident.FieldStatus); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{message: fmt.Sprintf("#%d %s -> %s", inc.ID, inc.Status, updated.Status)}
	}
}

func deleteIncident(store storage.Store, id int64) tea.Cmd {
	return func() tea.Msg {
		n, err := store.Delete(context.Background(), incident.ByID(id))
		if err != nil {
			return errMsg{err: err}
		}
		if n == 0 {
			return errMsg{err: &incident.NotFoundError{ID: id}}
		}
		return mutatedMsg{message: fmt.Sprintf("deleted #%d", id)}
	}
}
