package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/models"
)

// conflictsModel lists manual-strategy conflicts awaiting an explicit
// winner and lets the user acknowledge them one by one.
type conflictsModel struct {
	ctx      context.Context
	services *service.ClientServices

	items    []models.ConflictRecord
	cursor   int
	errorMsg string
}

func newConflictsModel(ctx context.Context, services *service.ClientServices) conflictsModel {
	return conflictsModel{ctx: ctx, services: services}
}

func (m conflictsModel) Init() tea.Cmd {
	return m.loadConflicts()
}

func (m conflictsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case conflictsLoadedMsg:
		if msg.err != nil {
			m.errorMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil

	case conflictAckedMsg:
		if msg.err != nil {
			m.errorMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.errorMsg = ""
		return m, m.loadConflicts()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			return m, navigate("status")

		case key.Matches(msg, keys.up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, keys.down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, keys.local):
			return m, m.acknowledge(models.WinnerLocal)

		case key.Matches(msg, keys.remote):
			return m, m.acknowledge(models.WinnerRemote)

		case key.Matches(msg, keys.refresh):
			return m, m.loadConflicts()
		}
	}

	return m, nil
}

func (m conflictsModel) View() string {
	var b strings.Builder

	if len(m.items) == 0 {
		b.WriteString("Нет конфликтов, требующих решения")
	}

	for i, conflict := range m.items {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s/%s\n", marker, conflict.Category, conflict.CategoryID))
		b.WriteString(fmt.Sprintf("    локальная копия:  %s\n",
			conflict.LocalModifiedAt.Local().Format("2006-01-02 15:04:05")))
		b.WriteString(fmt.Sprintf("    удалённая копия:  %s\n",
			conflict.RemoteModifiedAt.Local().Format("2006-01-02 15:04:05")))
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errorMsg))
	}

	return renderPage("КОНФЛИКТЫ", b.String(),
		"l: оставить локальную | p: принять удалённую | r: обновить | esc: назад")
}

func (m conflictsModel) loadConflicts() tea.Cmd {
	return func() tea.Msg {
		session, ok := m.services.Session.Active()
		if !ok {
			return conflictsLoadedMsg{err: service.ErrNoActiveSession}
		}
		items, err := m.services.Conflicts.PendingConflicts(m.ctx, session.UserID)
		return conflictsLoadedMsg{items: items, err: err}
	}
}

func (m conflictsModel) acknowledge(winner models.ConflictWinner) tea.Cmd {
	if m.cursor >= len(m.items) {
		return nil
	}
	conflictID := m.items[m.cursor].ID

	return func() tea.Msg {
		err := m.services.Conflicts.Acknowledge(m.ctx, conflictID, winner)
		return conflictAckedMsg{err: err}
	}
}
