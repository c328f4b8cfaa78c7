// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/models"
)

const statusRefreshInterval = 2 * time.Second

// statusModel is the landing page: reachability, queue depth, delta
// watermarks per category and pending conflicts.
type statusModel struct {
	ctx      context.Context
	services *service.ClientServices

	status     models.EngineStatus
	lastResult *models.SyncResult

	syncing  bool
	spin     syncModel
	errorMsg string
}

func newStatusModel(ctx context.Context, services *service.ClientServices) statusModel {
	return statusModel{
		ctx:      ctx,
		services: services,
		spin:     newSyncModel(),
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.loadStatus(), statusTick())
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusTickMsg:
		return m, tea.Batch(m.loadStatus(), statusTick())

	case statusLoadedMsg:
		if msg.err != nil {
			m.errorMsg = humanizeServerUnavailableError(msg.err)
			return m, nil
		}
		m.status = msg.status
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		result := msg.result
		m.lastResult = &result
		if msg.err != nil {
			m.errorMsg = humanizeServerUnavailableError(msg.err)
		} else {
			m.errorMsg = ""
		}
		return m, m.loadStatus()

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin.spinner, cmd = m.spin.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.sync):
			if m.syncing {
				return m, nil
			}
			session, ok := m.services.Session.Active()
			if !ok {
				m.errorMsg = "войдите в систему перед синхронизацией"
				return m, nil
			}
			m.syncing = true
			m.errorMsg = ""
			return m, tea.Batch(m.runSync(session.UserID), m.spin.spinner.Tick)

		case key.Matches(msg, keys.conflicts):
			return m, navigate("conflicts")

		case key.Matches(msg, keys.migrate):
			return m, navigate("migration")

		case key.Matches(msg, keys.refresh):
			return m, m.loadStatus()
		}
	}

	return m, nil
}

func (m statusModel) View() string {
	var b strings.Builder

	if m.status.Online {
		b.WriteString("Сеть:         ● онлайн\n")
	} else {
		b.WriteString("Сеть:         ○ офлайн\n")
	}

	user := m.status.ActiveUserID
	if user == "" {
		user = "-"
	}
	b.WriteString("Пользователь: " + user + "\n")
	b.WriteString(fmt.Sprintf("Очередь:      %d операций\n", m.status.QueueLength))
	b.WriteString(fmt.Sprintf("Ошибочные:    %d\n", len(m.status.FailedOperations)))
	b.WriteString(fmt.Sprintf("Конфликты:    %d\n", m.status.PendingConflicts))

	b.WriteString("\nПоследняя синхронизация:\n")
	for _, category := range models.AllDataCategories {
		watermark, ok := m.status.LastSync[category]
		stamp := "-"
		if ok && !watermark.IsZero() {
			stamp = watermark.Local().Format("2006-01-02 15:04:05")
		}
		b.WriteString(fmt.Sprintf("  %-13s %s\n", category, stamp))
	}

	for _, op := range m.status.FailedOperations {
		b.WriteString(fmt.Sprintf("\n  ✗ %s %s/%s: %s",
			op.Type, op.Category, op.CategoryID, fitText(op.LastError, 40)))
	}

	if m.syncing {
		b.WriteString("\n" + m.spin.View())
	} else if m.lastResult != nil {
		b.WriteString(fmt.Sprintf("\nЗагружено: %d, Скачано: %d, Конфликтов: %d",
			m.lastResult.SyncedItems.Uploaded,
			m.lastResult.SyncedItems.Downloaded,
			m.lastResult.SyncedItems.Conflicts))
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errorMsg))
	}

	return renderPage("СОСТОЯНИЕ ДВИЖКА СИНХРОНИЗАЦИИ", b.String(),
		"s: синхронизировать | c: конфликты | m: миграция | v: о программе")
}

func (m statusModel) loadStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.services.Sync.Status(m.ctx)
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m statusModel) runSync(userID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Sync.SyncAll(m.ctx, userID)
		return syncDoneMsg{result: result, err: err}
	}
}

func statusTick() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

func navigate(page string) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page} }
}
