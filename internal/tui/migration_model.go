// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/models"
)

const migrationRefreshInterval = 200 * time.Millisecond

// progressFeed hands step transitions published by the migration
// service over to the bubbletea loop. The service calls publish from
// its own goroutine, the model polls latest on a timer.
type progressFeed struct {
	mu     sync.Mutex
	latest models.MigrationProgress
	seen   bool
}

func newProgressFeed() *progressFeed {
	return &progressFeed{}
}

func (f *progressFeed) publish(p models.MigrationProgress) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = p
	f.seen = true
}

func (f *progressFeed) snapshot() (models.MigrationProgress, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.seen
}

// migrationModel drives a one-time migration: start, watch the
// weighted progress bar, roll back a failed attempt.
type migrationModel struct {
	ctx      context.Context
	services *service.ClientServices
	feed     *progressFeed

	bar      progress.Model
	current  models.MigrationProgress
	started  bool
	running  bool
	errorMsg string
}

func newMigrationModel(ctx context.Context, services *service.ClientServices, feed *progressFeed) migrationModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 50

	return migrationModel{
		ctx:      ctx,
		services: services,
		feed:     feed,
		bar:      bar,
	}
}

func (m migrationModel) Init() tea.Cmd {
	return nil
}

func (m migrationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case migrationTickMsg:
		if latest, ok := m.feed.snapshot(); ok {
			m.current = latest
		}
		if !m.running {
			return m, nil
		}
		return m, migrationTick()

	case migrationDoneMsg:
		m.running = false
		if latest, ok := m.feed.snapshot(); ok {
			m.current = latest
		}
		if msg.err != nil {
			m.errorMsg = humanizeServerUnavailableError(msg.err)
		} else {
			m.errorMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			if m.running {
				return m, nil
			}
			return m, navigate("status")

		case key.Matches(msg, keys.enter):
			if m.running {
				return m, nil
			}
			session, ok := m.services.Session.Active()
			if !ok {
				m.errorMsg = "войдите в систему перед миграцией"
				return m, nil
			}
			m.started = true
			m.running = true
			m.errorMsg = ""
			return m, tea.Batch(m.runMigration(session.UserID), migrationTick())

		case key.Matches(msg, keys.rollback):
			if m.running || m.current.MigrationID == "" {
				return m, nil
			}
			m.running = true
			return m, tea.Batch(m.runRollback(m.current.MigrationID), migrationTick())
		}
	}

	return m, nil
}

func (m migrationModel) View() string {
	var b strings.Builder

	if !m.started {
		b.WriteString("Перенос всех локальных данных на сервер.\n")
		b.WriteString("Нажмите enter, чтобы начать.")
	} else {
		b.WriteString(m.bar.ViewAs(m.current.Percentage / 100))
		b.WriteString(fmt.Sprintf("\n\nСтатус: %s\n", m.current.Status))
		if m.current.CurrentStep != "" {
			b.WriteString("Шаг:    " + m.current.CurrentStep + "\n")
		}
		if m.current.Message != "" {
			b.WriteString(m.current.Message + "\n")
		}

		for _, warning := range m.current.Warnings {
			b.WriteString("  ! " + fitText(warning, 60) + "\n")
		}
		for _, failure := range m.current.Errors {
			b.WriteString("  ✗ " + fitText(failure, 60) + "\n")
		}
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errorMsg))
	}

	hotKeys := "enter: начать | esc: назад"
	if m.current.Status == models.MigrationFailed {
		hotKeys = "enter: начать заново | b: откатить | esc: назад"
	}

	return renderPage("МИГРАЦИЯ ДАННЫХ", b.String(), hotKeys)
}

func (m migrationModel) runMigration(userID string) tea.Cmd {
	return func() tea.Msg {
		mc, err := m.services.Migration.Migrate(m.ctx, userID)
		return migrationDoneMsg{mc: mc, err: err}
	}
}

func (m migrationModel) runRollback(migrationID string) tea.Cmd {
	return func() tea.Msg {
		mc, err := m.services.Migration.Rollback(m.ctx, migrationID)
		return migrationDoneMsg{mc: mc, err: err}
	}
}

func migrationTick() tea.Cmd {
	return tea.Tick(migrationRefreshInterval, func(time.Time) tea.Msg {
		return migrationTickMsg{}
	})
}
