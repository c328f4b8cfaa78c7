package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-keeper/models"
)

// NavigateTo switches the active page. Payload, when set, is delivered
// to the opened page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

type statusLoadedMsg struct {
	status models.EngineStatus
	err    error
}

type statusTickMsg struct{}

type syncDoneMsg struct {
	result models.SyncResult
	err    error
}

type conflictsLoadedMsg struct {
	items []models.ConflictRecord
	err   error
}

type conflictAckedMsg struct {
	err error
}

type migrationDoneMsg struct {
	mc  models.MigrationContext
	err error
}

type migrationTickMsg struct{}
