package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-fit-keeper/internal/logger"
	"github.com/MKhiriev/go-fit-keeper/internal/service"
	"github.com/MKhiriev/go-fit-keeper/models"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services, buildInfo: buildInfo}, nil
}

// Run opens the engine dashboard and blocks until the user quits.
func (t *TUI) Run(ctx context.Context) error {
	migrations := newProgressFeed()
	t.services.Migration.Subscribe(migrations.publish)

	pages := map[string]tea.Model{
		"status":    newStatusModel(ctx, t.services),
		"conflicts": newConflictsModel(ctx, t.services),
		"migration": newMigrationModel(ctx, t.services, migrations),
	}

	root := NewRootModel(pages, "status", t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
