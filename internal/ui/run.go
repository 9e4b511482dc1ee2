package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/castaway/internal/game"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, r *game.Runner, theme string) error {
	m := newModel(ctx, r, theme)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
