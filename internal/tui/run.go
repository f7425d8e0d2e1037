package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the clicker screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	model := NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := program.Run()
	opts.Controller.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
