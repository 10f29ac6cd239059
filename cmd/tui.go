package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mwl/internal/shared"
	"github.com/desertthunder/mwl/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive watchlist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.watchlist == nil {
		return fmt.Errorf("%w: watchlist client not initialized", shared.ErrServiceUnavailable)
	}
	if !r.isTerminal() {
		return fmt.Errorf("%w: run a subcommand such as 'mwl list' instead", shared.ErrNotTerminal)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.UI.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, ui.Params{
		Watchlist:   r.watchlist,
		Logger:      fileLogger,
		NotifyDelay: r.config.UI.NotifyDelay(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
