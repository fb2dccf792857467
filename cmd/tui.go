package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/desertthunder/mlbv/internal/tasks"
	"github.com/desertthunder/mlbv/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive game picker.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	date, err := r.gameDate(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := filepath.Join(os.TempDir(), "mlbv-tui.log")
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := r.SetLogger(fileLogger); err != nil {
		return err
	}

	history, closeDB := r.history()
	defer closeDB()

	model := ui.NewModel(ctx, ui.Opts{
		Schedule:      r.schedule,
		Play:          r.tuiPlay(history),
		Date:          date,
		Favorites:     r.config.Favorites.Teams,
		FavoriteColor: r.config.Favorites.Color,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// tuiPlay authorizes, resolves the picked game with progress reporting, then plays it.
func (r *Runner) tuiPlay(history tasks.HistoryRecorder) ui.PlayFunc {
	return func(ctx context.Context, req ui.PlayRequest, progress chan<- tasks.ProgressUpdate) (string, error) {
		client, err := r.authorize(ctx)
		if err != nil {
			return "", err
		}

		resolver := tasks.NewResolver(tasks.ResolverOpts{
			Schedule: r.schedule,
			Gateway:  r.gateway,
			History:  history,
			Logger:   shared.WithLogger(r.logger, "component", "resolver"),
			Language: r.config.Stream.Language,
			Progress: progress,
		})

		date, err := shared.ParseGameDate(req.Game.OfficialDate)
		if err != nil {
			return "", err
		}
		number := req.Game.GameNumber
		url, err := resolver.ResolvePlaybackURL(ctx, client, req.Team, date, req.Media, req.Feed, &number)
		if err != nil || url == "" {
			return url, err
		}
		return url, r.player(ctx, url)
	}
}
