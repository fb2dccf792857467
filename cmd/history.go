package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mlbv/internal/formatter"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/urfave/cli/v3"
)

// History lists watched games, newest first, or clears them with --clear.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openHistory()
	if err != nil {
		return fmt.Errorf("failed to open watch history: %w", err)
	}
	defer closeDB()

	if cmd.Bool("clear") {
		n, err := repo.Clear()
		if err != nil {
			return err
		}
		return r.writePlain("✓ Removed %d entries\n", n)
	}

	limit := int(cmd.Int("limit"))
	var records []*models.WatchRecord
	if code := cmd.String("team"); code != "" {
		team, err := models.ParseTeamCode(code)
		if err != nil {
			return err
		}
		records, err = repo.ListByTeam(team.Code, limit)
		if err != nil {
			return err
		}
	} else if records, err = repo.List(limit); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return formatter.WriteHistoryJSON(r.output, records, nil)
	}
	return formatter.RenderHistory(r.output, records, nil)
}
