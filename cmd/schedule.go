package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/mlbv/internal/formatter"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/services"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/urfave/cli/v3"
)

// rangeScheduler is implemented by schedule clients that can fetch several days at once.
type rangeScheduler interface {
	FetchScheduleByRange(ctx context.Context, start, end time.Time, filter *models.ScheduleFilter) ([]models.DaySchedule, error)
}

var _ rangeScheduler = (*services.ScheduleClient)(nil)

// Schedule renders the games for a day, or for a range with --days.
func (r *Runner) Schedule(ctx context.Context, cmd *cli.Command) error {
	filter, err := r.scheduleFilter(cmd)
	if err != nil {
		return err
	}

	days, err := r.fetchDays(ctx, cmd, filter)
	if err != nil {
		return err
	}

	opts := formatter.ScheduleOptions{
		Scores:        r.config.Display.Scores,
		Favorites:     r.config.Favorites.Teams,
		FavoriteColor: r.config.Favorites.Color,
	}
	if cmd.IsSet("scores") {
		opts.Scores = cmd.Bool("scores")
	}
	if cmd.Bool("no-scores") {
		opts.Scores = false
	}

	if cmd.Bool("json") {
		return formatter.WriteScheduleJSON(r.output, days, opts)
	}
	if len(days) == 0 {
		return r.writePlain("No games scheduled\n")
	}
	return formatter.RenderSchedule(r.output, days, opts)
}

func (r *Runner) fetchDays(ctx context.Context, cmd *cli.Command, filter *models.ScheduleFilter) ([]models.DaySchedule, error) {
	if cmd.IsSet("days") {
		start, end := shared.DayRange(r.now(), int(cmd.Int("days")))
		if rs, ok := r.schedule.(rangeScheduler); ok {
			return rs.FetchScheduleByRange(ctx, start, end, filter)
		}

		var days []models.DaySchedule
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			day, err := r.schedule.FetchScheduleByDate(ctx, d, filter)
			if err != nil {
				return nil, fmt.Errorf("schedule for %s: %w", d.Format(shared.DateLayout), err)
			}
			if day != nil {
				days = append(days, *day)
			}
		}
		return days, nil
	}

	date, err := r.gameDate(cmd)
	if err != nil {
		return nil, err
	}
	day, err := r.schedule.FetchScheduleByDate(ctx, date, filter)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}
	return []models.DaySchedule{*day}, nil
}
