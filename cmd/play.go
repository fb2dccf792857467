package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play resolves team's game on the selected date and plays it, or prints the URL with --url.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	team, err := models.ParseTeamCode(cmd.String("team"))
	if err != nil {
		return err
	}
	date, err := r.gameDate(cmd)
	if err != nil {
		return err
	}

	var feed *models.FeedType
	if cmd.IsSet("feed") {
		f, err := models.ParseFeedType(cmd.String("feed"))
		if err != nil {
			return err
		}
		feed = &f
	}

	client, err := r.authorize(ctx)
	if err != nil {
		return err
	}

	history, closeDB := r.history()
	defer closeDB()

	url, err := r.resolver(history).ResolvePlaybackURL(ctx, client, team, date, models.MediaTypeFor(cmd.Bool("audio")), feed, gameNumber(cmd))
	if err != nil {
		return err
	}
	if url == "" {
		return r.writePlain("No stream available for %s on %s\n", team.Name, date.Format(shared.DateLayout))
	}
	return r.deliver(ctx, cmd, url)
}

// Condensed plays the condensed game for team's game on the selected date.
func (r *Runner) Condensed(ctx context.Context, cmd *cli.Command) error {
	return r.highlight(ctx, cmd, models.CondensedGame)
}

// Recap plays team's recap, or every recap of the day when no team is given.
func (r *Runner) Recap(ctx context.Context, cmd *cli.Command) error {
	if cmd.String("team") != "" {
		return r.highlight(ctx, cmd, models.Recap)
	}

	date, err := r.gameDate(cmd)
	if err != nil {
		return err
	}
	filter, err := r.scheduleFilter(cmd)
	if err != nil {
		return err
	}

	links, err := r.resolver(nil).ResolveHighlights(ctx, date, models.Recap, filter)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		return r.writePlain("No recaps available for %s\n", date.Format(shared.DateLayout))
	}

	for _, link := range links {
		if cmd.Bool("url") {
			if err := r.writePlain("%s\t%s\n", link.Game.MatchupLabel(), link.URL); err != nil {
				return err
			}
			continue
		}
		r.logger.Info("playing recap", "game", link.Game.MatchupLabel())
		if err := r.player(ctx, link.URL); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) highlight(ctx context.Context, cmd *cli.Command, kind models.HighlightKind) error {
	team, err := models.ParseTeamCode(cmd.String("team"))
	if err != nil {
		return err
	}
	date, err := r.gameDate(cmd)
	if err != nil {
		return err
	}

	history, closeDB := r.history()
	defer closeDB()

	url, err := r.resolver(history).ResolveHighlightURL(ctx, team, date, kind, gameNumber(cmd))
	if err != nil {
		return err
	}
	if url == "" {
		return r.writePlain("No %s available for %s on %s\n", strings.ToLower(string(kind)), team.Name, date.Format(shared.DateLayout))
	}
	return r.deliver(ctx, cmd, url)
}

func (r *Runner) deliver(ctx context.Context, cmd *cli.Command, url string) error {
	if cmd.Bool("url") {
		return r.writePlain("%s\n", url)
	}
	if err := r.player(ctx, url); err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}
	return nil
}
