// submodule cmd contains command definitions
package main

import (
	"fmt"
	"time"

	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/urfave/cli/v3"
)

// dateFlags select the game date. --date wins over --yesterday and --tomorrow; the default is today.
func dateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "date",
			Aliases: []string{"d"},
			Usage:   "Game date (YYYY-MM-DD, MM-DD-YYYY or MM/DD/YYYY)",
		},
		&cli.BoolFlag{
			Name:    "yesterday",
			Aliases: []string{"y"},
			Usage:   "Use yesterday's date",
		},
		&cli.BoolFlag{
			Name:    "tomorrow",
			Aliases: []string{"t"},
			Usage:   "Use tomorrow's date",
		},
	}
}

func teamFlag(required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     "team",
		Usage:    "Three-letter team code, e.g. TOR",
		Required: required,
	}
}

func gameNumberFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "game-number",
		Aliases: []string{"g"},
		Usage:   "Game of a doubleheader (1 or 2)",
	}
}

func urlFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "url",
		Usage: "Print the URL instead of starting the player",
	}
}

func filterFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "Only show al, nl, a division (ale, alc, alw, nle, nlc, nlw) or favs",
	}
}

func withFlags(groups ...[]cli.Flag) []cli.Flag {
	var flags []cli.Flag
	for _, g := range groups {
		flags = append(flags, g...)
	}
	return flags
}

// gameDate reads the date flags relative to the runner's clock.
func (r *Runner) gameDate(cmd *cli.Command) (time.Time, error) {
	if s := cmd.String("date"); s != "" {
		return shared.ParseGameDate(s)
	}

	today := shared.CalendarDate(r.now())
	switch {
	case cmd.Bool("yesterday") && cmd.Bool("tomorrow"):
		return time.Time{}, fmt.Errorf("%w: --yesterday and --tomorrow are mutually exclusive", shared.ErrInvalidDate)
	case cmd.Bool("yesterday"):
		return today.AddDate(0, 0, -1), nil
	case cmd.Bool("tomorrow"):
		return today.AddDate(0, 0, 1), nil
	default:
		return today, nil
	}
}

func gameNumber(cmd *cli.Command) *int {
	if !cmd.IsSet("game-number") {
		return nil
	}
	n := int(cmd.Int("game-number"))
	return &n
}

func (r *Runner) scheduleFilter(cmd *cli.Command) (*models.ScheduleFilter, error) {
	return models.ParseScheduleFilter(cmd.String("filter"), r.config.Favorites.Teams)
}

// playCommand resolves and plays a full game
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a team's game",
		Flags: withFlags(
			[]cli.Flag{teamFlag(true)},
			dateFlags(),
			[]cli.Flag{
				&cli.StringFlag{
					Name:  "feed",
					Usage: "Broadcast feed: home, away or national (default: the team's side)",
				},
				&cli.BoolFlag{
					Name:    "audio",
					Aliases: []string{"a"},
					Usage:   "Play the radio broadcast",
				},
				gameNumberFlag(),
				urlFlag(),
			},
		),
		Action: r.Play,
	}
}

// condensedCommand plays the condensed game highlight
func condensedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "condensed",
		Usage: "Play a team's condensed game",
		Flags: withFlags(
			[]cli.Flag{teamFlag(true)},
			dateFlags(),
			[]cli.Flag{gameNumberFlag(), urlFlag()},
		),
		Action: r.Condensed,
	}
}

// recapCommand plays one team's recap or every recap for the day
func recapCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recap",
		Usage: "Play recaps for a team or for every game of the day",
		Flags: withFlags(
			[]cli.Flag{teamFlag(false)},
			dateFlags(),
			[]cli.Flag{filterFlag(), gameNumberFlag(), urlFlag()},
		),
		Action: r.Recap,
	}
}

// scheduleCommand renders the schedule table
func scheduleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "schedule",
		Aliases: []string{"sched"},
		Usage:   "Show the schedule for a day or a range of days",
		Flags: withFlags(
			dateFlags(),
			[]cli.Flag{
				&cli.IntFlag{
					Name:  "days",
					Usage: "Show today through today+N (negative N looks back)",
				},
				filterFlag(),
				&cli.BoolFlag{
					Name:  "scores",
					Usage: "Show scores (default from config)",
				},
				&cli.BoolFlag{
					Name:  "no-scores",
					Usage: "Hide scores",
				},
				&cli.BoolFlag{
					Name:  "json",
					Usage: "Output JSON",
				},
			},
		),
		Action: r.Schedule,
	}
}

// authCommand handles the cached session token
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the MLB.tv session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Sign in and cache a fresh token",
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Remove the cached token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show whether the cached token is valid",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// initCommand writes a config file with prompted credentials
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "username",
				Usage: "MLB.tv username (prompted when omitted)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: r.Init,
	}
}

// historyCommand lists watched games
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List watched games",
		Flags: []cli.Flag{
			teamFlag(false),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of entries",
				Value:   20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Delete all watch history",
			},
		},
		Action: r.History,
	}
}

// setupCommand initializes the database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive game selection.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Pick a game interactively",
		Flags:   dateFlags(),
		Action:  r.TUI,
	}
}
