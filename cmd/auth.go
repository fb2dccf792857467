package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

// AuthStatusReport is written by `auth status --json`.
type AuthStatusReport struct {
	Path      string     `json:"path"`
	Cached    bool       `json:"cached"`
	Valid     bool       `json:"valid"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Remaining string     `json:"remaining,omitempty"`
}

// AuthLogin discards any cached token and runs the full sign-in flow.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.cache.Clear(); err != nil {
		return err
	}

	authz, err := r.session().Authorize(ctx, r.credentials())
	if err != nil {
		return err
	}

	r.logger.Info("token cached", "path", r.cache.Path())
	return r.writePlain("✓ Signed in as %s (token valid until %s)\n",
		r.config.Credentials.Username, authz.Token.ExpiresAt.Local().Format(time.DateTime))
}

// AuthLogout removes the cached token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.cache.Clear(); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus reports on the cached token without touching the network.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	token, err := r.cache.Load()
	if err != nil {
		r.logger.Warn("token cache is unreadable", "path", r.cache.Path(), "error", err)
	}

	now := r.now()
	report := AuthStatusReport{Path: r.cache.Path(), Cached: token != nil}
	if token != nil {
		report.Valid = token.IsValid(now)
		report.ExpiresAt = &token.ExpiresAt
		if report.Valid {
			report.Remaining = token.Remaining(now).Round(time.Second).String()
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, true)
	}

	switch {
	case !report.Cached:
		return r.writePlain("✗ Not signed in\nRun 'mlbv auth login' to sign in.\n")
	case !report.Valid:
		return r.writePlain("✗ Cached token expired at %s\nRun 'mlbv auth login' to refresh it.\n",
			token.ExpiresAt.Local().Format(time.DateTime))
	default:
		return r.writePlain("✓ Signed in\nToken: %s\nExpires in: %s\n", report.Path, report.Remaining)
	}
}
