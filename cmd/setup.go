package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/desertthunder/mlbv/internal/repositories"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup initializes the database and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, applied, err := repositories.Open(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	if len(applied) == 0 {
		return r.writePlain("✓ Database is up to date: %s\n", r.config.Database.Path)
	}
	r.logger.Info("applied migrations", "versions", applied)
	return r.writePlain("✓ Database ready: %s (%d migrations applied)\n", r.config.Database.Path, len(applied))
}

// Init writes a config file from the embedded template, filling in prompted credentials.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(r.configPath); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%w: %s already exists; use --force to overwrite", shared.ErrInvalidConfig, r.configPath)
	}

	username := cmd.String("username")
	if username == "" {
		if err := r.writePlain("MLB.tv username: "); err != nil {
			return err
		}
		line, err := bufio.NewReader(r.input).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("%w: failed to read username: %v", shared.ErrMissingCredentials, err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrMissingCredentials)
	}

	if err := r.writePlain("MLB.tv password: "); err != nil {
		return err
	}
	password, err := r.readPassword()
	if err != nil {
		return err
	}
	if err := r.writePlain("\n"); err != nil {
		return err
	}

	creds := shared.CredentialsConfig{Username: username, Password: password}
	if err := shared.WriteConfigFile(r.configPath, creds, cmd.Bool("force")); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", r.configPath)
	return r.writePlain("✓ Configuration written to %s\n", r.configPath)
}

// readTerminalPassword reads a password from stdin without echo. It refuses to run without a terminal.
func readTerminalPassword() (string, error) {
	fd := os.Stdin.Fd()
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%w: the password prompt needs a terminal", shared.ErrMissingCredentials)
	}
	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}
