package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/auth"
	"github.com/desertthunder/mlbv/internal/repositories"
	"github.com/desertthunder/mlbv/internal/services"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/desertthunder/mlbv/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Player plays a resolved URL and waits for it to finish.
type Player func(ctx context.Context, url string) error

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Dependencies left nil in [RunnerOpts] are built from the configuration once it is loaded.
type Runner struct {
	config       *shared.Config
	configPath   string
	httpClient   *http.Client
	schedule     services.ScheduleService
	gateway      tasks.GatewayFactory
	endpoints    *auth.Endpoints
	cache        *auth.TokenCache
	logger       *log.Logger
	output       io.Writer
	input        io.Reader
	player       Player
	readPassword func() (string, error)
	now          func() time.Time
	verbosity    int
	injected     RunnerOpts
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config       *shared.Config
	ConfigPath   string
	HTTPClient   *http.Client
	Schedule     services.ScheduleService
	Gateway      tasks.GatewayFactory
	Endpoints    *auth.Endpoints
	Cache        *auth.TokenCache
	Logger       *log.Logger
	Output       io.Writer
	Input        io.Reader
	Player       Player
	ReadPassword func() (string, error)
	Now          func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReadPassword == nil {
		opts.ReadPassword = readTerminalPassword
	}

	r := &Runner{
		config:       opts.Config,
		configPath:   opts.ConfigPath,
		httpClient:   opts.HTTPClient,
		schedule:     opts.Schedule,
		gateway:      opts.Gateway,
		endpoints:    opts.Endpoints,
		cache:        opts.Cache,
		logger:       opts.Logger,
		output:       opts.Output,
		input:        opts.Input,
		player:       opts.Player,
		readPassword: opts.ReadPassword,
		now:          opts.Now,
		injected:     opts,
	}
	return r
}

func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:                   "mlbv",
		Usage:                  "Watch and browse MLB.tv games from the terminal",
		Version:                "0.3.0",
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Increase log verbosity (repeatable)",
				Config:  cli.BoolConfig{Count: &r.verbosity},
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		playCommand, condensedCommand, recapCommand, scheduleCommand, authCommand, initCommand, historyCommand,
		setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure loads the configuration and builds the dependencies that were not injected.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	shared.SetVerbosity(r.logger, r.verbosity)

	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}
	if r.configPath == "" {
		path, err := shared.DefaultConfigPath()
		if err != nil {
			return ctx, err
		}
		r.configPath = path
	}

	if r.config == nil {
		config, err := shared.LoadOrDefault(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
		r.logger.Debug("configuration loaded", "path", r.configPath)
	}

	if r.httpClient == nil {
		r.httpClient = shared.NewHTTPClient(r.config.Cache.RateLimit)
	}
	if err := r.wire(); err != nil {
		return ctx, err
	}
	return ctx, nil
}

// wire builds the logger-bound dependencies that were not injected through [RunnerOpts].
func (r *Runner) wire() error {
	if r.injected.Schedule == nil {
		r.schedule = services.NewScheduleClient("", r.httpClient, shared.WithLogger(r.logger, "component", "schedule"))
	}
	if r.injected.Gateway == nil {
		logger := shared.WithLogger(r.logger, "component", "gateway")
		r.gateway = func(client *http.Client) services.MediaGateway {
			return services.NewMediaGatewayClient("", client, logger)
		}
	}
	if r.injected.Cache == nil {
		path, err := r.config.TokenCachePath()
		if err != nil {
			return err
		}
		r.cache = auth.NewTokenCache(path, shared.WithLogger(r.logger, "component", "cache"))
	}
	if r.injected.Player == nil {
		preferred := r.config.Stream.VideoPlayer
		logger := shared.WithLogger(r.logger, "component", "player")
		r.player = func(ctx context.Context, url string) error {
			return shared.PlayURL(ctx, preferred, url, logger)
		}
	}
	return nil
}

// SetLogger replaces the logger, e.g. to keep log lines off the TUI.
//
// Once the configuration is loaded, dependencies built from it are rebuilt so they log to the new logger too.
func (r *Runner) SetLogger(logger *log.Logger) error {
	r.logger = logger
	if r.config == nil {
		return nil
	}
	return r.wire()
}

// session builds an authorization session over the shared client and token cache.
func (r *Runner) session() *auth.Session {
	return auth.NewSession(auth.SessionOpts{
		Client:    r.httpClient,
		Endpoints: r.endpoints,
		Cache:     r.cache,
		Logger:    shared.WithLogger(r.logger, "component", "auth"),
		Now:       r.now,
	})
}

func (r *Runner) credentials() auth.Credentials {
	return auth.Credentials{Username: r.config.Credentials.Username, Password: r.config.Credentials.Password}
}

// authorize returns an authorized HTTP client, reusing the cached token when possible.
func (r *Runner) authorize(ctx context.Context) (*http.Client, error) {
	authz, err := r.session().Authorize(ctx, r.credentials())
	if err != nil {
		return nil, err
	}
	return authz.Client(ctx), nil
}

// history opens the watch history for recording. Failures are logged and yield a nil recorder so playback still works.
func (r *Runner) history() (tasks.HistoryRecorder, func()) {
	repo, closeDB, err := r.openHistory()
	if err != nil {
		r.logger.Warn("watch history unavailable", "path", r.config.Database.Path, "error", err)
		return nil, func() {}
	}
	return repo, closeDB
}

func (r *Runner) openHistory() (*repositories.WatchHistoryRepository, func(), error) {
	db, applied, err := repositories.Open(r.config.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	if len(applied) > 0 {
		r.logger.Debug("applied migrations", "versions", applied)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return repositories.NewWatchHistoryRepository(db), func() { db.Close() }, nil
}

// resolver builds a resolver that records into history when it is available.
func (r *Runner) resolver(history tasks.HistoryRecorder) *tasks.Resolver {
	return tasks.NewResolver(tasks.ResolverOpts{
		Schedule: r.schedule,
		Gateway:  r.gateway,
		History:  history,
		Logger:   shared.WithLogger(r.logger, "component", "resolver"),
		Language: r.config.Stream.Language,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
