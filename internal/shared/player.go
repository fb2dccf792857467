package shared

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	getRuntime = func() string { return runtime.GOOS }
	lookPath   = exec.LookPath
)

// PlayerCommand is a resolved media player invocation. The media URL is appended to Args.
type PlayerCommand struct {
	Path string
	Args []string
}

// ResolvePlayer finds the configured player on PATH, falling back to the system default opener.
//
// preferred may carry extra arguments, e.g. "mpv --fs".
func ResolvePlayer(preferred string, logger *log.Logger) (PlayerCommand, error) {
	if fields := strings.Fields(preferred); len(fields) > 0 {
		path, err := lookPath(fields[0])
		if err == nil {
			logger.Debug("found media player", "player", fields[0], "path", path)
			return PlayerCommand{Path: path, Args: fields[1:]}, nil
		}
		logger.Warn("media player not found in PATH", "player", fields[0])
	}

	logger.Warn("no valid media player configured; falling back to system default")

	rt := getRuntime()
	switch rt {
	case "darwin":
		return PlayerCommand{Path: "open"}, nil
	case "windows":
		return PlayerCommand{Path: "cmd", Args: []string{"/C", "start"}}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return PlayerCommand{Path: "xdg-open"}, nil
	default:
		return PlayerCommand{}, fmt.Errorf("%w: unsupported platform %s", ErrPlayerNotFound, rt)
	}
}

// Command builds the [exec.Cmd] that plays url.
func (p PlayerCommand) Command(ctx context.Context, url string) *exec.Cmd {
	args := append(append([]string{}, p.Args...), url)
	return exec.CommandContext(ctx, p.Path, args...)
}

// PlayURL resolves the player, then runs it and waits for it to exit.
func PlayURL(ctx context.Context, preferred, url string, logger *log.Logger) error {
	player, err := ResolvePlayer(preferred, logger)
	if err != nil {
		return err
	}

	cmd := player.Command(ctx, url)
	logger.Info("starting media player", "player", player.Path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPlayerFailed, player.Path, err)
	}
	return nil
}
