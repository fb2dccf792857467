package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
)

//go:embed config.example.toml
var exampleConf []byte

const appDir = "mlbv"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Stream      StreamConfig      `toml:"stream"`
	Favorites   FavoritesConfig   `toml:"favorites"`
	Display     DisplayConfig     `toml:"display"`
	Cache       CacheConfig       `toml:"cache"`
	Database    DatabaseConfig    `toml:"database"`
}

// CredentialsConfig contains the MLB.tv account credentials.
type CredentialsConfig struct {
	Username string `toml:"username" env:"MLBV_USERNAME"`
	Password string `toml:"password" env:"MLBV_PASSWORD"`
}

// StreamConfig contains playback preferences.
type StreamConfig struct {
	VideoPlayer string `toml:"video_player" env:"MLBV_VIDEO_PLAYER"`
	Language    string `toml:"language" env:"MLBV_LANGUAGE"`
}

// FavoritesConfig lists favorite team codes and the color used to highlight them.
type FavoritesConfig struct {
	Teams []string `toml:"teams" env:"MLBV_FAVORITES" envSeparator:","`
	Color string   `toml:"color"`
}

// DisplayConfig contains schedule display settings.
type DisplayConfig struct {
	Scores bool `toml:"scores"`
}

// CacheConfig contains token cache and request pacing settings.
type CacheConfig struct {
	Dir       string  `toml:"dir" env:"MLBV_CACHE_DIR"`
	RateLimit float64 `toml:"rate_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"MLBV_DATABASE_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// DefaultConfigPath returns config.toml inside the user's config directory.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, appDir, "config.toml"), nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Environment overrides are applied after parsing and paths are expanded.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// LoadOrDefault loads path when it exists and falls back to [DefaultConfig] with environment overrides otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return LoadConfig(path)
	}

	config := DefaultConfig()
	if err := config.finalize(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) finalize() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}

	var err error
	if c.Cache.Dir, err = ExpandPath(c.Cache.Dir); err != nil {
		return err
	}
	if c.Database.Path, err = ExpandPath(c.Database.Path); err != nil {
		return err
	}
	return nil
}

// HasCredentials reports whether both username and password are set.
func (c *Config) HasCredentials() bool {
	return c.Credentials.Username != "" && c.Credentials.Password != ""
}

// TokenCachePath returns the location of the cached session token.
func (c *Config) TokenCachePath() (string, error) {
	dir := c.Cache.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		dir = filepath.Join(base, appDir)
	}
	return filepath.Join(dir, "token.json"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || p == ":memory:" {
		return p, nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("%w: failed to expand %q: %v", ErrInvalidConfig, p, err)
	}
	return expanded, nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	return WriteConfigFile(path, CredentialsConfig{}, false)
}

var (
	usernameLine = regexp.MustCompile(`(?m)^username = .*$`)
	passwordLine = regexp.MustCompile(`(?m)^password = .*$`)
)

// WriteConfigFile renders the embedded template with the given credentials and writes it to path.
//
// The template's comments are preserved. An existing file is only replaced when force is set.
func WriteConfigFile(path string, creds CredentialsConfig, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	username, err := tomlKeyValue("username", creds.Username)
	if err != nil {
		return err
	}
	password, err := tomlKeyValue("password", creds.Password)
	if err != nil {
		return err
	}

	out := usernameLine.ReplaceAllLiteral(exampleConf, username)
	out = passwordLine.ReplaceAllLiteral(out, password)

	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// tomlKeyValue renders a single `key = "value"` line with TOML string escaping.
func tomlKeyValue(key, value string) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]string{key: value}); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
