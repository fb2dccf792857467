package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Stream.VideoPlayer != "mpv" {
			t.Errorf("expected video player mpv, got %s", config.Stream.VideoPlayer)
		}

		if config.Stream.Language != "en" {
			t.Errorf("expected language en, got %s", config.Stream.Language)
		}

		if !config.Display.Scores {
			t.Error("expected scores to be shown by default")
		}

		if config.Cache.RateLimit != 4.0 {
			t.Errorf("expected rate limit 4.0, got %v", config.Cache.RateLimit)
		}

		if config.HasCredentials() {
			t.Error("expected template to have empty credentials")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Stream.VideoPlayer != defaultConfig.Stream.VideoPlayer {
			t.Errorf("created config video player doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("WriteConfigFile", func(t *testing.T) {
		t.Run("Fills Credentials And Keeps Comments", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "nested", "config.toml")
			creds := CredentialsConfig{Username: "fan@example.com", Password: `p"ss`}

			if err := WriteConfigFile(configPath, creds, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			raw, err := os.ReadFile(configPath)
			if err != nil {
				t.Fatalf("failed to read config: %v", err)
			}
			if !strings.Contains(string(raw), "# mlbv configuration") {
				t.Error("expected template comments to be preserved")
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if config.Credentials.Username != "fan@example.com" {
				t.Errorf("expected username fan@example.com, got %s", config.Credentials.Username)
			}
			if config.Credentials.Password != `p"ss` {
				t.Errorf("expected escaped password to round trip, got %s", config.Credentials.Password)
			}

			info, err := os.Stat(configPath)
			if err != nil {
				t.Fatalf("stat failed: %v", err)
			}
			if info.Mode().Perm() != 0600 {
				t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
			}
		})

		t.Run("Control Characters Round Trip", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			creds := CredentialsConfig{Username: "fän", Password: "a\x07b\vc\x01d\t\\e\"f\x7f"}

			if err := WriteConfigFile(configPath, creds, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("written config does not parse: %v", err)
			}
			if config.Credentials != creds {
				t.Errorf("expected %q, got %q", creds, config.Credentials)
			}
		})

		t.Run("Force Overwrites", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := WriteConfigFile(configPath, CredentialsConfig{Username: "a"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if err := WriteConfigFile(configPath, CredentialsConfig{Username: "b"}, false); err == nil {
				t.Error("expected error without force")
			}
			if err := WriteConfigFile(configPath, CredentialsConfig{Username: "b"}, true); err != nil {
				t.Fatalf("expected overwrite with force, got %v", err)
			}

			config, err := LoadConfig(configPath)
			if err != nil {
				t.Fatalf("failed to load config: %v", err)
			}
			if config.Credentials.Username != "b" {
				t.Errorf("expected username b, got %s", config.Credentials.Username)
			}
		})
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[credentials]
username = "user"
password = "secret"

[stream]
video_player = "vlc"

[favorites]
teams = ["TOR", "NYM"]

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Stream.VideoPlayer != "vlc" {
			t.Errorf("expected video player vlc, got %s", config.Stream.VideoPlayer)
		}

		if config.Stream.Language != "en" {
			t.Errorf("expected unset language to keep default en, got %s", config.Stream.Language)
		}

		if len(config.Favorites.Teams) != 2 || config.Favorites.Teams[0] != "TOR" {
			t.Errorf("expected favorites [TOR NYM], got %v", config.Favorites.Teams)
		}

		if !config.HasCredentials() {
			t.Error("expected credentials to be present")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[credentials\nusername="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("MLBV_USERNAME", "env-user")
		t.Setenv("MLBV_PASSWORD", "env-pass")
		t.Setenv("MLBV_FAVORITES", "BOS,NYY")

		config, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Username != "env-user" || config.Credentials.Password != "env-pass" {
			t.Errorf("expected env credentials, got %+v", config.Credentials)
		}
		if len(config.Favorites.Teams) != 2 || config.Favorites.Teams[1] != "NYY" {
			t.Errorf("expected favorites from env, got %v", config.Favorites.Teams)
		}
	})

	t.Run("Path Expansion", func(t *testing.T) {
		home, err := homedir.Dir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}

		config := DefaultConfig()
		if err := config.finalize(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := filepath.Join(home, ".mlbv", "mlbv.db")
		if config.Database.Path != want {
			t.Errorf("expected %s, got %s", want, config.Database.Path)
		}
	})

	t.Run("TokenCachePath", func(t *testing.T) {
		config := DefaultConfig()
		config.Cache.Dir = "/tmp/mlbv-cache"

		path, err := config.TokenCachePath()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if path != filepath.Join("/tmp/mlbv-cache", "token.json") {
			t.Errorf("unexpected cache path %s", path)
		}
	})
}
