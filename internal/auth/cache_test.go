package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
	tu "github.com/desertthunder/mlbv/internal/testing"
)

func TestTokenCache(t *testing.T) {
	expiresAt := time.Date(2025, time.May, 4, 18, 30, 0, 0, time.UTC)
	token := &models.SessionToken{
		TokenType:   "Bearer",
		AccessToken: "access",
		Scope:       "openid profile email",
		IDToken:     "id",
		ExpiresIn:   3600,
		ExpiresAt:   expiresAt,
	}

	t.Run("Load Missing File", func(t *testing.T) {
		cache := NewTokenCache(filepath.Join(t.TempDir(), "token.json"), nil)
		got, err := cache.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil token, got %+v", got)
		}
	})

	t.Run("Save Then Load Round Trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		cache := NewTokenCache(path, nil)

		if err := cache.Save(token); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		tu.AssertFileExists(t, path)

		got, err := cache.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}

		if got.TokenType != token.TokenType || got.AccessToken != token.AccessToken ||
			got.Scope != token.Scope || got.IDToken != token.IDToken || got.ExpiresIn != token.ExpiresIn {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, token)
		}
		if !got.ExpiresAt.Equal(token.ExpiresAt) {
			t.Errorf("expected expires_at %v, got %v", token.ExpiresAt, got.ExpiresAt)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("Validity Boundary After Load", func(t *testing.T) {
		cache := NewTokenCache(filepath.Join(t.TempDir(), "token.json"), nil)
		if err := cache.Save(token); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		got, err := cache.Load()
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}

		boundary := expiresAt.Add(-models.TokenValidityMargin)
		if !got.IsValid(boundary.Add(-time.Nanosecond)) {
			t.Error("expected token to be valid just before expires_at - 60s")
		}
		if got.IsValid(boundary) {
			t.Error("expected token to be invalid at expires_at - 60s")
		}
	})

	t.Run("Rejects Token Without Expiry", func(t *testing.T) {
		cache := NewTokenCache(filepath.Join(t.TempDir(), "token.json"), nil)
		err := cache.Save(&models.SessionToken{AccessToken: "x"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, statErr := os.Stat(cache.Path()); !os.IsNotExist(statErr) {
			t.Error("cache file should not be written")
		}
	})

	t.Run("Corrupt File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatal(err)
		}
		_, err := NewTokenCache(path, nil).Load()
		if !errors.Is(err, shared.ErrResponseParse) {
			t.Errorf("expected ErrResponseParse, got %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		cache := NewTokenCache(path, nil)
		if err := cache.Save(token); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := cache.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("expected cache file to be removed")
		}
		if err := cache.Clear(); err != nil {
			t.Errorf("clearing an empty cache should succeed, got %v", err)
		}
	})

	t.Run("Last Writer Wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		first, second := NewTokenCache(path, nil), NewTokenCache(path, nil)

		if err := first.Save(token); err != nil {
			t.Fatal(err)
		}
		newer := *token
		newer.AccessToken = "newer"
		if err := second.Save(&newer); err != nil {
			t.Fatal(err)
		}

		got, err := first.Load()
		if err != nil {
			t.Fatal(err)
		}
		if got.AccessToken != "newer" {
			t.Errorf("expected last write to win, got %s", got.AccessToken)
		}
	})
}
