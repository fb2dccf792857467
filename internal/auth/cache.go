package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/gofrs/flock"
)

const lockFileSuffix = ".lock"

// TokenCache persists a single [models.SessionToken] as JSON.
//
// Reads take a shared lock and writes an exclusive lock on a sibling ".lock" file.
// Writes go through a temp file and a rename, so a reader never sees a partial token.
type TokenCache struct {
	path   string
	lock   *flock.Flock
	logger *log.Logger
}

// NewTokenCache returns a cache stored at path. A nil logger discards lock-wait messages.
func NewTokenCache(path string, logger *log.Logger) *TokenCache {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TokenCache{
		path:   path,
		lock:   flock.New(path + lockFileSuffix),
		logger: logger,
	}
}

// Path returns the location of the cache file.
func (c *TokenCache) Path() string {
	return c.path
}

// Load reads the cached token. A missing file yields nil and no error.
func (c *TokenCache) Load() (*models.SessionToken, error) {
	if err := c.ensureDir(); err != nil {
		return nil, err
	}
	if err := c.acquire(false); err != nil {
		return nil, err
	}
	defer c.release()

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token models.SessionToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: token cache %s: %v", shared.ErrResponseParse, c.path, err)
	}
	return &token, nil
}

// Save writes token, replacing any cached value. The token must carry an absolute expiry.
func (c *TokenCache) Save(token *models.SessionToken) error {
	if token == nil || token.ExpiresAt.IsZero() {
		return fmt.Errorf("%w: refusing to cache a token without expires_at", shared.ErrInvalidInput)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := c.ensureDir(); err != nil {
		return err
	}
	if err := c.acquire(true); err != nil {
		return err
	}
	defer c.release()

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token cache: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set token cache permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("failed to replace token cache: %w", err)
	}
	return nil
}

// Clear removes the cached token. Clearing an empty cache is not an error.
func (c *TokenCache) Clear() error {
	if err := c.ensureDir(); err != nil {
		return err
	}
	if err := c.acquire(true); err != nil {
		return err
	}
	defer c.release()

	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token cache: %w", err)
	}
	return nil
}

func (c *TokenCache) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create token cache directory: %w", err)
	}
	return nil
}

// acquire tries the lock once, then blocks.
func (c *TokenCache) acquire(exclusive bool) error {
	try, wait := c.lock.TryRLock, c.lock.RLock
	if exclusive {
		try, wait = c.lock.TryLock, c.lock.Lock
	}

	locked, err := try()
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", c.lock.Path(), err)
	}
	if !locked {
		c.logger.Warn("another mlbv process holds the token cache, waiting", "lock", c.lock.Path())
		if err := wait(); err != nil {
			return fmt.Errorf("failed to acquire lock on %s after waiting: %w", c.lock.Path(), err)
		}
	}
	return nil
}

func (c *TokenCache) release() {
	if err := c.lock.Unlock(); err != nil && !os.IsNotExist(err) {
		c.logger.Warn("failed to release token cache lock", "error", err)
	}
}
