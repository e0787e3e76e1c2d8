// ABOUTME: Maplog configuration management with backend selection.
// ABOUTME: Handles the config file, environment overrides, and the snapshot store factory.

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/storage"
)

// Environment variables that override the config file.
const (
	EnvBackend = "MAPLOG_BACKEND"
	EnvDataDir = "MAPLOG_DATA_DIR"
	EnvHome    = "MAPLOG_HOME"
)

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "badger", "file", "memory"}

// Config stores maplog configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", "file" or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// SQLite puts maplog.db here, Badger uses badger/, the file backend uses snapshots/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/maplog.
	DataDir string `json:"data_dir,omitempty"`

	// Home is the "lat,lng" position reported when the map loads.
	Home string `json:"home,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if v := os.Getenv(EnvBackend); v != "" {
		return v
	}
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if v := os.Getenv(EnvDataDir); v != "" {
		return ExpandPath(v)
	}
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetHome returns the configured home position. ok is false when none is set.
func (c *Config) GetHome() (coords models.Coords, ok bool, err error) {
	raw := c.Home
	if v := os.Getenv(EnvHome); v != "" {
		raw = v
	}
	if raw == "" {
		return models.Coords{}, false, nil
	}
	coords, err = models.ParseCoords(raw)
	if err != nil {
		return models.Coords{}, false, fmt.Errorf("home position: %w", err)
	}
	return coords, true, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenBackend creates the key/value backend named by the config.
func (c *Config) OpenBackend() (storage.Backend, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend creates a named backend rooted at dataDir.
func OpenBackend(name, dataDir string) (storage.Backend, error) {
	switch name {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "maplog.db"))
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	case "file":
		return storage.NewFileStore(filepath.Join(dataDir, "snapshots"))
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", name)
	}
}

// OpenStore opens the configured backend wrapped in a snapshot store.
func (c *Config) OpenStore(logger *slog.Logger) (*storage.SnapshotStore, error) {
	backend, err := c.OpenBackend()
	if err != nil {
		return nil, err
	}
	return storage.NewSnapshotStore(backend, storage.WithLogger(logger)), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "maplog", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
