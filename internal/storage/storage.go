// Package storage provides file system operations for .campus/ directories.
package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jacksmith/campus/internal/kv"
	"gopkg.in/yaml.v3"
)

const (
	// campusDir is the name of the workspace directory.
	campusDir = ".campus"
	// dataDir is the subdirectory used by the dir backend.
	dataDir = "data"
	// dbFile is the database used by the sqlite backend.
	dbFile = "campus.db"
	// configFile is the name of the config file within .campus/.
	configFile = "config.yaml"

	currentVersion = 1
)

// Backend names a key-value store implementation.
type Backend string

const (
	BackendDir    Backend = "dir"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend validates a backend name. Empty means BackendDir.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendDir:
		return BackendDir, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want dir or sqlite)", s)
	}
}

// StorageConfig contains settings stored in .campus/config.yaml.
type StorageConfig struct {
	Version int     `yaml:"version"`
	Backend Backend `yaml:"backend"`
}

// Storage provides access to a .campus/ directory.
type Storage struct {
	root   string // path to directory containing .campus/
	config StorageConfig
}

// Open returns a Storage for the given directory.
// Returns error if .campus/ does not exist.
func Open(dir string) (*Storage, error) {
	campusPath := filepath.Join(dir, campusDir)
	info, err := os.Stat(campusPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".campus/ directory not found in %s (run `campus init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .campus/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".campus is not a directory")
	}

	cfgPath := filepath.Join(campusPath, configFile)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}
	var cfg StorageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
	}
	if cfg.Backend, err = ParseBackend(string(cfg.Backend)); err != nil {
		return nil, fmt.Errorf("%s: %w", configFile, err)
	}

	return &Storage{root: dir, config: cfg}, nil
}

// Init creates the .campus/ directory for the given backend.
// Returns error if .campus/ already exists.
func Init(dir string, backend Backend) (*Storage, error) {
	campusPath := filepath.Join(dir, campusDir)

	if _, err := os.Stat(campusPath); err == nil {
		return nil, fmt.Errorf(".campus/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .campus/: %w", err)
	}

	backend, err := ParseBackend(string(backend))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(campusPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .campus/: %w", err)
	}

	cfg := StorageConfig{Version: currentVersion, Backend: backend}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	cfgPath := filepath.Join(campusPath, configFile)
	if err := os.WriteFile(cfgPath, cfgData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	s := &Storage{root: dir, config: cfg}

	// Create the backing store up front so a broken backend fails init
	// rather than the first write.
	store, err := s.KV(nil)
	if err != nil {
		os.RemoveAll(campusPath)
		return nil, fmt.Errorf("failed to create %s store: %w", backend, err)
	}
	if err := store.Close(); err != nil {
		return nil, err
	}

	return s, nil
}

// Root returns the root directory containing .campus/.
func (s *Storage) Root() string {
	return s.root
}

// CampusPath returns the path to the .campus/ directory.
func (s *Storage) CampusPath() string {
	return filepath.Join(s.root, campusDir)
}

// Config returns the settings read from .campus/config.yaml.
func (s *Storage) Config() StorageConfig {
	return s.config
}

// Backend returns the configured backend.
func (s *Storage) Backend() Backend {
	return s.config.Backend
}

// KV opens the configured key-value store. The caller must close it.
func (s *Storage) KV(logger *slog.Logger) (kv.Store, error) {
	switch s.config.Backend {
	case BackendSQLite:
		return kv.OpenSQLite(filepath.Join(s.CampusPath(), dbFile))
	default:
		return kv.OpenDir(filepath.Join(s.CampusPath(), dataDir), logger)
	}
}
