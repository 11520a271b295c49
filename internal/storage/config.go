package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jacksmith/campus/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .campus/).
	userConfigFile = ".campusconfig.yaml"

	// Default configuration values
	DefaultPageSize = 5
	DefaultLogLevel = "warn"
)

// Config represents user configuration from .campusconfig.yaml.
// This file is user-managed and never written by campus.
type Config struct {
	// Instructors lists who can teach a course.
	Instructors []string `yaml:"instructors"`

	// ResponsiblePersons lists who can be put in charge of a classroom.
	ResponsiblePersons []string `yaml:"responsible_persons"`

	// PageSize is the number of rows per page in list views.
	PageSize int `yaml:"page_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Instructors:        slices.Clone(model.DefaultInstructors),
		ResponsiblePersons: slices.Clone(model.DefaultResponsiblePersons),
		PageSize:           DefaultPageSize,
		LogLevel:           DefaultLogLevel,
	}
}

// ReferenceData builds the form lookup lists from the config.
func (c *Config) ReferenceData() model.ReferenceData {
	return model.NewReferenceData(c.Instructors, c.ResponsiblePersons)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	return ParseLogLevel(c.LogLevel)
}

// ParseLogLevel parses a level name. Empty means DefaultLogLevel.
func ParseLogLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// LoadConfig loads .campusconfig.yaml if it exists, otherwise returns defaults.
// The config file is a sibling to .campus/ (in the same directory).
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	return LoadConfig(s.root)
}

// LoadConfig loads the user config from dir without requiring a workspace.
func LoadConfig(dir string) (*Config, error) {
	path := configPath(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("%s: page_size must be positive, got %d", userConfigFile, cfg.PageSize)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("%s: %w", userConfigFile, err)
	}

	return cfg, nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return configPath(s.root)
}

func configPath(dir string) string {
	return filepath.Join(dir, userConfigFile)
}
