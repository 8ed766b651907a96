package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/shiftplan/internal/core/allocation"
	"github.com/example/shiftplan/internal/core/roster"
	"github.com/example/shiftplan/internal/logging"
)

// FileName is the config file looked up in the working directory and in
// the home data directory.
const FileName = "shiftplan.yaml"

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the shiftplan configuration.
type Config struct {
	Version         string           `yaml:"version"`
	Professions     []string         `yaml:"professions"`      // rank columns, in tie-break order
	Database        string           `yaml:"database"`         // SQLite file
	OutputDir       string           `yaml:"output_dir"`       // schedule documents
	VacancyMarker   string           `yaml:"vacancy_marker"`   // text for unbound positions
	LogLevel        string           `yaml:"log_level"`        // debug, info, warn, error
	MetricsTextfile string           `yaml:"metrics_textfile"` // empty disables export
	Allocation      AllocationConfig `yaml:"allocation"`
}

// AllocationConfig overrides the allocation engine's base rounds.
type AllocationConfig struct {
	Rounds []RoundConfig `yaml:"rounds,omitempty"`
}

// RoundConfig is one matching round: a mode applied to one shift's pool.
type RoundConfig struct {
	Mode  string `yaml:"mode"`
	Shift string `yaml:"shift"`
}

// DataDir returns ~/.shiftplan.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".shiftplan"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	dataDir, err := DataDir()
	if err != nil {
		dataDir = ".shiftplan"
	}

	professions := make([]string, len(roster.DefaultProfessions))
	for i, p := range roster.DefaultProfessions {
		professions[i] = string(p)
	}

	return &Config{
		Version:       "1",
		Professions:   professions,
		Database:      filepath.Join(dataDir, "shiftplan.db"),
		OutputDir:     "output",
		VacancyMarker: "-- VACANT --",
		LogLevel:      "info",
	}
}

// LoadConfig reads shiftplan.yaml from dir, falling back to ~/.shiftplan.
// Missing files yield Default(). Fields absent from the file keep their
// defaults.
func LoadConfig(dir string) (*Config, error) {
	candidates := []string{filepath.Join(dir, FileName)}
	if dataDir, err := DataDir(); err == nil {
		candidates = append(candidates, filepath.Join(dataDir, FileName))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return Parse(data)
	}
	return Default(), nil
}

// Parse decodes and validates YAML config data on top of Default().
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Database = expandHome(cfg.Database)
	cfg.OutputDir = expandHome(cfg.OutputDir)
	cfg.MetricsTextfile = expandHome(cfg.MetricsTextfile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes shiftplan.yaml to dir.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the config for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Professions) == 0 {
		return fmt.Errorf("%w: at least one profession is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Professions))
	for _, p := range c.Professions {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: empty profession name", ErrInvalidConfig)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate profession %q", ErrInvalidConfig, p)
		}
		seen[p] = true
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.Rounds(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// ProfessionList returns the configured professions as roster values.
func (c *Config) ProfessionList() []roster.Profession {
	out := make([]roster.Profession, len(c.Professions))
	for i, p := range c.Professions {
		out[i] = roster.Profession(p)
	}
	return out
}

// Rounds converts the configured round override. Without an override the
// engine's default rounds are returned.
func (c *Config) Rounds() ([]allocation.Round, error) {
	if len(c.Allocation.Rounds) == 0 {
		return allocation.DefaultRounds, nil
	}
	rounds := make([]allocation.Round, 0, len(c.Allocation.Rounds))
	for i, rc := range c.Allocation.Rounds {
		mode, err := allocation.ParseMode(rc.Mode)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		shift, err := roster.ParseShift(rc.Shift)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		rounds = append(rounds, allocation.Round{Mode: mode, Source: shift})
	}
	return rounds, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
