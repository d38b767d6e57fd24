// Package config holds markbook configuration: output and archive file
// naming, grading thresholds, and logging. Configuration is a YAML file;
// a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all markbook configuration.
type Config struct {
	// Grading settings
	Grading GradingConfig `yaml:"grading"`

	// Archive settings
	Archive ArchiveConfig `yaml:"archive"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// GradingConfig configures the aggregation thresholds and output file.
type GradingConfig struct {
	// PassThreshold is the overall percentage needed to pass.
	PassThreshold float64 `yaml:"pass_threshold"`

	// GPAScale is the top of the GPA scale.
	GPAScale float64 `yaml:"gpa_scale"`

	// OutputFile is where a session's records are exported.
	OutputFile string `yaml:"output_file"`
}

// ArchiveConfig configures the archiver.
type ArchiveConfig struct {
	// Directory is the archive subdirectory under the working directory.
	Directory string `yaml:"directory"`

	// LogFile is the append-only organizer log name.
	LogFile string `yaml:"log_file"`

	// Extension filters which files are discovered.
	Extension string `yaml:"extension"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Grading: GradingConfig{
			PassThreshold: 50.0,
			GPAScale:      5.0,
			OutputFile:    "grades.csv",
		},
		Archive: ArchiveConfig{
			Directory: "archive",
			LogFile:   "organizer.log",
			Extension: ".csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns the
// defaults rather than an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets environment variables win over the file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MARKBOOK_PASS_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Grading.PassThreshold = f
		}
	}
	if v := os.Getenv("MARKBOOK_OUTPUT_FILE"); v != "" {
		c.Grading.OutputFile = v
	}
	if v := os.Getenv("MARKBOOK_ARCHIVE_DIR"); v != "" {
		c.Archive.Directory = v
	}
	if v := os.Getenv("MARKBOOK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the configuration for values the tool cannot run with.
func (c *Config) Validate() error {
	if c.Grading.PassThreshold < 0 || c.Grading.PassThreshold > 100 {
		return fmt.Errorf("pass_threshold must be between 0 and 100, got %f", c.Grading.PassThreshold)
	}
	if c.Grading.GPAScale <= 0 {
		return fmt.Errorf("gpa_scale must be positive, got %f", c.Grading.GPAScale)
	}
	if c.Grading.OutputFile == "" {
		return fmt.Errorf("output_file cannot be empty")
	}
	if c.Archive.Directory == "" {
		return fmt.Errorf("archive directory cannot be empty")
	}
	if c.Archive.Extension == "" || c.Archive.Extension[0] != '.' {
		return fmt.Errorf("archive extension must start with '.', got %q", c.Archive.Extension)
	}
	return nil
}
