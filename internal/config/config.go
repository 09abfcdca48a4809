// Package config loads the engine and CLI configuration from JSON or YAML files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-entities/internal/extraction"
	"github.com/jonathan/resume-entities/internal/feedback"
	"github.com/jonathan/resume-entities/internal/logger"
	"github.com/jonathan/resume-entities/internal/segmentation"
	"github.com/jonathan/resume-entities/internal/verification"
)

// Environment variables that override file values.
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvLogLevel    = "RESUME_ENTITIES_LOG_LEVEL"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; zero values are filled by MergeWithDefaults.
type Config struct {
	Segmentation SegmentationConfig `json:"segmentation" yaml:"segmentation"`
	Extraction   ExtractionConfig   `json:"extraction" yaml:"extraction"`
	Verification VerificationConfig `json:"verification" yaml:"verification"`
	Logger       logger.Config      `json:"logger" yaml:"logger"`

	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath     string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`   // Local SQLite store
	VersionRetries int    `json:"version_retries,omitempty" yaml:"version_retries,omitempty" validate:"gte=0,lte=100"`
}

type SegmentationConfig struct {
	HeaderMaxLength int `json:"header_max_length,omitempty" yaml:"header_max_length,omitempty" validate:"gte=0"`
}

type ExtractionConfig struct {
	SkillItemMinLength int `json:"skill_item_min_length,omitempty" yaml:"skill_item_min_length,omitempty" validate:"gte=0"`
	SkillItemMaxLength int `json:"skill_item_max_length,omitempty" yaml:"skill_item_max_length,omitempty" validate:"gte=0"`
}

type VerificationConfig struct {
	WindowSize       int     `json:"window_size,omitempty" yaml:"window_size,omitempty" validate:"gte=0"`
	WindowStep       int     `json:"window_step,omitempty" yaml:"window_step,omitempty" validate:"gte=0"`
	MatchThreshold   float64 `json:"match_threshold,omitempty" yaml:"match_threshold,omitempty" validate:"gte=0,lte=1"`
	SingleTokenFuzzy bool    `json:"single_token_fuzzy,omitempty" yaml:"single_token_fuzzy,omitempty"`
}

// Default returns the configuration matching the engine defaults.
func Default() Config {
	return Config{
		Segmentation: SegmentationConfig{HeaderMaxLength: segmentation.DefaultHeaderMaxLength},
		Extraction: ExtractionConfig{
			SkillItemMinLength: extraction.DefaultSkillItemMinLength,
			SkillItemMaxLength: extraction.DefaultSkillItemMaxLength,
		},
		Verification: VerificationConfig{
			WindowSize:     verification.DefaultWindowSize,
			WindowStep:     verification.DefaultWindowStep,
			MatchThreshold: verification.DefaultMatchThreshold,
		},
		Logger:         logger.DefaultConfig(),
		VersionRetries: feedback.DefaultVersionRetries,
	}
}

// LoadConfig loads configuration from a .json, .yaml or .yml file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &cfg, nil
}

// Load reads path when it is set, applies environment overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.Getenv)
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overrides file values with set environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logger.Level = v
	}
}

// Validate checks that the configuration has valid values. Zero values are accepted since
// MergeWithDefaults replaces them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}

	v := c.Verification
	if v.WindowSize > 0 && v.WindowStep > v.WindowSize {
		return fmt.Errorf("config error: 'window_step' (%d) must not exceed 'window_size' (%d)", v.WindowStep, v.WindowSize)
	}

	e := c.Extraction
	if e.SkillItemMinLength > 0 && e.SkillItemMaxLength > 0 && e.SkillItemMinLength >= e.SkillItemMaxLength {
		return fmt.Errorf("config error: 'skill_item_min_length' (%d) must be less than 'skill_item_max_length' (%d)",
			e.SkillItemMinLength, e.SkillItemMaxLength)
	}

	if _, err := logger.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Bool fields cannot distinguish unset from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Segmentation.HeaderMaxLength == 0 {
		result.Segmentation.HeaderMaxLength = defaults.Segmentation.HeaderMaxLength
	}

	if result.Extraction.SkillItemMinLength == 0 {
		result.Extraction.SkillItemMinLength = defaults.Extraction.SkillItemMinLength
	}
	if result.Extraction.SkillItemMaxLength == 0 {
		result.Extraction.SkillItemMaxLength = defaults.Extraction.SkillItemMaxLength
	}

	if result.Verification.WindowSize == 0 {
		result.Verification.WindowSize = defaults.Verification.WindowSize
	}
	if result.Verification.WindowStep == 0 {
		result.Verification.WindowStep = defaults.Verification.WindowStep
	}
	if result.Verification.MatchThreshold == 0 {
		result.Verification.MatchThreshold = defaults.Verification.MatchThreshold
	}

	if result.Logger.Level == "" {
		result.Logger.Level = defaults.Logger.Level
	}
	if result.Logger.Format == "" {
		result.Logger.Format = defaults.Logger.Format
	}
	if result.Logger.TimeFormat == "" {
		result.Logger.TimeFormat = defaults.Logger.TimeFormat
	}

	if result.DatabaseURL == "" && result.SQLitePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		result.SQLitePath = defaults.SQLitePath
	}
	if result.VersionRetries == 0 {
		result.VersionRetries = defaults.VersionRetries
	}

	return result
}

// SegmentationOptions converts the config for segmentation.New.
func (c *Config) SegmentationOptions() segmentation.Options {
	return segmentation.Options{HeaderMaxLength: c.Segmentation.HeaderMaxLength}
}

// ExtractionOptions converts the config for extraction.NewExtractor.
func (c *Config) ExtractionOptions() extraction.Options {
	return extraction.Options{
		SkillItemMinLength: c.Extraction.SkillItemMinLength,
		SkillItemMaxLength: c.Extraction.SkillItemMaxLength,
	}
}

// VerificationOptions converts the config for verification.New.
func (c *Config) VerificationOptions() verification.Options {
	return verification.Options{
		WindowSize:       c.Verification.WindowSize,
		WindowStep:       c.Verification.WindowStep,
		MatchThreshold:   c.Verification.MatchThreshold,
		SingleTokenFuzzy: c.Verification.SingleTokenFuzzy,
	}
}
