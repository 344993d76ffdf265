// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Library string `json:"library,omitempty" validate:"omitempty,file"` // Path to content library JSON file
	Job     string `json:"job,omitempty"`                               // Path to job posting text file
	JobURL  string `json:"job_url,omitempty" validate:"omitempty,url"`  // URL to fetch job posting from

	// Pipeline knobs
	MaxAttempts        int     `json:"max_attempts,omitempty" validate:"omitempty,min=1,max=10"`
	RequestTimeoutSecs int     `json:"request_timeout_secs,omitempty" validate:"omitempty,min=1"`
	HighlightCount     int     `json:"highlight_count,omitempty" validate:"omitempty,min=1,max=10"`
	Role1BulletCount   int     `json:"role1_bullet_count,omitempty" validate:"omitempty,min=1,max=10"`
	Role2BulletCount   int     `json:"role2_bullet_count,omitempty" validate:"omitempty,min=0,max=10"`
	InputPerMTok       float64 `json:"input_per_mtok,omitempty" validate:"omitempty,min=0"`
	OutputPerMTok      float64 `json:"output_per_mtok,omitempty" validate:"omitempty,min=0"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

var structValidator = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if err := structValidator.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Library == "" {
		result.Library = defaults.Library
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.MaxAttempts == 0 {
		result.MaxAttempts = defaults.MaxAttempts
	}
	if result.RequestTimeoutSecs == 0 {
		result.RequestTimeoutSecs = defaults.RequestTimeoutSecs
	}
	if result.HighlightCount == 0 {
		result.HighlightCount = defaults.HighlightCount
	}
	if result.Role1BulletCount == 0 {
		result.Role1BulletCount = defaults.Role1BulletCount
	}
	if result.Role2BulletCount == 0 {
		result.Role2BulletCount = defaults.Role2BulletCount
	}
	if result.InputPerMTok == 0 {
		result.InputPerMTok = defaults.InputPerMTok
	}
	if result.OutputPerMTok == 0 {
		result.OutputPerMTok = defaults.OutputPerMTok
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
