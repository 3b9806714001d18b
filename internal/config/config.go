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
// All fields are optional; missing values use defaults or must be provided via
// CLI flags. The numeric fields are pointers so that an explicit zero (e.g.
// top_k: 0 to disable LLM judging) is distinguishable from "not set".
type Config struct {
	// Inputs
	Job     string `json:"job,omitempty"`                              // Path to job description text file
	JobURL  string `json:"job_url,omitempty" validate:"omitempty,url"` // URL to fetch job posting from
	Resumes string `json:"resumes,omitempty"`                          // Directory of resume files
	Skills  string `json:"skills,omitempty"`                           // Required skills, comma separated

	// Screening behavior
	TopK        *int `json:"top_k,omitempty" validate:"omitempty,gte=0,lte=50"`         // Closest candidates to judge with the LLM
	FuzzyCutoff *int `json:"fuzzy_cutoff,omitempty" validate:"omitempty,gte=0,lte=100"` // Minimum fuzzy match ratio for skill extraction
	MaxRetries  *int `json:"max_retries,omitempty" validate:"omitempty,gte=0,lte=10"`   // LLM retries after the first attempt

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Out     string `json:"out,omitempty"`     // Output CSV path
	Verbose bool   `json:"verbose,omitempty"` // Print detailed run information
}

// DefaultConfig returns the defaults applied when neither the config file nor
// CLI flags set a value.
func DefaultConfig() Config {
	topK := 5
	fuzzyCutoff := 75
	maxRetries := 2
	return Config{
		TopK:        &topK,
		FuzzyCutoff: &fuzzyCutoff,
		MaxRetries:  &maxRetries,
		Out:         "screening_results.csv",
	}
}

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
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			field := validationErrors[0]
			return fmt.Errorf("config error: field '%s' failed validation '%s'", field.Field(), field.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	// Validate file paths exist (if specified)
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Resumes != "" {
		if _, err := os.Stat(c.Resumes); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume directory not found: %s", c.Resumes)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags. A numeric field set to an explicit zero is kept, not replaced.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Resumes == "" {
		result.Resumes = defaults.Resumes
	}
	if result.Skills == "" {
		result.Skills = defaults.Skills
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}

	// Numeric fields: use default only when never set
	if result.TopK == nil {
		result.TopK = defaults.TopK
	}
	if result.FuzzyCutoff == nil {
		result.FuzzyCutoff = defaults.FuzzyCutoff
	}
	if result.MaxRetries == nil {
		result.MaxRetries = defaults.MaxRetries
	}

	// Booleans: true wins
	if defaults.Verbose {
		result.Verbose = true
	}

	return result
}
