// Package config provides configuration loading and validation for the CLI.
// Values merge in precedence order: CLI flags over config file over
// environment variables over defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Inputs
	Profile   string `json:"profile,omitempty" validate:"omitempty,file"`
	Job       string `json:"job,omitempty" validate:"omitempty,file"`
	Secondary string `json:"secondary,omitempty" validate:"omitempty,file"`

	// Generation
	APIKey   string `json:"api_key,omitempty"`
	Provider string `json:"provider,omitempty" validate:"omitempty,oneof=gemini"`

	// Backends
	RedisURL    string `json:"redis_url,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Guards
	MaxFileSizeBytes  int64 `json:"max_file_size_bytes,omitempty" validate:"gte=0"`
	MaxPages          int   `json:"max_pages,omitempty" validate:"gte=0"`
	MaxRecentRequests int   `json:"max_recent_requests,omitempty" validate:"gte=0"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=json console"`
	Verbose   bool   `json:"verbose,omitempty"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables.
func FromEnv() Config {
	return Config{
		APIKey:            os.Getenv("GEMINI_API_KEY"),
		RedisURL:          os.Getenv("REDIS_URL"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFormat:         os.Getenv("LOG_FORMAT"),
		MaxFileSizeBytes:  envInt64("MAX_FILE_SIZE_BYTES"),
		MaxPages:          envInt("MAX_PAGES"),
		MaxRecentRequests: envInt("MAX_RECENT_REQUESTS"),
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field %q failed %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Secondary == "" {
		result.Secondary = defaults.Secondary
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.MaxFileSizeBytes == 0 {
		result.MaxFileSizeBytes = defaults.MaxFileSizeBytes
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.MaxRecentRequests == 0 {
		result.MaxRecentRequests = defaults.MaxRecentRequests
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func envInt64(key string) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
