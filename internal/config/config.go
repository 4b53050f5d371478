package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	DefaultLogFile = "math-battles.log"
	DefaultModel   = "gemini-2.5-flash"
)

// Config holds the application configuration.
type Config struct {
	// Seed for problem generation. Zero means seed from the clock.
	Seed       int64
	LogFile    string
	Mute       bool
	RosterPath string

	// Only the Gemini simulator player needs these.
	GeminiAPIKey string
	GeminiModel  string
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LogFile:      DefaultLogFile,
		RosterPath:   os.Getenv("MATH_BATTLES_ROSTER"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  DefaultModel,
	}

	if v := os.Getenv("MATH_BATTLES_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MATH_BATTLES_SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("MATH_BATTLES_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("MATH_BATTLES_MUTE"); v != "" {
		mute, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MATH_BATTLES_MUTE %q: %w", v, err)
		}
		cfg.Mute = mute
	}
	if v := os.Getenv("MATH_BATTLES_MODEL"); v != "" {
		cfg.GeminiModel = v
	}

	return cfg, nil
}

// RequireGemini reports an error when no Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
