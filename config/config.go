// Package config provides client configuration from environment
// variables, with an optional YAML file overlay.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the client configuration.
type Config struct {
	// AWS
	AWSRegion string

	// Batch
	Queue    string
	LogGroup string

	// Log tailing
	PollInterval time.Duration
	TailTimeout  time.Duration
}

// fileConfig mirrors Config for YAML files, with durations as strings so
// values like "250ms" parse.
type fileConfig struct {
	AWSRegion    string `yaml:"aws_region"`
	Queue        string `yaml:"queue"`
	LogGroup     string `yaml:"log_group"`
	PollInterval string `yaml:"poll_interval"`
	TailTimeout  string `yaml:"tail_timeout"`
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		Queue:        getEnv("BATCH_QUEUE", ""),
		LogGroup:     getEnv("BATCH_LOG_GROUP", "/aws/batch/job"),
		PollInterval: getDurationEnv("LOG_POLL_INTERVAL", time.Second),
		TailTimeout:  getDurationEnv("TAIL_TIMEOUT", 0),
	}
}

// LoadFile loads configuration from the environment and overlays the
// values set in a YAML file.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if fc.AWSRegion != "" {
		cfg.AWSRegion = fc.AWSRegion
	}
	if fc.Queue != "" {
		cfg.Queue = fc.Queue
	}
	if fc.LogGroup != "" {
		cfg.LogGroup = fc.LogGroup
	}
	if fc.PollInterval != "" {
		d, err := time.ParseDuration(fc.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid poll_interval in config file: %w", err)
		}
		cfg.PollInterval = d
	}
	if fc.TailTimeout != "" {
		d, err := time.ParseDuration(fc.TailTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid tail_timeout in config file: %w", err)
		}
		cfg.TailTimeout = d
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
