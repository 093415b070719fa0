// Package config resolves the job configuration from defaults, an optional
// YAML file and MODELPREP_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the pipeline run configuration.
type Config struct {
	DatasetPath  string  `yaml:"dataset_path"`
	ArtifactPath string  `yaml:"artifact_path"`
	Neighbors    int     `yaml:"neighbors"`
	TestFraction float64 `yaml:"test_fraction"`
	Seed         int64   `yaml:"seed"`
	LogLevel     string  `yaml:"log_level"`
	LogFormat    string  `yaml:"log_format"`
}

// Default returns the stock run configuration.
func Default() *Config {
	return &Config{
		DatasetPath:  "loan_approval_dataset.csv",
		ArtifactPath: "model_data.json",
		Neighbors:    5,
		TestFraction: 0.3,
		Seed:         42,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load builds the configuration. filePath may be empty, in which case only
// defaults and environment variables apply.
func Load(filePath string) (*Config, error) {
	config := Default()

	if filePath != "" {
		payload, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(payload, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.DatasetPath = getEnv("MODELPREP_DATASET", config.DatasetPath)
	config.ArtifactPath = getEnv("MODELPREP_ARTIFACT", config.ArtifactPath)
	config.Neighbors = getEnvAsInt("MODELPREP_NEIGHBORS", config.Neighbors)
	config.TestFraction = getEnvAsFloat("MODELPREP_TEST_FRACTION", config.TestFraction)
	config.Seed = int64(getEnvAsInt("MODELPREP_SEED", int(config.Seed)))
	config.LogLevel = getEnv("MODELPREP_LOG_LEVEL", config.LogLevel)
	config.LogFormat = getEnv("MODELPREP_LOG_FORMAT", config.LogFormat)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("dataset_path is required")
	}
	if c.ArtifactPath == "" {
		return fmt.Errorf("artifact_path is required")
	}
	if c.Neighbors <= 0 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return fmt.Errorf("test_fraction must be in (0,1), got %g", c.TestFraction)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
