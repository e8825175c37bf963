// Package config loads runtime configuration from environment variables.
// The library itself takes configuration as plain constructor arguments;
// this package exists for the CLI and the database adapter.
package config

import (
	"fmt"
	"os"
	"strconv"

	"goimpute/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Database DatabaseConfig
	LogLevel string
}

// AnalysisConfig holds the statistical knobs
type AnalysisConfig struct {
	// SignificanceLevel is the p-value threshold for the MCAR and
	// normality tests.
	SignificanceLevel float64
	// KNNNeighbors is the neighbor count for the KNN strategy.
	KNNNeighbors int
}

// DatabaseConfig holds optional database connection settings for the
// postgres table reader.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Analysis: AnalysisConfig{
			SignificanceLevel: 0.05,
			KNNNeighbors:      5,
		},
		LogLevel: os.Getenv("LOG_LEVEL"),
	}

	if raw := os.Getenv("SIGNIFICANCE_LEVEL"); raw != "" {
		level, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid SIGNIFICANCE_LEVEL")
		}
		if level <= 0 || level >= 1 {
			return nil, errors.ConfigInvalid(
				fmt.Sprintf("SIGNIFICANCE_LEVEL must be in (0, 1), got %g", level))
		}
		config.Analysis.SignificanceLevel = level
	}

	if raw := os.Getenv("KNN_NEIGHBORS"); raw != "" {
		neighbors, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Wrap(err, "invalid KNN_NEIGHBORS")
		}
		if neighbors < 1 {
			return nil, errors.ConfigInvalid(
				fmt.Sprintf("KNN_NEIGHBORS must be positive, got %d", neighbors))
		}
		config.Analysis.KNNNeighbors = neighbors
	}

	config.Database.URL = os.Getenv("DATABASE_URL")

	return config, nil
}
