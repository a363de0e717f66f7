package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/yumyai/scagaire/logger"
	"go.uber.org/zap"
)

const (
	DefaultReferenceFile = "species_to_genes.tsv"
	DefaultTaxonFile     = "config.json"
)

type Config struct {
	DataDir      string        `envconfig:"SCAGAIRE_DATA" default:"./data"`
	DatabaseFile string        `envconfig:"SCAGAIRE_DATABASE_FILE"`
	ConfigFile   string        `envconfig:"SCAGAIRE_CONFIG_FILE"`
	LogLevel     string        `envconfig:"SCAGAIRE_LOG_LEVEL" default:"info"`
	Listen       string        `envconfig:"SCAGAIRE_LISTEN" default:"0.0.0.0:8080"`
	CacheTTL     time.Duration `envconfig:"SCAGAIRE_CACHE_TTL" default:"5m"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env found, using local environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	logger.Debug("Configuration loaded",
		zap.String("data", cfg.DataDir),
		zap.String("reference", cfg.ReferencePath()),
		zap.String("log_level", cfg.LogLevel))

	return &cfg, nil
}

// ReferencePath is the species to genes table, by default inside the data directory.
func (c *Config) ReferencePath() string {
	if c.DatabaseFile != "" {
		return c.DatabaseFile
	}
	return filepath.Join(c.DataDir, DefaultReferenceFile)
}

func (c *Config) TaxonConfigPath() string {
	if c.ConfigFile != "" {
		return c.ConfigFile
	}
	return filepath.Join(c.DataDir, DefaultTaxonFile)
}
