package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Ingest   IngestConfig   `yaml:"ingest" envconfig:"INGEST"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"min=1ms"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s" validate:"min=1ms"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/parkcli.log"`
}

// IngestConfig describes where citation exports live and the fixed
// layout of their sheets.
type IngestConfig struct {
	InputDir    string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"data/exports" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/reports" validate:"required"`
	HeaderRows  int    `yaml:"header_rows" envconfig:"HEADER_ROWS" default:"4" validate:"min=0"`
	FooterSheet string `yaml:"footer_sheet" envconfig:"FOOTER_SHEET" default:"Sheet3"`
}

// AnalysisConfig holds the state codes the aggregates filter on.
// Matching is exact, with no case or whitespace normalization.
type AnalysisConfig struct {
	OutOfStateCode string `yaml:"out_of_state_code" envconfig:"OUT_OF_STATE_CODE" default:"NY" validate:"required"`
	InStateCode    string `yaml:"in_state_code" envconfig:"IN_STATE_CODE" default:"MI" validate:"required"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("PARK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config. Environment values
// win where the file left a field unset.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if fileConfig.Server.Port != 0 {
		merged.Server.Port = fileConfig.Server.Port
	}
	if fileConfig.Server.ReadTimeout != 0 {
		merged.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if fileConfig.Server.WriteTimeout != 0 {
		merged.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if fileConfig.Server.IdleTimeout != 0 {
		merged.Server.IdleTimeout = fileConfig.Server.IdleTimeout
	}
	if fileConfig.Server.ShutdownTimeout != 0 {
		merged.Server.ShutdownTimeout = fileConfig.Server.ShutdownTimeout
	}
	if fileConfig.Logging.Level != "" {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" {
		merged.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Logging.Output != "" {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Ingest.InputDir != "" {
		merged.Ingest.InputDir = fileConfig.Ingest.InputDir
	}
	if fileConfig.Ingest.OutputDir != "" {
		merged.Ingest.OutputDir = fileConfig.Ingest.OutputDir
	}
	if fileConfig.Ingest.HeaderRows != 0 {
		merged.Ingest.HeaderRows = fileConfig.Ingest.HeaderRows
	}
	if fileConfig.Ingest.FooterSheet != "" {
		merged.Ingest.FooterSheet = fileConfig.Ingest.FooterSheet
	}
	if fileConfig.Analysis.OutOfStateCode != "" {
		merged.Analysis.OutOfStateCode = fileConfig.Analysis.OutOfStateCode
	}
	if fileConfig.Analysis.InStateCode != "" {
		merged.Analysis.InStateCode = fileConfig.Analysis.InStateCode
	}

	return merged
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output != "console" && c.Logging.Output != "file" && c.Logging.Output != "both" {
		c.Logging.Output = "console"
	}

	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv("PARK_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/parkcli.log",
		},
		Ingest: IngestConfig{
			InputDir:    "data/exports",
			OutputDir:   "data/reports",
			HeaderRows:  4,
			FooterSheet: "Sheet3",
		},
		Analysis: AnalysisConfig{
			OutOfStateCode: "NY",
			InStateCode:    "MI",
		},
	}
}
