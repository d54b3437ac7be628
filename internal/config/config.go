package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Database DatabaseConfig `yaml:"database" envconfig:"DATABASE"`
	Extract  ExtractConfig  `yaml:"extract" envconfig:"EXTRACT"`
	Load     LoadConfig     `yaml:"load" envconfig:"LOAD"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DatabaseConfig contains PostgreSQL connection configuration
type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"HOST"`
	Port     int    `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	User     string `yaml:"user" envconfig:"USER"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	Name     string `yaml:"name" envconfig:"NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"SSL_MODE"`
}

// DSN returns the connection string for pgx
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// ExtractConfig describes where input data comes from
type ExtractConfig struct {
	Source string `yaml:"source" envconfig:"SOURCE" validate:"oneof=file table"`
	Path   string `yaml:"path" envconfig:"PATH"`
	Table  string `yaml:"table" envconfig:"TABLE"`
}

// LoadConfig describes where the cleaned data goes
type LoadConfig struct {
	Target   string `yaml:"target" envconfig:"TARGET" validate:"oneof=file table"`
	Dir      string `yaml:"dir" envconfig:"DIR"`
	BaseName string `yaml:"base_name" envconfig:"BASE_NAME"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Table    string `yaml:"table" envconfig:"TABLE"`
}

// CleaningConfig carries the tuning knobs for the cleaning pipeline
type CleaningConfig struct {
	FillStrategy         string   `yaml:"fill_strategy" envconfig:"FILL_STRATEGY" validate:"oneof=median mode"`
	CapColumns           []string `yaml:"cap_columns" envconfig:"CAP_COLUMNS"`
	FillColumns          []string `yaml:"fill_columns" envconfig:"FILL_COLUMNS"`
	LowerPercentile      float64  `yaml:"lower_percentile" envconfig:"LOWER_PERCENTILE" validate:"gte=0,lte=1"`
	UpperPercentile      float64  `yaml:"upper_percentile" envconfig:"UPPER_PERCENTILE" validate:"gte=0,lte=1,gtecsfield=LowerPercentile"`
	CorrelationThreshold float64  `yaml:"correlation_threshold" envconfig:"CORRELATION_THRESHOLD" validate:"gte=0,lte=1"`
}

// Load loads configuration in precedence order: defaults, then the
// optional YAML config file, then ETL_* environment variables.
func Load() (*Config, error) {
	cfg := Default()

	configFile := getConfigFilePath()
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("ETL", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Extract.Source == "file" && c.Extract.Path == "" {
		return fmt.Errorf("extract path must be set when extract source is %q", c.Extract.Source)
	}
	if c.Extract.Source == "table" && c.Extract.Table == "" {
		return fmt.Errorf("extract table must be set when extract source is %q", c.Extract.Source)
	}
	if c.Load.Target == "table" && c.Load.Table == "" {
		return fmt.Errorf("load table must be set when load target is %q", c.Load.Target)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"etl.yaml",
		"configs/etl.yaml",
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
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/etl.log",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			SSLMode: "disable",
		},
		Extract: ExtractConfig{
			Source: "file",
			Path:   "data/input.csv",
		},
		Load: LoadConfig{
			Target:   "file",
			Dir:      "data/output",
			BaseName: "cleaned",
			Format:   "csv",
		},
		Cleaning: CleaningConfig{
			FillStrategy:         "median",
			LowerPercentile:      0.01,
			UpperPercentile:      0.99,
			CorrelationThreshold: 0.9,
		},
	}
}
