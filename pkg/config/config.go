package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for schemalens.
// Configuration can come from a YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets (datasource
// passwords) must only come from environment variables.
type Config struct {
	Env     string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version string `yaml:"-"` // Set at load time, not from config

	// Dialect selects the builtin type-category table used by the classifier.
	Dialect string `yaml:"dialect" env:"SCHEMALENS_DIALECT" env-default:"generic"`

	// DialectFile optionally points at a YAML file of extra type mappings
	// merged over the builtin table.
	DialectFile string `yaml:"dialect_file" env:"SCHEMALENS_DIALECT_FILE" env-default:""`

	// MaxInputLength bounds DDL/JSON input size (bytes) before parsing.
	MaxInputLength int `yaml:"max_input_length" env:"SCHEMALENS_MAX_INPUT_LENGTH" env-default:"1048576"`

	Parser     ParserConfig     `yaml:"parser"`
	Datasource DatasourceConfig `yaml:"datasource"`
}

// ParserConfig carries the seven pipeline toggles.
type ParserConfig struct {
	IncludeSystemColumns bool `yaml:"include_system_columns" env:"SCHEMALENS_INCLUDE_SYSTEM_COLUMNS" env-default:"false"`
	IncludeIndexes       bool `yaml:"include_indexes" env:"SCHEMALENS_INCLUDE_INDEXES" env-default:"true"`
	IncludeConstraints   bool `yaml:"include_constraints" env:"SCHEMALENS_INCLUDE_CONSTRAINTS" env-default:"true"`
	IncludeStatistics    bool `yaml:"include_statistics" env:"SCHEMALENS_INCLUDE_STATISTICS" env-default:"true"`
	ValidateSchema       bool `yaml:"validate_schema" env:"SCHEMALENS_VALIDATE_SCHEMA" env-default:"true"`
	EnrichMetadata       bool `yaml:"enrich_metadata" env:"SCHEMALENS_ENRICH_METADATA" env-default:"true"`
	GenerateTags         bool `yaml:"generate_tags" env:"SCHEMALENS_GENERATE_TAGS" env-default:"true"`
}

// DatasourceConfig holds connection settings for the inspect command.
type DatasourceConfig struct {
	Driver   string `yaml:"driver" env:"SCHEMALENS_DS_DRIVER" env-default:"postgres"`
	Host     string `yaml:"host" env:"SCHEMALENS_DS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"SCHEMALENS_DS_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"SCHEMALENS_DS_USER" env-default:""`
	Password string `yaml:"-" env:"SCHEMALENS_DS_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"SCHEMALENS_DS_DATABASE" env-default:""`
	SSLMode  string `yaml:"ssl_mode" env:"SCHEMALENS_DS_SSL_MODE" env-default:"prefer"`
}

// Load reads configuration from path (falling back to environment-only when
// the file does not exist) and applies environment overrides.
func Load(path, version string) (*Config, error) {
	cfg := &Config{Version: version}

	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	return cfg, nil
}
