// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DatabaseConfig holds settings for the relational export sink.
type DatabaseConfig struct {
	// Dialect selects the driver: sqlite3, sqlite, postgres, or mysql.
	Dialect string `json:"dialect" yaml:"dialect" mapstructure:"dialect"`

	// DSN is the driver data source name. When empty, the database-dsn
	// secret is used.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" mapstructure:"dsn"`

	// CreationInfo adds the ModelCreationInfo table to the schema and
	// exports wall creation metadata into it (default true).
	CreationInfo bool `json:"creation_info" yaml:"creation_info" mapstructure:"creation_info"`
}

// ModelConfig holds settings for loading the building model.
type ModelConfig struct {
	// Path is the YAML model file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// LengthUnit is the display unit for length parameters: ft, in, m, cm, or mm.
	LengthUnit string `json:"length_unit" yaml:"length_unit" mapstructure:"length_unit"`

	// Precision is the number of fraction digits in displayed numbers.
	Precision int `json:"precision" yaml:"precision" mapstructure:"precision"`
}

// ExportConfig holds settings for an export run.
type ExportConfig struct {
	// Categories lists the category tags to export, in order. Empty means
	// all supported categories.
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`
}

// LogConfig holds settings for structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Database DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
	Model    ModelConfig    `json:"model" yaml:"model" mapstructure:"model"`
	Export   ExportConfig   `json:"export" yaml:"export" mapstructure:"export"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}
