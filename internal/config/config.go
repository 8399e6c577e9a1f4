// Package config provides centralized configuration management for the
// pipeline. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

// Config holds all pipeline configuration.
// All settings can be configured via environment variables.
type Config struct {
	Data    DataConfig
	Logging LoggingConfig
}

// DataConfig holds the on-disk locations the pipeline reads and writes.
type DataConfig struct {
	// BronzeDir is the directory holding the raw source CSV files
	// (default: data/bronze)
	BronzeDir string `env:"BRONZE_DIR" default:"data/bronze"`

	// SilverDir is where the Silver snapshot CSVs are written
	// (default: data/silver)
	SilverDir string `env:"SILVER_DIR" default:"data/silver"`

	// DBPath is the SQLite database file the Gold tables load into
	// (default: data/db/olist.db)
	DBPath string `env:"DB_PATH" default:"data/db/olist.db"`

	// DDLPath is the SQL script defining the star-schema tables
	// (default: sql/ddl/star_schema.sql)
	DDLPath string `env:"DDL_PATH" default:"sql/ddl/star_schema.sql"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
