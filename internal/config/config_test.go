package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Data.BronzeDir != "data/bronze" {
		t.Errorf("BronzeDir = %q, want data/bronze", cfg.Data.BronzeDir)
	}
	if cfg.Data.DBPath != "data/db/olist.db" {
		t.Errorf("DBPath = %q, want data/db/olist.db", cfg.Data.DBPath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BRONZE_DIR", "/srv/raw")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Data.BronzeDir != "/srv/raw" {
		t.Errorf("BronzeDir = %q, want /srv/raw", cfg.Data.BronzeDir)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Logging.Format)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Data: DataConfig{
			SilverDir: "data/silver",
			DBPath:    "data/db/olist.db",
			DDLPath:   "sql/ddl/star_schema.sql",
		},
		Logging: LoggingConfig{Level: "loud", Format: "text"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "BRONZE_DIR") {
		t.Errorf("error should mention BRONZE_DIR: %v", msg)
	}
	if !strings.Contains(msg, "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", msg)
	}
}
