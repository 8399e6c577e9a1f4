package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/otaviomart/olist-warehouse/internal/config"
	"github.com/otaviomart/olist-warehouse/internal/load"
	"github.com/otaviomart/olist-warehouse/internal/logging"
	"github.com/otaviomart/olist-warehouse/internal/pipeline"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"bronze_dir", cfg.Data.BronzeDir,
		"silver_dir", cfg.Data.SilverDir,
		"db_path", cfg.Data.DBPath,
	)

	if err := os.MkdirAll(filepath.Dir(cfg.Data.DBPath), 0o755); err != nil {
		slog.Error("failed to create database directory", "error", err)
		os.Exit(1)
	}

	sink := load.NewSQLiteSink(cfg.Data.DBPath)

	report, err := pipeline.Run(context.Background(), cfg, sink)
	if err != nil {
		slog.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		slog.Error("failed to encode report", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
