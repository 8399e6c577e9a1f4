// Package pipeline orchestrates the full Bronze → Silver → Gold → Load
// sequence. A run either completes and returns the sanity report, or
// the first fatal error aborts it — no stage suppresses a validation or
// I/O error, and there is no partial commit or retry. Re-running after
// fixing the input is the recovery path, since loading is a full
// replace.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/otaviomart/olist-warehouse/internal/config"
	"github.com/otaviomart/olist-warehouse/internal/extract"
	"github.com/otaviomart/olist-warehouse/internal/load"
	"github.com/otaviomart/olist-warehouse/internal/logging"
	"github.com/otaviomart/olist-warehouse/internal/model"
	"github.com/otaviomart/olist-warehouse/internal/transform"
)

// Run executes one full pipeline pass and returns the sanity report.
func Run(ctx context.Context, cfg *config.Config, sink load.Sink) (load.Report, error) {
	logger := logging.WithFields("run_id", uuid.NewString())

	logger.Info("extracting bronze tables", "dir", cfg.Data.BronzeDir)
	bronze, err := extract.LoadAll(cfg.Data.BronzeDir)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	for name, t := range bronze {
		logger.Debug("bronze table loaded", "table", name, "rows", t.Len())
	}

	logger.Info("building silver tables")
	silver, err := transform.BuildSilver(bronze)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	if err := transform.WriteSnapshot(cfg.Data.SilverDir, silver); err != nil {
		return nil, fmt.Errorf("silver snapshot: %w", err)
	}
	logger.Info("silver snapshot written", "dir", cfg.Data.SilverDir)

	logger.Info("building gold tables")
	gold, err := model.BuildGold(silver)
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	for _, name := range model.LoadOrder {
		logger.Debug("gold table built", "table", name, "rows", gold[name].Len())
	}

	ddl, err := os.ReadFile(cfg.Data.DDLPath)
	if err != nil {
		return nil, fmt.Errorf("read ddl: %w", err)
	}
	if err := sink.ApplySchema(ctx, string(ddl)); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	logger.Info("loading gold tables", "tables", len(model.LoadOrder))
	if err := load.Tables(ctx, sink, gold, model.LoadOrder); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	report, err := sink.Checks(ctx, model.LoadOrder)
	if err != nil {
		return nil, fmt.Errorf("sanity checks: %w", err)
	}

	logger.Info("run complete", "tables", len(model.LoadOrder))
	return report, nil
}
