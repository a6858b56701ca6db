// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	doorstore "github.com/dalemusser/coophub/internal/app/store/doors"
	"github.com/dalemusser/coophub/internal/app/resources"
	"github.com/dalemusser/coophub/internal/app/system/charts"
	"github.com/dalemusser/coophub/internal/app/system/doorsim"
	"github.com/dalemusser/coophub/internal/app/system/seed"
	"github.com/dalemusser/coophub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// shared templates, seeds the mock records, builds the chart renderer, and
// starts the door simulation.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Runtime == nil {
		return errors.New("startup: runtime not initialized")
	}

	resources.LoadSharedTemplates()

	data, err := seed.Load()
	if err != nil {
		logger.Error("seed data load failed", zap.Error(err))
		return err
	}
	deps.Runtime.Seed = data

	seedCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger, "seed apply")
	err = seed.Apply(seedCtx, deps.CoopHubMongoDatabase, data, appCfg.SeedOnStart, logger)
	cancel()
	if err != nil {
		logger.Error("seeding failed", zap.Error(err))
		return err
	}

	deps.Runtime.Charts = charts.NewRenderer(appCfg.ChartCacheTTL)

	worker := doorsim.NewWorker(
		doorstore.New(deps.CoopHubMongoDatabase),
		logger.Named("doorsim"),
		appCfg.DoorSimInterval,
		doorsim.Config{FlipChance: appCfg.DoorSimFlipChance, MaxDrain: appCfg.DoorSimMaxDrain},
		nil,
	)
	worker.Start()
	deps.Runtime.DoorWorker = worker

	return nil
}
