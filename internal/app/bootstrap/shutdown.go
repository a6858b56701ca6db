// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown stops background workers and cleanly tears down DB connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Runtime != nil {
		if deps.Runtime.DoorWorker != nil {
			deps.Runtime.DoorWorker.Stop()
		}
		if deps.Runtime.Limiter != nil {
			deps.Runtime.Limiter.Stop()
		}
	}

	if deps.CoopHubMongoClient != nil {
		logger.Info("disconnecting CoopHub MongoDB client")
		if err := deps.CoopHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
