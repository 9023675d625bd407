// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("starting hireloop",
		zap.String("env", coreCfg.Env),
		zap.String("storage_type", appCfg.StorageType),
		zap.Int64("resume_max_bytes", appCfg.ResumeMaxBytes))
	return nil
}
