// Package app composes the sxport application with fx: logger, config,
// both databases, and the exporter, with lifecycle-managed cleanup.
package app

import (
	"context"

	"github.com/matheus3301/sxport/internal/chatdb"
	"github.com/matheus3301/sxport/internal/config"
	"github.com/matheus3301/sxport/internal/exporter"
	"github.com/matheus3301/sxport/internal/history"
	"github.com/matheus3301/sxport/internal/logging"
	"github.com/matheus3301/sxport/internal/paths"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved invocation settings passed to the fx module.
type Params struct {
	DBPath     string
	Passphrase string
}

// Module returns the fx module composing all providers and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("sxport",
		fx.Supply(p),
		fx.Provide(
			provideLogger,
			provideConfig,
			provideChatDB,
			provideHistory,
			provideExporter,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideLogger() (*zap.Logger, error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}
	return logging.New(paths.LogPath())
}

// provideConfig loads ~/.sxport/config.toml; a missing file yields defaults.
func provideConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.Load(paths.ConfigPath())
	if err != nil {
		logger.Info("no config file, using defaults", zap.String("path", paths.ConfigPath()))
		return &config.Config{}
	}
	return cfg
}

func provideChatDB(p Params, logger *zap.Logger) (*chatdb.DB, error) {
	db, err := chatdb.Open(p.DBPath, p.Passphrase)
	if err != nil {
		return nil, err
	}
	logger.Info("chat database opened", zap.String("path", p.DBPath))
	return db, nil
}

func provideHistory(logger *zap.Logger) (*history.DB, error) {
	db, err := history.Open(paths.HistoryDBPath())
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if result.Changed {
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	}
	return db, nil
}

func provideExporter(chat *chatdb.DB, hist *history.DB, logger *zap.Logger) *exporter.Exporter {
	return exporter.New(chat, hist, logger)
}

func registerLifecycle(lc fx.Lifecycle, chat *chatdb.DB, hist *history.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if err := chat.Close(); err != nil {
				logger.Warn("error closing chat database", zap.Error(err))
			}
			if err := hist.Close(); err != nil {
				logger.Warn("error closing history database", zap.Error(err))
			}
			_ = logger.Sync()
			return nil
		},
	})
}
