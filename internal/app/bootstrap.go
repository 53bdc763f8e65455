package app

import (
	"context"

	"go.uber.org/zap"

	"whisper-sync/internal/app/logging"
	"whisper-sync/internal/config"
)

// Options control how Bootstrap builds the application.
type Options struct {
	ConfigPath string
	Verbose    bool
	// Configure adjusts the loaded configuration before anything is wired.
	Configure func(cfg *config.Config)
}

// Bootstrap loads .env and the config file, builds the logger and wires the app.
func Bootstrap(ctx context.Context, opts Options) (*App, func(), error) {
	envPath, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.Configure != nil {
		opts.Configure(cfg)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, err := logging.NewLogger(!cfg.IsProduction(), level)
	if err != nil {
		return nil, nil, err
	}
	if envPath != "" {
		logger.Debug("loaded environment file", zap.String("path", envPath))
	}

	a, cleanup, err := InitializeApp(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return a, func() {
		cleanup()
		_ = logger.Sync()
	}, nil
}
