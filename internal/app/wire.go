//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"whisper-sync/internal/config"
)

// InitializeApp wires the session and its collaborators from cfg.
func InitializeApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, func(), error) {
	wire.Build(providerSet)
	return &App{}, nil, nil
}
