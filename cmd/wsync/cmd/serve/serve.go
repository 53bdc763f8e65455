package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whisper-sync/cmd/wsync/cmd/cliutil"
	"whisper-sync/internal/api/server"
	v1routes "whisper-sync/internal/api/v1/routes"
	"whisper-sync/internal/config"
)

const shutdownTimeout = 10 * time.Second

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "address to bind (overrides config)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides config)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

- POST /api/v1/audio selects a file, POST /api/v1/transcriptions transcribes it
- /api/v1/player drives playback and reports the active segment
- /metrics exposes Prometheus metrics, /swagger/index.html the API docs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, cleanup, err := cliutil.Bootstrap(cmd, func(cfg *config.Config) {
			if host != "" {
				cfg.Server.Host = host
			}
			if port != "" {
				cfg.Server.Port = port
			}
		})
		if err != nil {
			return err
		}
		defer cleanup()

		cfg := a.Config
		srv := server.NewServer(server.Config{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			Environment:  cfg.Environment,
			MaxBodyBytes: cfg.Upload.MaxBodyBytes,
			AllowOrigins: cfg.Server.AllowOrigins,
		}, &v1routes.Dependencies{
			Session:     a.Session,
			Media:       a.MemoryMedia(),
			MaxBytes:    cfg.Upload.MaxBytes,
			SkipSeconds: cfg.Player.SkipSeconds,
		}, a.Registry, a.Logger)

		if err := srv.Start(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
		case err := <-srv.Err():
			return err
		}

		a.Logger.Info("Received shutdown signal", zap.String("reason", context.Cause(ctx).Error()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
