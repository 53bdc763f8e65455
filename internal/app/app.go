package app

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"whisper-sync/internal/app/api"
	oa "whisper-sync/internal/app/api/openai"
	"whisper-sync/internal/app/api/openai/whisper"
	"whisper-sync/internal/app/audio"
	"whisper-sync/internal/app/controller"
	"whisper-sync/internal/app/player"
	"whisper-sync/internal/app/session"
	"whisper-sync/internal/app/settings"
	"whisper-sync/internal/config"
)

// MediaPrefix is where the in-memory media store serves its blobs.
const MediaPrefix = "/api/v1/media"

// App is the fully wired application.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Media    audio.MediaStore
	Engine   *player.ClockEngine
	Session  *session.Session
}

// MemoryMedia returns the in-memory media store when that backend is active.
func (a *App) MemoryMedia() *audio.MemoryStore {
	mem, _ := a.Media.(*audio.MemoryStore)
	return mem
}

var providerSet = wire.NewSet(
	provideRegistry,
	provideSettingsStore,
	provideCredentialService,
	provideTranscriber,
	provideMetrics,
	provideController,
	provideMediaStore,
	provideClockEngine,
	wire.Bind(new(player.Engine), new(*player.ClockEngine)),
	provideSynchronizer,
	provideSession,
	wire.Struct(new(App), "*"),
)

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideSettingsStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (settings.Store, func(), error) {
	var (
		store settings.Store
		err   error
	)
	switch cfg.Settings.Backend {
	case "sqlite":
		store, err = settings.OpenSQLite(ctx, cfg.Settings.SQLitePath)
	case "redis":
		store, err = settings.NewRedisStore(ctx, cfg.Settings.RedisAddr, cfg.Settings.RedisPassword, cfg.Settings.RedisDB)
	case "memory":
		store = settings.NewMemoryStore()
	default:
		err = fmt.Errorf("unknown settings backend: %s", cfg.Settings.Backend)
	}
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("settings store ready", zap.String("backend", cfg.Settings.Backend))
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close settings store", zap.Error(err))
		}
	}
	return store, cleanup, nil
}

// provideCredentialService seeds the store from OPENAI_API_KEY when it holds no key yet.
func provideCredentialService(ctx context.Context, store settings.Store, cfg *config.Config) (*settings.CredentialService, error) {
	creds := settings.NewCredentialService(store)
	if err := creds.Seed(ctx, cfg.InitialCredential); err != nil {
		return nil, err
	}
	return creds, nil
}

func provideTranscriber(cfg *config.Config, logger *zap.Logger) api.Transcriber {
	return whisper.NewRemoteTranscriber(whisper.Config(cfg.OpenAI), oa.ClientOptions{}, logger.Named("whisper"))
}

func provideMetrics(reg *prometheus.Registry) *controller.Metrics {
	return controller.NewMetrics(reg)
}

func provideController(transcriber api.Transcriber, metrics *controller.Metrics, cfg *config.Config, logger *zap.Logger) *controller.Controller {
	return controller.New(transcriber,
		controller.WithLogger(logger.Named("controller")),
		controller.WithMaxBytes(cfg.Upload.MaxBytes),
		controller.WithMetrics(metrics),
	)
}

func provideMediaStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (audio.MediaStore, error) {
	switch cfg.Media.Backend {
	case "memory":
		return audio.NewMemoryStore(MediaPrefix), nil
	case "file":
		return audio.FileStore{}, nil
	case "minio":
		return audio.NewMinioStore(ctx, audio.MinioConfig(cfg.Media.Minio), logger.Named("minio"))
	default:
		return nil, fmt.Errorf("unknown media backend: %s", cfg.Media.Backend)
	}
}

func provideClockEngine(cfg *config.Config, media audio.MediaStore, logger *zap.Logger) (*player.ClockEngine, func()) {
	engine := player.NewClockEngine(
		player.WithTickInterval(cfg.Player.TickInterval),
		player.WithMetadataLoader(audio.DurationLoader(media)),
		player.WithClockLogger(logger.Named("clock")),
	)
	return engine, func() { _ = engine.Close() }
}

func provideSynchronizer(engine player.Engine, logger *zap.Logger) *player.Synchronizer {
	return player.NewSynchronizer(engine, logger.Named("player"))
}

func provideSession(
	creds *settings.CredentialService,
	media audio.MediaStore,
	ctrl *controller.Controller,
	synchronizer *player.Synchronizer,
	logger *zap.Logger,
) (*session.Session, func()) {
	s := session.New(creds, media, ctrl, synchronizer, logger.Named("session"))
	return s, func() { _ = s.Close() }
}
