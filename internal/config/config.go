package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when WSYNC_CONFIG is not set.
	DefaultConfigPath = "wsync.yaml"

	// DefaultMaxUploadBytes is the transcription service's payload ceiling.
	DefaultMaxUploadBytes int64 = 25 * 1024 * 1024

	// DefaultMaxBodyBytes caps uploaded files. It is larger than the
	// transcription ceiling so oversized files can still be played.
	DefaultMaxBodyBytes int64 = 64 * 1024 * 1024

	DefaultHTTPPort      = "8080"
	DefaultOpenAITimeout = 120 * time.Second
	DefaultModel         = "whisper-1"
	DefaultTickInterval  = 250 * time.Millisecond
	DefaultSkipSeconds   = 10.0
)

// Config is the whole application configuration.
type Config struct {
	Environment string         `yaml:"environment"`
	LogLevel    string         `yaml:"log_level"`
	Server      ServerConfig   `yaml:"server"`
	OpenAI      OpenAIConfig   `yaml:"openai"`
	Upload      UploadConfig   `yaml:"upload"`
	Settings    SettingsConfig `yaml:"settings"`
	Media       MediaConfig    `yaml:"media"`
	Player      PlayerConfig   `yaml:"player"`

	// InitialCredential seeds the settings store when it holds no key yet.
	InitialCredential string `yaml:"-"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	// AllowOrigins lists the browser origins served CORS headers. Empty allows any.
	AllowOrigins []string `yaml:"allow_origins"`
}

type OpenAIConfig struct {
	Model    string        `yaml:"model"`
	Language string        `yaml:"language"`
	Prompt   string        `yaml:"prompt"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type UploadConfig struct {
	MaxBytes     int64 `yaml:"max_bytes"`
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// SettingsConfig selects where the credential is persisted.
type SettingsConfig struct {
	Backend       string `yaml:"backend"` // sqlite | redis | memory
	SQLitePath    string `yaml:"sqlite_path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// MediaConfig selects where uploaded audio is kept while it is playable.
type MediaConfig struct {
	Backend string      `yaml:"backend"` // memory | file | minio
	Minio   MinioConfig `yaml:"minio"`
}

type MinioConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	Bucket    string        `yaml:"bucket"`
	UseSSL    bool          `yaml:"use_ssl"`
	URLExpiry time.Duration `yaml:"url_expiry"`
}

type PlayerConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	SkipSeconds  float64       `yaml:"skip_seconds"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         DefaultHTTPPort,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  2 * time.Minute,
		},
		OpenAI: OpenAIConfig{
			Model:   DefaultModel,
			Timeout: DefaultOpenAITimeout,
		},
		Upload: UploadConfig{
			MaxBytes:     DefaultMaxUploadBytes,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Settings: SettingsConfig{
			Backend:    "sqlite",
			SQLitePath: "data/settings.db",
			RedisAddr:  "localhost:6379",
		},
		Media: MediaConfig{
			Backend: "memory",
			Minio: MinioConfig{
				Endpoint:  "localhost:9000",
				Bucket:    "wsync-media",
				URLExpiry: time.Hour,
			},
		},
		Player: PlayerConfig{
			TickInterval: DefaultTickInterval,
			SkipSeconds:  DefaultSkipSeconds,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if it
// exists) and environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("WSYNC_CONFIG")
	}
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(os.ExpandEnv(path))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case os.IsNotExist(err):
		// defaults and environment only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
