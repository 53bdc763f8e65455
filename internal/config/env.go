package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error: variables might be set system-wide.
// It returns the path that was loaded, or "".
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// applyEnv overrides file values with WSYNC_* and provider variables.
func applyEnv(cfg *Config) error {
	setString(&cfg.Environment, "WSYNC_ENV")
	setString(&cfg.LogLevel, "WSYNC_LOG_LEVEL")

	setString(&cfg.Server.Host, "WSYNC_HOST")
	setString(&cfg.Server.Port, "WSYNC_PORT")

	setString(&cfg.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.OpenAI.Model, "WSYNC_MODEL")
	setString(&cfg.OpenAI.Language, "WSYNC_LANGUAGE")
	cfg.InitialCredential = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))

	setString(&cfg.Settings.Backend, "WSYNC_SETTINGS_BACKEND")
	setString(&cfg.Settings.SQLitePath, "WSYNC_SQLITE_PATH")
	setString(&cfg.Settings.RedisAddr, "WSYNC_REDIS_ADDR")
	setString(&cfg.Settings.RedisPassword, "WSYNC_REDIS_PASSWORD")

	setString(&cfg.Media.Backend, "WSYNC_MEDIA_BACKEND")
	setString(&cfg.Media.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Media.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Media.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Media.Minio.Bucket, "MINIO_BUCKET")
	if v, ok := os.LookupEnv("MINIO_USE_SSL"); ok {
		cfg.Media.Minio.UseSSL = v == "true"
	}

	if v, ok := lookup("WSYNC_MAX_UPLOAD_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid WSYNC_MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.Upload.MaxBytes = n
	}
	if v, ok := lookup("WSYNC_OPENAI_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid WSYNC_OPENAI_TIMEOUT: %w", err)
		}
		cfg.OpenAI.Timeout = d
	}

	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}
