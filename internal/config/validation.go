package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return err
	}
	if err := ValidateTimeout(c.OpenAI.Timeout, "openai"); err != nil {
		return err
	}
	if c.OpenAI.BaseURL != "" {
		if err := ValidateURL(c.OpenAI.BaseURL, "openai base"); err != nil {
			return err
		}
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max_bytes must be positive")
	}
	if c.Upload.MaxBodyBytes < c.Upload.MaxBytes {
		return fmt.Errorf("upload max_body_bytes must be at least max_bytes")
	}
	if c.Player.TickInterval <= 0 {
		return fmt.Errorf("player tick_interval must be positive")
	}
	if c.Player.SkipSeconds <= 0 {
		return fmt.Errorf("player skip_seconds must be positive")
	}

	switch c.Settings.Backend {
	case "sqlite":
		if c.Settings.SQLitePath == "" {
			return fmt.Errorf("settings sqlite_path is required")
		}
	case "redis":
		if c.Settings.RedisAddr == "" {
			return fmt.Errorf("settings redis_addr is required")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown settings backend: %s", c.Settings.Backend)
	}

	switch c.Media.Backend {
	case "memory", "file":
	case "minio":
		if c.Media.Minio.Endpoint == "" {
			return fmt.Errorf("media minio endpoint is required")
		}
	default:
		return fmt.Errorf("unknown media backend: %s", c.Media.Backend)
	}

	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("unknown environment: %s", c.Environment)
	}
	return nil
}

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateAPIKey only requires a non-empty key; the service decides the rest.
func ValidateAPIKey(apiKey string) error {
	if strings.TrimSpace(apiKey) == "" {
		return fmt.Errorf("API key is required")
	}
	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("%s port invalid", name)
	}

	return nil
}
