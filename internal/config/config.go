package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL    = "24h"
	defaultConfirmCodeTTL  = "15m"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultConfirmPepper   = "change-me-confirm-pepper"
	defaultDatabaseDSN     = "havenagent.db"
	defaultUploadDir       = "./uploads/agent-documents"
	defaultMaxDocumentSize = 10 << 20 // 10 MiB
)

// RuntimeConfig is loaded once at startup from the environment.
type RuntimeConfig struct {
	AppEnv          string
	DatabaseDSN     string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	ConfirmPepper   string
	ConfirmCodeTTL  time.Duration
	UploadDir       string
	MaxDocumentSize int64
	MailerEnabled   bool
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.DatabaseDSN = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseDSN))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.ConfirmPepper = strings.TrimSpace(getEnv("EMAIL_CONFIRM_PEPPER", defaultConfirmPepper))
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))
	cfg.MaxDocumentSize = defaultMaxDocumentSize
	cfg.MailerEnabled = parseBoolEnv("DEV_MAILER_ENABLED", "true")

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.ConfirmCodeTTL, err = parseDurationEnv("EMAIL_CONFIRM_TTL", defaultConfirmCodeTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *RuntimeConfig) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.ConfirmCodeTTL <= 0 {
		return fmt.Errorf("EMAIL_CONFIRM_TTL must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.ConfirmPepper == "" || cfg.ConfirmPepper == defaultConfirmPepper {
			return fmt.Errorf("in prod/release EMAIL_CONFIRM_PEPPER must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBoolEnv(key, def string) bool {
	v := strings.ToLower(strings.TrimSpace(getEnv(key, def)))
	return v == "1" || v == "true" || v == "yes"
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := strings.TrimSpace(getEnv(key, def))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
