package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAddr      = ":8080"
	defaultDSN       = "foodgram.db"
	defaultMediaDir  = "./media"
	defaultJWTSecret = "change-me-jwt-secret"
	defaultTokenTTL  = "720h"
	defaultPageSize  = "6"
)

type Config struct {
	Addr      string
	DSN       string
	MediaDir  string
	JWTSecret string
	TokenTTL  time.Duration
	PageSize  int
}

func Load() (*Config, error) {
	cfg := &Config{
		Addr:      getEnv("ADDR", defaultAddr),
		DSN:       getEnv("DATABASE_URL", defaultDSN),
		MediaDir:  getEnv("MEDIA_DIR", defaultMediaDir),
		JWTSecret: strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
	}

	var err error
	cfg.TokenTTL, err = parseDurationEnv("TOKEN_TTL", defaultTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg.PageSize, err = parseIntEnv("PAGE_SIZE", defaultPageSize)
	if err != nil {
		return nil, err
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be >= 1, got %d", cfg.PageSize)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", key, raw)
	}
	return d, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q", key, raw)
	}
	return n, nil
}
