// Package config loads the console's runtime configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProductionConfig holds all runtime configuration for the console service.
type ProductionConfig struct {
	Server   ServerConfig
	Security SecurityConfig
	JWT      JWTConfig
	Platform PlatformConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Metrics  MetricsConfig
	Export   ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSOrigins       []string
	TrustedProxies    []string
}

// JWTConfig holds console session token settings. The console signs its own
// short-lived tokens; the platform bearer token never leaves the server.
type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
}

// PlatformConfig points at the upstream voice platform API.
type PlatformConfig struct {
	BaseURL         string
	RequestTimeout  time.Duration
	CallPageSize    int
	ExportPageSize  int
	ArtifactWorkers int
}

// RedisConfig holds session and wizard draft store settings.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SessionTTL   time.Duration
	DraftTTL     time.Duration
}

// LoggingConfig holds structured log output settings.
type LoggingConfig struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// ExportConfig bounds report generation.
type ExportConfig struct {
	MaxReportCalls int
}

// LoadProductionConfig reads configuration from the environment.
func LoadProductionConfig() (*ProductionConfig, error) {
	loadEnvFile(".env")

	cfg := &ProductionConfig{
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Security: SecurityConfig{
			RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
			CORSOrigins:       getEnvStringSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),
			TrustedProxies:    getEnvStringSlice("TRUSTED_PROXIES", nil),
		},
		JWT: JWTConfig{
			SecretKey:      getEnvString("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
			Issuer:         getEnvString("JWT_ISSUER", "voxlane-console"),
		},
		Platform: PlatformConfig{
			BaseURL:         getEnvString("PLATFORM_BASE_URL", ""),
			RequestTimeout:  getEnvDuration("PLATFORM_REQUEST_TIMEOUT", 15*time.Second),
			CallPageSize:    getEnvInt("PLATFORM_CALL_PAGE_SIZE", 20),
			ExportPageSize:  getEnvInt("PLATFORM_EXPORT_PAGE_SIZE", 100),
			ArtifactWorkers: getEnvInt("PLATFORM_ARTIFACT_WORKERS", 8),
		},
		Redis: RedisConfig{
			Host:         getEnvString("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnvString("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			SessionTTL:   getEnvDuration("REDIS_SESSION_TTL", 24*time.Hour),
			DraftTTL:     getEnvDuration("REDIS_DRAFT_TTL", 72*time.Hour),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			FilePath:   getEnvString("LOG_FILE_PATH", ""),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
		Export: ExportConfig{
			MaxReportCalls: getEnvInt("EXPORT_MAX_REPORT_CALLS", 10000),
		},
	}

	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateProductionConfig rejects configurations that cannot run safely.
func ValidateProductionConfig(cfg *ProductionConfig) error {
	if cfg.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if cfg.Platform.BaseURL == "" {
		return fmt.Errorf("PLATFORM_BASE_URL is required")
	}
	if !strings.HasPrefix(cfg.Platform.BaseURL, "http://") && !strings.HasPrefix(cfg.Platform.BaseURL, "https://") {
		return fmt.Errorf("PLATFORM_BASE_URL must be an http(s) URL")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Platform.CallPageSize < 1 {
		return fmt.Errorf("PLATFORM_CALL_PAGE_SIZE must be positive")
	}
	if cfg.Platform.ArtifactWorkers < 1 {
		return fmt.Errorf("PLATFORM_ARTIFACT_WORKERS must be positive")
	}
	if cfg.Export.MaxReportCalls < 1 {
		return fmt.Errorf("EXPORT_MAX_REPORT_CALLS must be positive")
	}
	return nil
}

// loadEnvFile loads KEY=VALUE pairs from a file without overriding variables
// already present in the environment. Missing files are ignored.
func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

func getEnvString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvStringSlice(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
