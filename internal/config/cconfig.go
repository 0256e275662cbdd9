package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Auth    AuthConfig
	JWT     JWTConfig
	Tanques TanquesConfig
}

type ServerConfig struct {
	Port        int
	Environment string
	LogLevel    string
}

// BackendConfig describes the upstream Bauhaus REST backend this service
// aggregates from.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	// Token is the bearer credential sent on mutating calls to the backend.
	Token string
}

// AuthConfig holds the single operator credential pair. The password is
// stored as a bcrypt hash, never in clear.
type AuthConfig struct {
	Usuario      string
	PasswordHash string
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type TanquesConfig struct {
	PollInterval time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        getIntEnv("PORT", 4174),
			Environment: getEnv("GIN_MODE", "debug"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3001/api"),
			Timeout: getDurationEnv("BACKEND_TIMEOUT", 30*time.Second),
			Token:   getEnv("BACKEND_TOKEN", ""),
		},
		Auth: AuthConfig{
			Usuario: getEnv("AUTH_USUARIO", "bauhaus"),
			// Hash of the development credential; production must override.
			PasswordHash: getEnv("AUTH_PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "bauhaus-reports-secret-key-2024"),
			ExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour),
		},
		Tanques: TanquesConfig{
			PollInterval: getDurationEnv("TANQUES_POLL_INTERVAL", 60*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
