package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

var ErrMissingSessionSecret = errors.New("SESSION_SECRET is required")

type Config struct {
	Port      string
	AppEnv    string
	LogLevel  string
	PublicURL string
	Timezone  *time.Location

	APIURL            string
	BackendCookieName string
	BackendTimeout    time.Duration
	BackendRPS        float64
	BackendBurst      int

	SessionSecret  string
	SessionStore   string
	SessionTTL     time.Duration
	SessionPurge   time.Duration
	SecureCookies  bool
	DBUrl          string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CORSOrigins    string
	AboutFile      string
	EnvFileMissing bool
}

func LoadConfig() (*Config, error) {
	envFileMissing := godotenv.Load() != nil

	secret, exists := os.LookupEnv("SESSION_SECRET")
	if !exists || secret == "" {
		return nil, ErrMissingSessionSecret
	}

	timezone, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	cfg := &Config{
		Port:      getEnv("PORT", "3000"),
		AppEnv:    normalizeEnv(getEnv("APP_ENV", "production")),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		PublicURL: strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:3000"), "/"),
		Timezone:  timezone,

		APIURL:            strings.TrimRight(getEnv("API_URL", "http://localhost:8000"), "/"),
		BackendCookieName: getEnv("BACKEND_COOKIE_NAME", "session"),
		BackendTimeout:    getEnvDuration("BACKEND_TIMEOUT", 10*time.Second),
		BackendRPS:        getEnvFloat("BACKEND_RPS", 0),
		BackendBurst:      getEnvInt("BACKEND_BURST", 10),

		SessionSecret:  secret,
		SessionStore:   strings.ToLower(strings.TrimSpace(getEnv("SESSION_STORE", SessionStoreMemory))),
		SessionTTL:     getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		SessionPurge:   getEnvDuration("SESSION_PURGE_INTERVAL", 15*time.Minute),
		DBUrl:          getEnv("DB_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CORSOrigins:    getEnv("CORS_ORIGINS", ""),
		AboutFile:      getEnv("ABOUT_FILE", ""),
		EnvFileMissing: envFileMissing,
	}
	cfg.SecureCookies = getEnvBool("SECURE_COOKIES", strings.HasPrefix(cfg.PublicURL, "https://"))

	switch cfg.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStorePostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("DB_URL is required when SESSION_STORE=%s", SessionStorePostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q", cfg.SessionStore)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

// CallbackURL is where the backend sends the browser after login.
func (c *Config) CallbackURL() string {
	return c.PublicURL + "/auth/callback"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
