package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort        string
	Environment    string
	TrustedProxies []string
	CORSOrigins    []string

	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbParams   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	StatsCacheTTL time.Duration

	JWTSecret string

	RolloverInterval time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		Environment:    getEnv("APP_ENV", "development"),
		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),

		DbHost:     getEnv("MYSQL_HOST", "db"),
		DbPort:     getEnv("MYSQL_PORT", "3306"),
		DbUser:     getEnv("MYSQL_USER", "taskboard"),
		DbPassword: getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:     getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:   getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		StatsCacheTTL: getEnvDuration("STATS_CACHE_TTL", 30*time.Second),

		JWTSecret: getEnv("JWT_SECRET", ""),

		RolloverInterval: getEnvDuration("ROLLOVER_INTERVAL", 5*time.Minute),
	}
}

func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
