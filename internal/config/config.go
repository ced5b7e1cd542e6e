package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPass     string
	DBName     string
	ServerPort string
	RedisURL   string
	Env        string
	RedisTTL   time.Duration

	// MoveTimeout bounds a single move transaction, permission check
	// included. A timeout before commit leaves no visible state change.
	MoveTimeout time.Duration

	// EventBufferSize is the capacity of the live-event channel; publishes
	// beyond it are dropped rather than blocking a request.
	EventBufferSize int
}

func LoadConfig() Config {
	ttlStr := getEnv("REDIS_TTL", "5m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 5 * time.Minute
	}

	moveTimeoutStr := getEnv("MOVE_TIMEOUT", "5s")
	moveTimeout, err := time.ParseDuration(moveTimeoutStr)
	if err != nil {
		moveTimeout = 5 * time.Second
	}

	return Config{
		DBHost:          getEnv("DB_HOST", "postgres"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPass:          getEnv("DB_PASSWORD", "password"),
		DBName:          getEnv("DB_NAME", "db_taskboard"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		RedisURL:        getEnv("REDIS_URL", "redis:6379"),
		Env:             getEnv("ENV", "dev"),
		RedisTTL:        ttl,
		MoveTimeout:     moveTimeout,
		EventBufferSize: getEnvAsInt("EVENT_BUFFER_SIZE", 100),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return fallback
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}
