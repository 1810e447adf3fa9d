package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	NATSURL         string
	NATSConnTimeout time.Duration

	OTLPCollectorURL string

	LeverBaseURL      string
	GreenhouseBaseURL string
	RemotiveBaseURL   string
	ProviderTimeout   time.Duration
	ProviderRetries   int
	ProviderBackoff   time.Duration

	ProfileSourceURL string
	ProfileTTL       time.Duration

	SearchDeadline time.Duration
	TopK           int

	RetentionHorizon time.Duration
	PurgeSchedule    string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "mingus"),

		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),

		OTLPCollectorURL: getEnvString("OTLP_COLLECTOR_URL", "localhost:4317"),

		LeverBaseURL:      getEnvString("LEVER_BASE_URL", "https://api.lever.co/v0"),
		GreenhouseBaseURL: getEnvString("GREENHOUSE_BASE_URL", "https://boards-api.greenhouse.io/v1"),
		RemotiveBaseURL:   getEnvString("REMOTIVE_BASE_URL", "https://remotive.com/api"),
		ProviderTimeout:   getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
		ProviderRetries:   getEnvInt("PROVIDER_RETRIES", 3),
		ProviderBackoff:   getEnvDuration("PROVIDER_BACKOFF", 500*time.Millisecond),

		ProfileSourceURL: getEnvString("PROFILE_SOURCE_URL", "https://api.glassdoor.example.com/v1"),
		ProfileTTL:       getEnvDuration("PROFILE_TTL", 24*time.Hour),

		SearchDeadline: getEnvDuration("SEARCH_DEADLINE", 30*time.Second),
		TopK:           getEnvInt("SEARCH_TOP_K", 50),

		RetentionHorizon: getEnvDuration("RETENTION_HORIZON", 90*24*time.Hour),
		PurgeSchedule:    getEnvString("PURGE_SCHEDULE", "0 3 * * *"),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
