package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Server config
const SERVER_ADDRESS = ":8080"
const SERVER_SHUTDOWN_TIMEOUT_SECONDS = 5

// Propalyze backend config
const API_BASE_URL = "http://localhost:8000/api"
const API_TIMEOUT_SECONDS = 10

// Redis config; an empty address selects the in-memory cache
const REDIS_DB_ADDRESS = ""
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Property analysis responses are cached for this long
const PROPERTY_ANALYSIS_CACHE_TTL_MINUTES = 30

// Visitor search sessions idle longer than this are evicted
const SEARCH_SESSION_TTL_MINUTES = 30

// Config is the runtime configuration. Every field falls back to the constants above.
type Config struct {
	Env               string
	ServerAddress     string
	ShutdownTimeout   time.Duration
	APIBaseURL        string
	APITimeout        time.Duration
	RedisAddress      string
	RedisPassword     string
	RedisDB           int
	AnalysisCacheTTL  time.Duration
	SearchSessionTTL  time.Duration
	AllowedOrigins    []string
	LogLevel          slog.Level
	LogJSON           bool
	LogColor          bool
	DefaultPropertyID string
}

// Load reads an optional .env file and then the environment.
func Load(envPath ...string) *Config {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		slog.Debug("No .env file loaded, using environment variables", "error", err)
	}

	return &Config{
		Env:               getEnv("PROPALYZE_ENV", "prod"),
		ServerAddress:     getEnv("SERVER_ADDRESS", SERVER_ADDRESS),
		ShutdownTimeout:   time.Duration(getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", SERVER_SHUTDOWN_TIMEOUT_SECONDS)) * time.Second,
		APIBaseURL:        strings.TrimRight(getEnv("API_BASE_URL", API_BASE_URL), "/"),
		APITimeout:        time.Duration(getEnvAsInt("API_TIMEOUT_SECONDS", API_TIMEOUT_SECONDS)) * time.Second,
		RedisAddress:      getEnv("REDIS_DB_ADDRESS", REDIS_DB_ADDRESS),
		RedisPassword:     getEnv("REDIS_DB_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:           getEnvAsInt("REDIS_DB", REDIS_DB),
		AnalysisCacheTTL:  time.Duration(getEnvAsInt("PROPERTY_ANALYSIS_CACHE_TTL_MINUTES", PROPERTY_ANALYSIS_CACHE_TTL_MINUTES)) * time.Minute,
		SearchSessionTTL:  time.Duration(getEnvAsInt("SEARCH_SESSION_TTL_MINUTES", SEARCH_SESSION_TTL_MINUTES)) * time.Minute,
		AllowedOrigins:    getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
		LogLevel:          getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
		LogJSON:           getEnvAsBool("LOG_JSON", false),
		LogColor:          getEnvAsBool("LOG_COLOR", true),
		DefaultPropertyID: getEnv("DEFAULT_PROPERTY_ID", "123"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("Environment variable is not an int, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		slog.Warn("Environment variable is not a bool, using default", "key", key, "value", valStr, "default", defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnvAsLevel(key string, defaultValue slog.Level) slog.Level {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(valStr)); err != nil {
		slog.Warn("Environment variable is not a log level, using default", "key", key, "value", valStr)
		return defaultValue
	}
	return level
}
