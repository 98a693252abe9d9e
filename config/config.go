package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Schedule source
	ScheduleBaseURL        string
	StationCode            string
	ScheduleTimeout        time.Duration
	ScheduleUserAgent      string
	ScheduleAcceptLanguage string
	DisplayLimit           int

	// Fetch log database
	FetchLogEnabled  bool
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBConnectRetries int

	// Server
	ServerPort       string
	CORSAllowOrigins []string
	LogLevel         slog.Level
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		ScheduleBaseURL:        getEnv("SCHEDULE_BASE_URL", "https://rasp.yandex.ru"),
		StationCode:            getEnv("STATION_CODE", "9623103"),
		ScheduleTimeout:        getDuration("SCHEDULE_TIMEOUT", 15*time.Second),
		ScheduleUserAgent:      os.Getenv("SCHEDULE_USER_AGENT"),
		ScheduleAcceptLanguage: os.Getenv("SCHEDULE_ACCEPT_LANGUAGE"),
		DisplayLimit:           getInt("SCHEDULE_DISPLAY_LIMIT", 4),

		FetchLogEnabled:  getBool("FETCH_LOG_ENABLED", false),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "postgres"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           getEnv("DB_NAME", "sochischedule"),
		DBConnectRetries: getInt("DB_CONNECT_RETRIES", 30),

		ServerPort:       getEnv("SERVER_PORT", "8080"),
		CORSAllowOrigins: getList("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:         getLogLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if config.ScheduleTimeout <= 0 {
		log.Printf("WARNING: SCHEDULE_TIMEOUT must be positive, using 15s")
		config.ScheduleTimeout = 15 * time.Second
	}
	if config.FetchLogEnabled && config.DBPassword == "" {
		log.Println("WARNING: FETCH_LOG_ENABLED is set but DB_PASSWORD is empty")
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getList(key, defaultValue string) []string {
	var list []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return []string{defaultValue}
	}
	return list
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: invalid %s %q (using %d)", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("WARNING: invalid %s %q (using %t)", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("WARNING: invalid %s %q (using %s)", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getLogLevel(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		log.Printf("WARNING: invalid %s %q (using %s)", key, value, defaultValue)
		return defaultValue
	}
	return level
}
