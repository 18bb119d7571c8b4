package config

import (
	"os"

	"lottodesk/internal/pkg/cwl"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseDriver  string // mysql, postgres or sqlite
	DatabaseURL     string
	RedisURL        string
	CwlAPIURL       string
	LotteryDumpPath string
	LogLevel        string
	LogEncoding     string
	HTTPAddr        string
}

// DefaultDatabaseURL targets a local MySQL. clientFoundRows makes UPDATE
// report matched rows; loc=Local keeps DATETIME values in local wall-clock time.
const DefaultDatabaseURL = "root:@tcp(127.0.0.1:3306)/test?parseTime=true&clientFoundRows=true&loc=Local"

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// Load .env file. In production, env variables are often set directly.
	_ = godotenv.Load()

	return &Config{
		DatabaseDriver:  getEnv("DATABASE_DRIVER", "mysql"),
		DatabaseURL:     getEnv("DATABASE_URL", DefaultDatabaseURL),
		RedisURL:        getEnv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		CwlAPIURL:       getEnv("CWL_API_URL", cwl.DefaultBaseURL),
		LotteryDumpPath: getEnv("LOTTERY_DUMP_PATH", "lottery_data.json"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogEncoding:     getEnv("LOG_ENCODING", "console"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
	}, nil
}

// Helper function to get env var or return default
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
