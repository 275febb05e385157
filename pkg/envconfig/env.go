package envconfig

import (
	"os"
	"strconv"

	"sabrosa/pkg/logger"

	"github.com/joho/godotenv"
)

// LoadEnvFile loads environment variables from the given file if it exists.
// Variables already set in the environment are not overridden.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}
	return godotenv.Load(path)
}

// GetEnv returns the value of the environment variable or the fallback
// when unset or empty.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable or the
// fallback when unset or not a number.
func GetEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// GetLogLevel reads LOG_LEVEL and maps it to a logger level, defaulting
// to info.
func GetLogLevel() logger.LogLevel {
	switch GetEnv("LOG_LEVEL", "info") {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}
