package envconfig

import (
	"sabrosa/pkg/database"
)

// LoadDatabaseConfig loads catalog database configuration from environment
// variables, falling back to the package defaults for anything unset.
func LoadDatabaseConfig() database.Config {
	config := database.DefaultConfig()

	if host := GetEnv("DB_HOST", ""); host != "" {
		config.Host = host
	}

	config.Port = GetEnvInt("DB_PORT", config.Port)

	if user := GetEnv("DB_USER", ""); user != "" {
		config.User = user
	}

	if password := GetEnv("DB_PASSWORD", ""); password != "" {
		config.Password = password
	}

	if dbname := GetEnv("DB_NAME", ""); dbname != "" {
		config.DBName = dbname
	}

	if sslmode := GetEnv("DB_SSL_MODE", ""); sslmode != "" {
		config.SSLMode = sslmode
	}

	return config
}
