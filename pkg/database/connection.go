// pkg/database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sabrosa/pkg/logger"

	_ "github.com/lib/pq"
)

// Connection pool configuration constants
const (
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 2
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultConnMaxIdleTime = 30 * time.Second
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Connection pool settings (optional)
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns a database configuration with sensible defaults.
// The database is only ever used as a catalog source, so the pool is small.
func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "",
		DBName:          "sabrosa",
		SSLMode:         "disable",
		MaxOpenConns:    DefaultMaxOpenConns,
		MaxIdleConns:    DefaultMaxIdleConns,
		ConnMaxLifetime: DefaultConnMaxLifetime,
		ConnMaxIdleTime: DefaultConnMaxIdleTime,
	}
}

// BuildConnectionString builds a PostgreSQL connection string from config
func (c Config) BuildConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func NewConnection(config Config, log *logger.Logger) (*DB, error) {
	log.Info("Establishing database connection",
		"host", config.Host,
		"port", config.Port,
		"database", config.DBName,
		"ssl_mode", config.SSLMode)

	dsn := config.BuildConnectionString()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Error("Failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Configure connection pool with defaults if not specified
	maxOpenConns := config.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = DefaultMaxOpenConns
	}

	maxIdleConns := config.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = DefaultMaxIdleConns
	}

	connMaxLifetime := config.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = DefaultConnMaxLifetime
	}

	connMaxIdleTime := config.ConnMaxIdleTime
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = DefaultConnMaxIdleTime
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	log.Debug("Database connection pool configured",
		"max_open_conns", maxOpenConns,
		"max_idle_conns", maxIdleConns,
		"conn_max_lifetime", connMaxLifetime,
		"conn_max_idle_time", connMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		log.Error("Failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	log.Info("Database connection established successfully",
		"host", config.Host,
		"port", config.Port,
		"database", config.DBName)
	return &DB{DB: db, logger: log}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	db.logger.Info("Closing database connection")
	return db.DB.Close()
}

// HealthCheck returns the database health status
func (db *DB) HealthCheck() error {
	db.logger.Debug("Performing database health check")

	if err := db.Ping(); err != nil {
		db.logger.Error("Database health check failed", "error", err)
		return fmt.Errorf("database ping failed: %v", err)
	}

	var result int
	err := db.QueryRow("SELECT 1").Scan(&result)
	if err != nil {
		db.logger.Error("Database query test failed", "error", err)
		return fmt.Errorf("database query test failed: %v", err)
	}

	if result != 1 {
		return fmt.Errorf("unexpected query result: got %d, expected 1", result)
	}

	db.logger.Debug("Database health check passed")
	return nil
}

// ValidateConnection validates the database connection with timeout
func (db *DB) ValidateConnection(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db.logger.Debug("Validating database connection", "timeout", timeout)

	err := db.PingContext(ctx)
	if err != nil {
		db.logger.Error("Database connection validation failed", "error", err, "timeout", timeout)
		return fmt.Errorf("database ping failed within %v: %v", timeout, err)
	}

	db.logger.Debug("Database connection validation successful")
	return nil
}
