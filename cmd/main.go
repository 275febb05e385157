package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"sabrosa/internal/handler"
	"sabrosa/internal/repositories"
	"sabrosa/internal/router"
	"sabrosa/internal/service"
	"sabrosa/pkg/database"
	"sabrosa/pkg/envconfig"
	"sabrosa/pkg/flags"
	"sabrosa/pkg/logger"
	"sabrosa/pkg/shutdownsetup"
)

func main() {
	// Parse command-line flags
	flagConfig := flags.Parse()

	// Validate flag configuration
	if err := flagConfig.Validate(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		return
	}

	envErr := envconfig.LoadEnvFile(".env")

	loggerConfig := logger.Config{
		Level:        envconfig.GetLogLevel(),
		Format:       envconfig.GetEnv("LOG_FORMAT", "json"),
		Output:       envconfig.GetEnv("LOG_OUTPUT", "stdout"),
		EnableCaller: envconfig.GetEnv("LOG_ENABLE_CALLER", "true") == "true",
		Environment:  envconfig.GetEnv("ENVIRONMENT", "development"),
	}

	appLogger := logger.New(loggerConfig)

	if envErr != nil {
		appLogger.Warn("Failed to load .env file", "error", envErr)
	} else {
		appLogger.Debug(".env file loaded successfully")
	}

	appLogger.Info("Starting Sabrosa storefront",
		"environment", loggerConfig.Environment,
		"log_level", loggerConfig.Level)

	// Build the catalog. The default is the built-in bakery fixtures;
	// CATALOG_SOURCE=postgres loads the same records out of the catalog
	// database instead.
	catalogRepo := loadCatalog(appLogger)

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(appLogger)

	// Initialize services
	cartService := service.NewCartService(catalogRepo, appLogger)
	catalogService := service.NewCatalogService(catalogRepo, appLogger)
	orderService := service.NewOrderService(catalogRepo, appLogger)

	// Initialize handlers
	cartHandler := handler.NewCartHandler(cartService, sessionRepo, appLogger)
	catalogHandler := handler.NewCatalogHandler(catalogService, sessionRepo, appLogger)
	orderHandler := handler.NewOrderHandler(orderService, sessionRepo, appLogger)

	mux := router.NewRouter(cartHandler, catalogHandler, orderHandler)

	httpHandler := appLogger.HTTPMiddleware(mux)

	initialPort := flagConfig.Port
	if initialPort == "" {
		initialPort = envconfig.GetEnv("PORT", "8080")
	}
	host := envconfig.GetEnv("HOST", "localhost")

	port := initialPort

	server := &http.Server{
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	maxRetries := 3
	for i := 0; i < maxRetries; i++ {
		server.Addr = host + ":" + port

		go func() {
			appLogger.Info("Starting HTTP server",
				"host", host,
				"port", port,
				"address", server.Addr)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLogger.Error("Server error", "error", err)
				serverErrors <- err
			}
		}()

		select {
		case err := <-serverErrors:
			if strings.Contains(err.Error(), "address already in use") && i < maxRetries-1 {
				portNum := 8080 + i + 1
				port = fmt.Sprintf("%d", portNum)
				appLogger.Warn("Port already in use, trying alternative port",
					"current_port", server.Addr,
					"next_port", port)
				continue
			} else {
				appLogger.Error("Failed to start server after retries", "error", err)
				return
			}
		case <-time.After(200 * time.Millisecond):
			appLogger.Info("Server started successfully", "port", port)
		}

		break
	}

	select {
	case err := <-serverErrors:
		appLogger.Error("Could not start server", "error", err)
		return
	default:
		shutdownsetup.SetupGracefulShutdown(server, appLogger)
	}
}

// loadCatalog picks the catalog source. Any database problem falls back to
// the fixtures so the storefront always comes up.
func loadCatalog(appLogger *logger.Logger) repositories.CatalogRepositoryInterface {
	if envconfig.GetEnv("CATALOG_SOURCE", "static") != "postgres" {
		return repositories.NewDefaultCatalogRepository(appLogger)
	}

	dbConfig := envconfig.LoadDatabaseConfig()
	db, err := database.NewConnection(dbConfig, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to catalog database, using built-in catalog", "error", err)
		return repositories.NewDefaultCatalogRepository(appLogger)
	}

	catalogRepo, err := repositories.LoadCatalogFromDB(db, appLogger)
	// The catalog is read once at startup; the connection is not needed
	// afterwards.
	if closeErr := db.Close(); closeErr != nil {
		appLogger.Warn("Failed to close catalog database connection", "error", closeErr)
	}
	if err != nil {
		appLogger.Error("Failed to load catalog from database, using built-in catalog", "error", err)
		return repositories.NewDefaultCatalogRepository(appLogger)
	}

	return catalogRepo
}
