package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/insynpulse/config"
	"github.com/guttosm/insynpulse/internal/api"
	"github.com/guttosm/insynpulse/internal/registry"
	"github.com/guttosm/insynpulse/internal/service"
	"github.com/guttosm/insynpulse/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (TransactionsRepository).
//   - Builds a registry client used for name autocomplete.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewTransactionsRepository(db)

	// Registry client doubles as the autocomplete backend
	client := registry.NewClient(cfg.Registry)

	svc := service.NewTransactionService(repo, client)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
