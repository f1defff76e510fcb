package main

//
//  @title           insynpulse API
//  @version         1.0
//  @description     Insynsregistret insider transaction ingestion & query service.
//  @termsOfService  https://github.com/guttosm/insynpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/insynpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        transactions
//  @tag.description Listing of ingested insider transactions
//
//  @tag.name        issuers
//  @tag.description Per-issuer aggregates
//
//  @tag.name        registry
//  @tag.description Live lookups against Insynsregistret
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/insynpulse/config"
	"github.com/guttosm/insynpulse/db/migrations"
	_ "github.com/guttosm/insynpulse/docs" // swagger docs
	"github.com/guttosm/insynpulse/internal/app"
	"github.com/guttosm/insynpulse/internal/ingestion"
	"github.com/guttosm/insynpulse/internal/logger"
	"github.com/guttosm/insynpulse/internal/registry"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// validateFlags checks mode-specific flag combinations and resolves the export language.
func validateFlags(mode, file, lang string) (registry.Language, error) {
	switch mode {
	case "ingest", "migrate", "api":
	case "file":
		if file == "" {
			return registry.Swedish, errors.New("--file is required in file mode")
		}
	default:
		return registry.Swedish, fmt.Errorf("unknown mode %q", mode)
	}
	return registry.ParseLanguage(lang)
}

// main is the entry point of the insynpulse application.
//
// Modes (selected via --mode flag):
//   - ingest:  Downloads the exports of the last N business days from Insynsregistret and persists them.
//   - file:    Parses a single export file saved from the registry and persists it.
//   - migrate: Applies the embedded database migrations.
//   - api:     Starts the REST API to expose ingested transactions.
//
// Flags:
//   - --mode:     Execution mode. Default: "ingest".
//   - --days:     Number of last business days to ingest (1-7).
//   - --parallel: Days fetched concurrently (0=auto).
//   - --force:    Reprocess days that were already ingested.
//   - --file:     Export file for file mode.
//   - --lang:     Export language ("sv" or "en"). Defaults to REGISTRY_LANGUAGE.
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "ingest", "Mode: ingest, file, migrate or api")
	days := flag.Int("days", 7, "Number of last business days to ingest (1-7)")
	parallel := flag.Int("parallel", 0, "How many days to fetch concurrently (0=auto up to CPU, max 7)")
	force := flag.Bool("force", false, "Reprocess days even if already ingested (deletes existing transactions for that day)")
	file := flag.String("file", "", "Registry export to load in file mode")
	lang := flag.String("lang", config.AppConfig.Registry.Language, "Export language: sv or en")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	language, err := validateFlags(*mode, *file, *lang)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("invalid flags")
	}

	switch *mode {
	case "ingest", "file", "migrate":
		// Direct DB connection for batch modes
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		switch *mode {
		case "migrate":
			logger.L().Info().Msg("applying migrations")
			if err := migrations.Up(db); err != nil {
				logger.L().Fatal().Err(err).Msg("migration failed")
			}
			logger.L().Info().Msg("migrations applied")

		case "file":
			n, err := ingestion.ProcessFile(ctx, *file, db, language, config.AppConfig.Registry.ParseWorkers)
			if err != nil {
				logger.L().Fatal().Err(err).Str("file", *file).Msg("file ingestion failed")
			}
			logger.L().Info().Str("file", *file).Int("rows", n).Msg("file ingestion completed")

		default:
			logger.L().Info().Str("language", language.String()).Int("days", *days).Msg("running ingestion")
			client := registry.NewClient(config.AppConfig.Registry)
			if err := ingestion.ProcessDays(ctx, client, db, language, *days, *parallel, *force); err != nil {
				logger.L().Fatal().Err(err).Msg("ingestion failed")
			}
			logger.L().Info().Msg("ingestion completed successfully")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	}
}
