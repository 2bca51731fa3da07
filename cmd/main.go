package main

//
//  @title           brokerpulse API
//  @version         1.0
//  @description     IDX broker-summary ingestion & aggregation service.
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        summary
//  @tag.description Filtered broker summaries and CSV export
//
//  @tag.name        ranking
//  @tag.description Broker rankings per field
//
//  @tag.name        files
//  @tag.description Source file upload and ingestion audit
//
//  @tag.name        dataset
//  @tag.description Dataset rebuild
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/idxpulse/brokerpulse/config"
	_ "github.com/idxpulse/brokerpulse/docs" // swagger docs
	"github.com/idxpulse/brokerpulse/internal/app"
	"github.com/idxpulse/brokerpulse/internal/dataset"
	"github.com/idxpulse/brokerpulse/internal/ingestion"
	"github.com/idxpulse/brokerpulse/internal/logger"
	"github.com/idxpulse/brokerpulse/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate
// goroutine and returns the server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
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

// gracefulShutdown terminates the HTTP server and runs cleanup when an
// interrupt signal arrives.
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

// main is the entry point of brokerpulse.
//
// Modes (selected via --mode flag):
//   - ingest: runs one ingestion pass over the source directory and
//     reports attempted/accepted counts and rejections.
//   - api:    starts the REST API serving summaries, rankings, uploads
//     and CSV export.
//
// Flags:
//   - --mode:     Execution mode ("ingest" or "api"). Default: "ingest".
//   - --dir:      Directory with source .xlsx files. Defaults to DATA_DIR.
//   - --parallel: Concurrent file workers (0 = auto, max 16).
//   - --port:     Port for API mode. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "ingest", "Mode: ingest or api")
	dir := flag.String("dir", config.AppConfig.Ingest.DataDir, "Directory with source .xlsx files")
	parallel := flag.Int("parallel", config.AppConfig.Ingest.Parallel, "How many files to process concurrently (0=auto, max 16)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Str("dir", *dir).Msg("running ingestion")

		store, err := storage.NewLocalStore(*dir)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("open source store failed")
		}

		// Audit log is best effort in CLI mode.
		var repo storage.IngestionRepository
		if db, err := app.InitPostgres(config.AppConfig); err != nil {
			logger.L().Warn().Err(err).Msg("audit log database unavailable")
		} else {
			repo = storage.NewIngestionRepository(db)
			defer func() { _ = db.Close() }()
		}

		result, err := ingestion.Run(ctx, store, repo, ingestion.Options{
			Parallel:    *parallel,
			SalvageRows: config.AppConfig.Ingest.SalvageRows,
		})
		if err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}

		ds := dataset.Build(result.Batches)
		logger.L().Info().
			Int("attempted", result.Attempted).
			Int("accepted", result.Accepted()).
			Int("rejected", len(result.Rejections)).
			Int("canonical_rows", len(ds.Rows())).
			Msg("ingestion completed")
		for _, rej := range result.Rejections {
			logger.L().Warn().Str("file", rej.File).Str("reason", string(rej.Reason)).Str("detail", rej.Detail).Msg("rejected file")
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
