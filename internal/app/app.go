package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/idxpulse/brokerpulse/config"
	"github.com/idxpulse/brokerpulse/internal/api"
	"github.com/idxpulse/brokerpulse/internal/ingestion"
	"github.com/idxpulse/brokerpulse/internal/logger"
	"github.com/idxpulse/brokerpulse/internal/query"
	"github.com/idxpulse/brokerpulse/internal/service"
	"github.com/idxpulse/brokerpulse/internal/storage"
)

// InitializeApp wires every dependency of API mode and returns the
// configured router, a cleanup function, and any initialization error.
//
// Responsibilities:
//   - Opens the local source-file store.
//   - Connects to PostgreSQL for the ingestion audit log (non-fatal:
//     the API runs without an audit log if the database is down).
//   - Builds the query engine and the snapshot-owning service.
//   - Runs one initial ingestion pass so the API starts populated.
//   - Registers routes and health probes.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	store, err := storage.NewLocalStore(cfg.Ingest.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open source store: %w", err)
	}

	var repo storage.IngestionRepository
	var dbPing func() error
	cleanup := func() {}

	db, err := postgresOpener(cfg)
	if err != nil {
		logger.L().Warn().Err(err).Msg("audit log database unavailable, continuing without it")
	} else {
		repo = storage.NewIngestionRepository(db)
		dbPing = db.Ping
		cleanup = func() { _ = db.Close() }
	}

	engine := query.NewEngine(cfg.Query.MeanOfRatios)
	svc := service.New(store, repo, engine, ingestion.Options{
		Parallel:    cfg.Ingest.Parallel,
		SalvageRows: cfg.Ingest.SalvageRows,
	})

	// Populate the first snapshot; an empty or failing store still
	// yields a serving API with an empty dataset.
	if _, err := svc.Refresh(ctx); err != nil {
		logger.L().Warn().Err(err).Msg("initial dataset build failed, starting empty")
	}

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(dbPing)
	healthHandler.Register(router)

	return router, cleanup, nil
}
