package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/idxpulse/brokerpulse/internal/dataset"
	"github.com/idxpulse/brokerpulse/internal/domain/models"
	"github.com/idxpulse/brokerpulse/internal/ingestion"
	"github.com/idxpulse/brokerpulse/internal/logger"
	"github.com/idxpulse/brokerpulse/internal/query"
	"github.com/idxpulse/brokerpulse/internal/storage"
)

// BrokerService is the business layer between HTTP handlers and the
// consolidation/query core. It owns the current dataset snapshot.
type BrokerService interface {
	// Refresh rebuilds the canonical dataset from every source file in
	// the store and swaps it in atomically.
	Refresh(ctx context.Context) (*ingestion.PassResult, error)
	// Upload validates one file and writes it to the store
	// (overwriting any previous file with that name).
	Upload(ctx context.Context, name string, data []byte) error
	// Summary runs a filtered summary query against the snapshot.
	Summary(ctx context.Context, req query.Request) ([]models.QueryRow, error)
	// Ranking ranks all real brokers by one field over a date range.
	Ranking(ctx context.Context, field models.Field, from, to time.Time) ([]models.RankingRow, error)
	// Brokers lists the broker keys present in the snapshot.
	Brokers(ctx context.Context) []string
	// Ingestions reads the audit log, newest first.
	Ingestions(ctx context.Context, limit int) ([]storage.IngestionEntry, error)
}

// ErrNoAuditLog is returned when the audit log was not configured.
var ErrNoAuditLog = errors.New("ingestion audit log not configured")

type brokerService struct {
	store  storage.Store
	repo   storage.IngestionRepository // may be nil
	engine *query.Engine
	opts   ingestion.Options

	mu sync.RWMutex
	ds *models.Dataset
}

// New builds the service. repo may be nil when no audit log is wired.
// The initial snapshot is the empty dataset; callers populate it via
// Refresh.
func New(store storage.Store, repo storage.IngestionRepository, engine *query.Engine, opts ingestion.Options) BrokerService {
	return &brokerService{
		store:  store,
		repo:   repo,
		engine: engine,
		opts:   opts,
		ds:     models.EmptyDataset(),
	}
}

func (s *brokerService) Refresh(ctx context.Context) (*ingestion.PassResult, error) {
	result, err := ingestion.Run(ctx, s.store, s.repo, s.opts)
	if err != nil {
		return nil, fmt.Errorf("ingestion pass: %w", err)
	}

	// Build the new snapshot fully before publishing it; readers never
	// observe a partially built dataset.
	ds := dataset.Build(result.Batches)

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()

	logger.L().Info().
		Int("rows", len(ds.Rows())).
		Int("accepted_files", result.Accepted()).
		Int("rejected_files", len(result.Rejections)).
		Msg("dataset rebuilt")
	return result, nil
}

func (s *brokerService) Upload(ctx context.Context, name string, data []byte) error {
	// Validate before storing: a file that cannot be parsed would only
	// pollute the store and fail every refresh.
	if _, err := ingestion.ParseFile(name, data, s.opts.SalvageRows); err != nil {
		return err
	}
	return s.store.Put(ctx, name, data)
}

func (s *brokerService) Summary(_ context.Context, req query.Request) ([]models.QueryRow, error) {
	return s.engine.Query(s.snapshot(), req)
}

func (s *brokerService) Ranking(_ context.Context, field models.Field, from, to time.Time) ([]models.RankingRow, error) {
	return s.engine.Rank(s.snapshot(), field, from, to)
}

func (s *brokerService) Brokers(_ context.Context) []string {
	return s.snapshot().BrokerKeys()
}

func (s *brokerService) Ingestions(_ context.Context, limit int) ([]storage.IngestionEntry, error) {
	if s.repo == nil {
		return nil, ErrNoAuditLog
	}
	return s.repo.ListIngestions(limit)
}

func (s *brokerService) snapshot() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}
