package ingestion

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idxpulse/brokerpulse/internal/domain/models"
	"github.com/idxpulse/brokerpulse/internal/logger"
	"github.com/idxpulse/brokerpulse/internal/storage"
)

const (
	maxParallel    = 16
	perFileTimeout = 2 * time.Minute
	statusAccepted = "accepted"
	statusRejected = "rejected"
)

// Options tunes one ingestion pass.
type Options struct {
	// Parallel caps the worker count; 0 means min(16, files, NumCPU).
	Parallel int
	// SalvageRows keeps valid rows of a partially-invalid file instead
	// of rejecting the whole file.
	SalvageRows bool
}

// Rejection is one refused file with its reason code.
type Rejection struct {
	File   string
	Reason RejectReason
	Detail string
}

// PassResult is the outcome of one full ingestion pass over the store.
type PassResult struct {
	Batches    []models.DailyBatch
	Attempted  int
	Rejections []Rejection
}

// Accepted returns the number of files that produced a batch.
func (r *PassResult) Accepted() int {
	return r.Attempted - len(r.Rejections)
}

// Run fetches and parses every source file in the store using a bounded
// worker pool. A failing file is recorded as a rejection and never
// cancels its siblings; Run only errors when the store listing fails or
// the pass context is canceled.
//
// Batches are returned sorted by (date, file name) so downstream
// identity resolution is deterministic. When repo is non-nil, every
// per-file outcome is recorded in the ingestion audit log after the
// pass.
func Run(ctx context.Context, store storage.Store, repo storage.IngestionRepository, opts Options) (*PassResult, error) {
	names, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &PassResult{Attempted: len(names)}
	if len(names) == 0 {
		logger.L().Info().Msg("ingestion: no source files")
		return result, nil
	}

	workers := opts.Parallel
	if workers <= 0 || workers > maxParallel {
		workers = maxParallel
	}
	if c := runtime.NumCPU(); c < workers {
		workers = c
	}
	if len(names) < workers {
		workers = len(names)
	}

	logger.L().Info().
		Int("files", len(names)).
		Int("workers", workers).
		Bool("salvage_rows", opts.SalvageRows).
		Msg("ingestion start")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	for _, name := range names {
		file := name
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()

			// Only a canceled pass stops a worker; file failures are
			// collected, not propagated.
			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			fetchCtx, cancel := context.WithTimeout(gctx, perFileTimeout)
			data, err := store.Fetch(fetchCtx, file)
			cancel()
			if err != nil {
				logger.L().Error().Str("file", file).Err(err).Msg("fetch failed")
				mu.Lock()
				result.Rejections = append(result.Rejections, Rejection{
					File: file, Reason: ReasonUnreadableFile, Detail: err.Error(),
				})
				mu.Unlock()
				return nil
			}

			batch, err := ParseFile(file, data, opts.SalvageRows)
			if err != nil {
				rej := Rejection{File: file, Reason: ReasonUnreadableFile, Detail: err.Error()}
				var re *RejectError
				if errors.As(err, &re) {
					rej.Reason = re.Reason
					rej.Detail = re.Detail
				}
				logger.L().Warn().Str("file", file).Str("reason", string(rej.Reason)).Str("detail", rej.Detail).Msg("file rejected")
				mu.Lock()
				result.Rejections = append(result.Rejections, rej)
				mu.Unlock()
				return nil
			}

			logger.L().Info().
				Str("file", file).
				Int("rows", len(batch.Records)).
				Dur("elapsed", time.Since(start)).
				Msg("file accepted")
			mu.Lock()
			result.Batches = append(result.Batches, *batch)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Batches, func(i, j int) bool {
		a, b := result.Batches[i], result.Batches[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.File < b.File
	})
	sort.Slice(result.Rejections, func(i, j int) bool {
		return result.Rejections[i].File < result.Rejections[j].File
	})

	if repo != nil {
		recordAudit(repo, result)
	}

	logger.L().Info().
		Int("attempted", result.Attempted).
		Int("accepted", result.Accepted()).
		Int("rejected", len(result.Rejections)).
		Msg("ingestion done")

	return result, nil
}

// recordAudit writes per-file outcomes to the audit log sequentially.
// Audit failures are logged, never propagated: the pass itself already
// succeeded.
func recordAudit(repo storage.IngestionRepository, result *PassResult) {
	for _, b := range result.Batches {
		err := repo.RecordIngestion(storage.IngestionEntry{
			File:     b.File,
			FileDate: b.Date,
			RowCount: len(b.Records),
			Status:   statusAccepted,
		})
		if err != nil {
			logger.L().Error().Str("file", b.File).Err(err).Msg("audit log write failed")
		}
	}
	for _, rej := range result.Rejections {
		err := repo.RecordIngestion(storage.IngestionEntry{
			File:   rej.File,
			Status: statusRejected,
			Reason: string(rej.Reason),
		})
		if err != nil {
			logger.L().Error().Str("file", rej.File).Err(err).Msg("audit log write failed")
		}
	}
}
