package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/insynpulse/internal/logger"
	"github.com/guttosm/insynpulse/internal/registry"
	"github.com/guttosm/insynpulse/internal/storage"
)

const (
	dayLayout        = "2006-01-02"
	registrySource   = "registry"
	defaultBatchSize = 5000
	maxDays          = 7
)

// Source yields one decoded export per query. *registry.Client satisfies it.
type Source interface {
	Transactions(ctx context.Context, q registry.TransactionQuery) (io.ReadCloser, error)
}

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.TransactionsRepository {
	return storage.NewTransactionsRepository(db)
}

// clock is an indirection so tests can pin "today".
var clock = time.Now

// batchSize is the number of rows per insert transaction; tests lower it.
var batchSize = defaultBatchSize

// completedBusinessDays returns the last n Swedish business days before the
// Stockholm day of now. The current day is still being published to and is
// never included.
func completedBusinessDays(n int, now time.Time) []time.Time {
	return LastNBusinessDays(n, now.In(registry.Stockholm).AddDate(0, 0, -1))
}

// ProcessDays fetches, parses and persists the registry publications of the last
// nDays completed Swedish business days (today is excluded).
//
//   - src: registry export source.
//   - db:  open *sql.DB (PostgreSQL).
//
// Behavior:
//   - One export is requested per business day, filtered on publication date.
//   - Uses a concurrency limit based on CPU count (min(7, NumCPU)).
//   - Days already present in the ingestion log are skipped unless force is set.
//   - Every day that is processed has its existing rows deleted first, so rows
//     committed by an earlier failed run are replaced rather than duplicated.
//   - If any day returns error, cancels the rest and returns that error.
//
// Returns:
//   - error: first error encountered (if any).
func ProcessDays(ctx context.Context, src Source, db *sql.DB, lang registry.Language, nDays int, parallel int, force bool) error {
	// use indirection to allow tests to swap repository constructor
	repo := repoCtor(db)

	if nDays < 1 {
		nDays = 1
	}
	if nDays > maxDays {
		nDays = maxDays
	}
	days := completedBusinessDays(nDays, clock())

	runID := uuid.NewString()
	log := logger.For("ingestion").With().Str("run_id", runID).Logger()
	log.Info().Int("days", len(days)).Str("language", lang.Name()).Msg("ingestion start")

	// Concurrency: default to min(7, NumCPU), or use provided clamp(1..7)
	maxParallel := maxDays
	if parallel > 0 {
		if parallel > maxDays {
			parallel = maxDays
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	log.Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, day := range days {
		idx := i
		d := day
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			label := d.Format(dayLayout)
			logDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
			log.Info().Int("idx", idx+1).Int("total", len(days)).Str("day", label).Msg("day start")

			// Idempotency: skip if already ingested, unless force
			exists, err := repo.HasIngestionForDate(logDay)
			if err != nil {
				log.Error().Str("day", label).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("day %s: check ingestion log: %w", label, err)
			}
			if exists && !force {
				log.Info().Int("idx", idx+1).Int("total", len(days)).Str("day", label).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			// Clear leftovers of forced re-runs and of earlier runs that failed mid-day
			if err := repo.DeleteTransactionsByPublicationDate(logDay); err != nil {
				log.Error().Str("day", label).Err(err).Msg("delete existing failed")
				return fmt.Errorf("day %s: delete existing: %w", label, err)
			}

			q, err := registry.PublicationsBetween(d, d)
			if err != nil {
				return fmt.Errorf("day %s: build query: %w", label, err)
			}
			rc, err := src.Transactions(gctx, q.WithLanguage(lang))
			if err != nil {
				log.Error().Str("day", label).Err(err).Msg("fetch export failed")
				return fmt.Errorf("day %s: fetch export: %w", label, err)
			}
			defer func() { _ = rc.Close() }()

			plog := logger.For("registry").With().Str("run_id", runID).Str("day", label).Logger()
			p := registry.NewParser(lang, registry.WithLogger(plog))
			total, stats, err := parseAndPersist(gctx, rc, p, repo, batchSize)
			if err != nil {
				log.Error().Str("day", label).Dur("elapsed", time.Since(start)).Err(err).Msg("day failed")
				return fmt.Errorf("day %s: %w", label, err)
			}
			if err := repo.UpsertIngestionLog(logDay, registrySource, total); err != nil {
				log.Error().Str("day", label).Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("day %s: upsert ingestion log: %w", label, err)
			}
			log.Info().
				Int("idx", idx+1).
				Int("total", len(days)).
				Str("day", label).
				Int("rows", total).
				Int("dropped", stats.Dropped).
				Dur("elapsed", time.Since(start)).
				Bool("force", force).
				Msg("day done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("ingestion finished")
	return nil
}

// ProcessFile ingests one locally saved registry export (UTF-16LE, or UTF-8 with
// a byte order mark). The ingestion log is not touched.
//
// Returns the number of persisted transactions.
func ProcessFile(ctx context.Context, path string, db *sql.DB, lang registry.Language, workers int) (int, error) {
	repo := repoCtor(db)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	rc := registry.DecodeUTF16LE(f)
	defer func() { _ = rc.Close() }()

	runID, file := uuid.NewString(), filepath.Base(path)
	log := logger.For("ingestion").With().Str("run_id", runID).Str("file", file).Logger()
	start := time.Now()

	plog := logger.For("registry").With().Str("run_id", runID).Str("file", file).Logger()
	p := registry.NewParser(lang, registry.WithLogger(plog), registry.WithWorkers(workers))
	transactions, stats, err := p.Parse(ctx, rc)
	if err != nil {
		log.Error().Err(err).Msg("file failed")
		return 0, fmt.Errorf("file %s: %w", path, err)
	}

	total, err := persistAll(ctx, transactions, repo, batchSize)
	if err != nil {
		log.Error().Err(err).Msg("file failed")
		return 0, fmt.Errorf("file %s: %w", path, err)
	}

	log.Info().
		Int("rows", total).
		Int("lines", stats.Lines).
		Int("dropped", stats.Dropped).
		Dur("elapsed", time.Since(start)).
		Msg("file done")
	return total, nil
}
