package ingestion

import (
	"context"
	"fmt"
	"io"

	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/registry"
	"github.com/guttosm/insynpulse/internal/storage"
)

// parseAndPersist streams one export through the parser and persists the
// surviving transactions in batches.
//
// Data-quality problems never fail the run: rows with unparseable numbers are
// dropped by the parser and reported through its logger. It fails on:
//   - unrecoverable I/O errors
//   - repository errors
//   - context cancellation
//
// Parameters:
//   - ctx:    context for cancellation/timeouts.
//   - r:      decoded (UTF-8) export text.
//   - p:      parser configured for the export's language.
//   - repo:   repository for DB insertion.
//   - batch:  batch size for inserts (e.g., 5000).
func parseAndPersist(ctx context.Context, r io.Reader, p *registry.Parser, repo storage.TransactionsRepository, batch int) (int, registry.Stats, error) {
	if batch < 1 {
		batch = defaultBatchSize
	}
	buf := make([]models.Transaction, 0, batch)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertTransactionsBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0
	stats, err := p.Each(ctx, r, func(tr models.Transaction) error {
		buf = append(buf, tr)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return fmt.Errorf("flush batch ending row %d: %w", total, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, stats, err
	}

	// Final flush
	if err := flush(); err != nil {
		return 0, stats, fmt.Errorf("final flush: %w", err)
	}

	return total, stats, nil
}

// persistAll writes an already parsed slice in batches.
func persistAll(ctx context.Context, transactions []models.Transaction, repo storage.TransactionsRepository, batch int) (int, error) {
	if batch < 1 {
		batch = defaultBatchSize
	}
	for start := 0; start < len(transactions); start += batch {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		end := start + batch
		if end > len(transactions) {
			end = len(transactions)
		}
		if err := repo.InsertTransactionsBatch(transactions[start:end]); err != nil {
			return 0, fmt.Errorf("flush batch ending row %d: %w", end, err)
		}
	}
	return len(transactions), nil
}
