package ingestion

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/registry"
)

// fakeRepo implements storage.TransactionsRepository in memory.
type fakeRepo struct {
	mu       sync.Mutex
	batches  [][]models.Transaction
	has      map[time.Time]bool
	logged   map[time.Time]int
	deleted  map[time.Time]bool
	err      error
	hasErr   error
	logErr   error
	delErr   error
	inserted int
	rows     []models.Transaction
}

func (f *fakeRepo) InsertTransactionsBatch(transactions []models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]models.Transaction(nil), transactions...))
	if f.err == nil {
		f.inserted += len(transactions)
		f.rows = append(f.rows, transactions...)
	}
	return f.err
}
func (f *fakeRepo) ListTransactions(models.TransactionFilter) ([]models.Transaction, error) {
	return nil, nil
}
func (f *fakeRepo) GetIssuerSummary(string, *time.Time, *time.Time) (*models.IssuerSummary, error) {
	return nil, nil
}
func (f *fakeRepo) HasIngestionForDate(date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasErr != nil {
		return false, f.hasErr
	}
	return f.has[date], nil
}
func (f *fakeRepo) UpsertIngestionLog(date time.Time, _ string, rowCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logErr != nil {
		return f.logErr
	}
	if f.logged == nil {
		f.logged = map[time.Time]int{}
	}
	f.logged[date] = rowCount
	return nil
}
func (f *fakeRepo) DeleteTransactionsByPublicationDate(date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	if f.deleted == nil {
		f.deleted = map[time.Time]bool{}
	}
	f.deleted[date] = true
	y, m, d := date.Date()
	kept := f.rows[:0]
	for _, tr := range f.rows {
		py, pm, pd := tr.PublicationDate.In(registry.Stockholm).Date()
		if py != y || pm != m || pd != d {
			kept = append(kept, tr)
		}
	}
	f.rows = kept
	return nil
}

const exportHeader = "Publiceringsdatum;Emittent;Person i ledande ställning;Volym;Pris;\n"

func exportRow(issuer, volume, price string) string {
	return "2024-03-05 09:00:00;" + issuer + ";Anna Svensson;" + volume + ";" + price + ";\n"
}

func TestParseAndPersist_TableDriven(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		batch       int
		wantRows    int
		wantBatches int
		wantDropped int
	}{
		{name: "ok single row", content: exportHeader + exportRow("Acme AB", "100", "37,9"), batch: 5, wantRows: 1, wantBatches: 1},
		{name: "header only", content: exportHeader, batch: 5},
		{name: "empty export", content: "", batch: 5},
		{name: "bad price dropped", content: exportHeader + exportRow("Acme AB", "100", "abc") + exportRow("Beta AB", "1", "2"), batch: 5, wantRows: 1, wantBatches: 1, wantDropped: 1},
		{name: "empty numerics dropped", content: exportHeader + exportRow("Acme AB", "", ""), batch: 5, wantDropped: 1},
		{name: "batches split", content: exportHeader + strings.Repeat(exportRow("Acme AB", "1", "1"), 5), batch: 2, wantRows: 5, wantBatches: 3},
		{name: "non-positive batch uses default", content: exportHeader + exportRow("Acme AB", "1", "1"), batch: 0, wantRows: 1, wantBatches: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			p := registry.NewParser(registry.Swedish, registry.WithLogger(zerolog.Nop()))
			n, stats, err := parseAndPersist(context.Background(), strings.NewReader(tc.content), p, repo, tc.batch)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if n != tc.wantRows {
				t.Fatalf("rows: want %d got %d", tc.wantRows, n)
			}
			if len(repo.batches) != tc.wantBatches {
				t.Fatalf("batches: want %d got %d", tc.wantBatches, len(repo.batches))
			}
			if stats.Dropped != tc.wantDropped {
				t.Fatalf("dropped: want %d got %d", tc.wantDropped, stats.Dropped)
			}
		})
	}
}

func TestParseAndPersist_RepoError(t *testing.T) {
	boom := errors.New("boom")
	p := registry.NewParser(registry.Swedish, registry.WithLogger(zerolog.Nop()))
	content := exportHeader + strings.Repeat(exportRow("Acme AB", "1", "1"), 3)

	// error during an intermediate flush
	repo := &fakeRepo{err: boom}
	if _, _, err := parseAndPersist(context.Background(), strings.NewReader(content), p, repo, 2); !errors.Is(err, boom) {
		t.Fatalf("expected batch flush error, got %v", err)
	}

	// error during the final flush
	repo = &fakeRepo{err: boom}
	_, _, err := parseAndPersist(context.Background(), strings.NewReader(content), p, repo, 10)
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), "final flush") {
		t.Fatalf("expected final flush error, got %v", err)
	}
}

func TestParseAndPersist_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := registry.NewParser(registry.Swedish, registry.WithLogger(zerolog.Nop()))
	content := exportHeader + exportRow("Acme AB", "1", "1")
	if _, _, err := parseAndPersist(ctx, strings.NewReader(content), p, &fakeRepo{}, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPersistAll(t *testing.T) {
	repo := &fakeRepo{}
	n, err := persistAll(context.Background(), make([]models.Transaction, 7), repo, 3)
	if err != nil || n != 7 || len(repo.batches) != 3 || len(repo.batches[2]) != 1 {
		t.Fatalf("n=%d err=%v batches=%d", n, err, len(repo.batches))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := persistAll(ctx, make([]models.Transaction, 1), &fakeRepo{}, 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := persistAll(context.Background(), make([]models.Transaction, 1), &fakeRepo{err: errors.New("x")}, 0); err == nil {
		t.Fatalf("expected repository error")
	}
}
