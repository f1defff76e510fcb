package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/registry"
)

type stubRepo struct {
	sum        *models.IssuerSummary
	list       []models.Transaction
	err        error
	gotFilter  models.TransactionFilter
	gotIssuer  string
	repoCalled bool
}

func (s *stubRepo) InsertTransactionsBatch(_ []models.Transaction) error { return nil }
func (s *stubRepo) ListTransactions(f models.TransactionFilter) ([]models.Transaction, error) {
	s.repoCalled = true
	s.gotFilter = f
	return s.list, s.err
}
func (s *stubRepo) GetIssuerSummary(issuer string, _ *time.Time, _ *time.Time) (*models.IssuerSummary, error) {
	s.repoCalled = true
	s.gotIssuer = issuer
	return s.sum, s.err
}
func (s *stubRepo) HasIngestionForDate(_ time.Time) (bool, error)         { return false, nil }
func (s *stubRepo) UpsertIngestionLog(_ time.Time, _ string, _ int) error { return nil }
func (s *stubRepo) DeleteTransactionsByPublicationDate(_ time.Time) error { return nil }

type stubSuggester struct {
	names    []string
	err      error
	gotField registry.SuggestField
	gotTerm  string
}

func (s *stubSuggester) Suggest(_ context.Context, field registry.SuggestField, term string) ([]string, error) {
	s.gotField, s.gotTerm = field, term
	return s.names, s.err
}

func TestIssuerSummary_TableDriven(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		issuer   string
		from, to *time.Time
		repo     *stubRepo
		wantErr  error
		wantRepo bool
	}{
		{name: "success", issuer: " Acme AB ", repo: &stubRepo{sum: &models.IssuerSummary{Issuer: "Acme AB", Transactions: 2}}, wantRepo: true},
		{name: "no data", issuer: "Acme AB", repo: &stubRepo{}, wantRepo: true},
		{name: "repo error", issuer: "Acme AB", repo: &stubRepo{err: errors.New("boom")}, wantRepo: true},
		{name: "missing issuer", issuer: "  ", repo: &stubRepo{}, wantErr: ErrMissingIssuer},
		{name: "inverted range", issuer: "Acme AB", from: &d2, to: &d1, repo: &stubRepo{}, wantErr: ErrInvalidRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTransactionService(tc.repo, nil)
			out, err := svc.IssuerSummary(context.Background(), tc.issuer, tc.from, tc.to)
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v got %v", tc.wantErr, err)
			}
			if tc.repo.repoCalled != tc.wantRepo {
				t.Fatalf("repo called=%v want %v", tc.repo.repoCalled, tc.wantRepo)
			}
			if tc.wantRepo && tc.repo.gotIssuer != "Acme AB" {
				t.Fatalf("issuer not trimmed: %q", tc.repo.gotIssuer)
			}
			if tc.repo.sum != nil && out != tc.repo.sum {
				t.Fatalf("summary not passed through")
			}
		})
	}
}

func TestListTransactions(t *testing.T) {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)

	repo := &stubRepo{list: []models.Transaction{{Issuer: "Acme AB"}}}
	svc := NewTransactionService(repo, nil)
	out, err := svc.ListTransactions(context.Background(), models.TransactionFilter{Issuer: " Acme AB ", PDMR: " Bo ", From: &d1, To: &d2, Limit: 5})
	if err != nil || len(out) != 1 {
		t.Fatalf("out=%v err=%v", out, err)
	}
	if repo.gotFilter.Issuer != "Acme AB" || repo.gotFilter.PDMR != "Bo" || repo.gotFilter.Limit != 5 {
		t.Fatalf("filter not normalized: %+v", repo.gotFilter)
	}

	if _, err := svc.ListTransactions(context.Background(), models.TransactionFilter{From: &d2, To: &d1}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.ListTransactions(ctx, models.TransactionFilter{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestSuggest(t *testing.T) {
	if _, err := NewTransactionService(&stubRepo{}, nil).Suggest(context.Background(), registry.SuggestIssuer, "Acme"); !errors.Is(err, ErrNoSuggester) {
		t.Fatalf("want ErrNoSuggester, got %v", err)
	}

	sg := &stubSuggester{names: []string{"Acme AB"}}
	svc := NewTransactionService(&stubRepo{}, sg)
	if _, err := svc.Suggest(context.Background(), registry.SuggestIssuer, " "); !errors.Is(err, ErrMissingTerm) {
		t.Fatalf("want ErrMissingTerm, got %v", err)
	}

	names, err := svc.Suggest(context.Background(), registry.SuggestPDMR, " Acm ")
	if err != nil || len(names) != 1 {
		t.Fatalf("names=%v err=%v", names, err)
	}
	if sg.gotField != registry.SuggestPDMR || sg.gotTerm != "Acm" {
		t.Fatalf("unexpected forward: field=%q term=%q", sg.gotField, sg.gotTerm)
	}
}
