package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/registry"
	"github.com/guttosm/insynpulse/internal/storage"
)

var (
	ErrMissingIssuer = errors.New("issuer is required")
	ErrMissingTerm   = errors.New("search term is required")
	ErrInvalidRange  = errors.New("start date must not be after end date")
	ErrNoSuggester   = errors.New("registry lookups are not configured")
)

// Suggester looks up issuer or PDMR names in the registry. *registry.Client satisfies it.
type Suggester interface {
	Suggest(ctx context.Context, field registry.SuggestField, term string) ([]string, error)
}

// TransactionService defines business logic for querying ingested insider transactions.
// This decouples HTTP handlers from data access and the registry client.
type TransactionService interface {
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error)
	IssuerSummary(ctx context.Context, issuer string, startDate *time.Time, endDate *time.Time) (*models.IssuerSummary, error)
	Suggest(ctx context.Context, field registry.SuggestField, term string) ([]string, error)
}

type transactionService struct {
	repo      storage.TransactionsRepository
	suggester Suggester
}

// NewTransactionService wires the repository and an optional registry suggester.
func NewTransactionService(repo storage.TransactionsRepository, suggester Suggester) TransactionService {
	return &transactionService{repo: repo, suggester: suggester}
}

func checkRange(startDate, endDate *time.Time) error {
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return ErrInvalidRange
	}
	return nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter.Issuer = strings.TrimSpace(filter.Issuer)
	filter.PDMR = strings.TrimSpace(filter.PDMR)
	if err := checkRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(filter)
}

func (s *transactionService) IssuerSummary(ctx context.Context, issuer string, startDate *time.Time, endDate *time.Time) (*models.IssuerSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return nil, ErrMissingIssuer
	}
	if err := checkRange(startDate, endDate); err != nil {
		return nil, err
	}
	return s.repo.GetIssuerSummary(issuer, startDate, endDate)
}

func (s *transactionService) Suggest(ctx context.Context, field registry.SuggestField, term string) ([]string, error) {
	if s.suggester == nil {
		return nil, ErrNoSuggester
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrMissingTerm
	}
	return s.suggester.Suggest(ctx, field, term)
}
