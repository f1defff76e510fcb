package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/guttosm/insynpulse/internal/domain/models"
	"github.com/guttosm/insynpulse/internal/registry"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// TransactionsRepository defines contract for DB operations.
type TransactionsRepository interface {
	InsertTransactionsBatch(transactions []models.Transaction) error
	ListTransactions(filter models.TransactionFilter) ([]models.Transaction, error)
	GetIssuerSummary(issuer string, startDate *time.Time, endDate *time.Time) (*models.IssuerSummary, error)
	HasIngestionForDate(date time.Time) (bool, error)
	UpsertIngestionLog(date time.Time, source string, rowCount int) error
	DeleteTransactionsByPublicationDate(date time.Time) error
}

type transactionsRepository struct {
	db *sql.DB
}

func NewTransactionsRepository(db *sql.DB) TransactionsRepository {
	return &transactionsRepository{db: db}
}

var transactionColumns = []string{
	"publication_date",
	"issuer",
	"lei_code",
	"notifier",
	"pdmr",
	"position",
	"closely_associated",
	"amendment",
	"details_of_amendment",
	"initial_notification",
	"linked_to_share_option_programme",
	"nature_of_transaction",
	"instrument_type",
	"instrument_name",
	"isin",
	"transaction_date",
	"quantity",
	"unit",
	"price",
	"currency",
	"trading_venue",
	"status",
}

// InsertTransactionsBatch inserts multiple transactions into DB in a single transaction.
func (r *transactionsRepository) InsertTransactionsBatch(transactions []models.Transaction) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn("transactions", transactionColumns...))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range transactions {
		if _, err := stmt.Exec(
			toNullTime(rec.PublicationDate),
			rec.Issuer,
			rec.LEICode,
			rec.Notifier,
			rec.PDMR,
			rec.Position,
			rec.CloselyAssociated,
			rec.Amendment,
			rec.DetailsOfAmendment,
			rec.InitialNotification,
			rec.LinkedToShareOptionProgramme,
			rec.NatureOfTransaction,
			rec.InstrumentType,
			rec.InstrumentName,
			rec.ISIN,
			toNullTime(rec.TransactionDate),
			rec.Quantity,
			rec.Unit,
			rec.Price,
			rec.Currency,
			rec.TradingVenue,
			rec.Status,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// toNullTime maps zero-value timestamps to NULL (nil).
func toNullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// HasIngestionForDate checks if an ingestion was already recorded for a given publication day.
func (r *transactionsRepository) HasIngestionForDate(date time.Time) (bool, error) {
	var exists bool
	// ingestion_log.publication_date is the canonical per-run day
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE publication_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a given day.
func (r *transactionsRepository) UpsertIngestionLog(date time.Time, source string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (publication_date, source, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (publication_date)
		DO UPDATE SET source = EXCLUDED.source,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, date, source, rowCount)
	return err
}

// stockholmDay returns the Stockholm midnight opening the calendar day of t.
// The calendar day is read in t's own location.
func stockholmDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, registry.Stockholm)
}

// DeleteTransactionsByPublicationDate removes all transactions published on the
// Stockholm calendar day of date.
func (r *transactionsRepository) DeleteTransactionsByPublicationDate(date time.Time) error {
	start := stockholmDay(date)
	_, err := r.db.Exec(`DELETE FROM transactions WHERE publication_date >= $1 AND publication_date < $2`,
		start, start.AddDate(0, 0, 1))
	return err
}

// conditions builds the WHERE clause shared by listing and summary queries.
// Placeholders are numbered from 1 in the order the arguments are returned.
func conditions(issuer, pdmr string, startDate, endDate *time.Time) (string, []interface{}) {
	var where []string
	var args []interface{}
	add := func(expr string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(expr, len(args)))
	}

	if issuer != "" {
		add("issuer = $%d", issuer)
	}
	if pdmr != "" {
		add("pdmr = $%d", pdmr)
	}
	if startDate != nil {
		add("transaction_date >= $%d", stockholmDay(*startDate))
	}
	if endDate != nil {
		add("transaction_date < $%d", stockholmDay(*endDate).AddDate(0, 0, 1))
	}
	if len(where) == 0 {
		return "TRUE", nil
	}
	return strings.Join(where, " AND "), args
}

// ListTransactions returns the most recent transactions matching filter.
func (r *transactionsRepository) ListTransactions(filter models.TransactionFilter) ([]models.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	where, args := conditions(filter.Issuer, filter.PDMR, filter.From, filter.To)
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE %s
		ORDER BY transaction_date DESC NULLS LAST, id DESC
		LIMIT $%d
	`, strings.Join(transactionColumns, ", "), where, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		var pub, trd sql.NullTime
		if err := rows.Scan(
			&pub,
			&t.Issuer,
			&t.LEICode,
			&t.Notifier,
			&t.PDMR,
			&t.Position,
			&t.CloselyAssociated,
			&t.Amendment,
			&t.DetailsOfAmendment,
			&t.InitialNotification,
			&t.LinkedToShareOptionProgramme,
			&t.NatureOfTransaction,
			&t.InstrumentType,
			&t.InstrumentName,
			&t.ISIN,
			&trd,
			&t.Quantity,
			&t.Unit,
			&t.Price,
			&t.Currency,
			&t.TradingVenue,
			&t.Status,
		); err != nil {
			return nil, err
		}
		if pub.Valid {
			t.PublicationDate = pub.Time
		}
		if trd.Valid {
			t.TransactionDate = trd.Time
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetIssuerSummary returns transaction count, total volume, max price and the
// latest transaction date for an issuer. It returns nil when there is no data.
func (r *transactionsRepository) GetIssuerSummary(issuer string, startDate *time.Time, endDate *time.Time) (*models.IssuerSummary, error) {
	where, args := conditions(issuer, "", startDate, endDate)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS transactions,
			SUM(quantity) AS total_quantity,
			MAX(price) AS max_price,
			MAX(transaction_date) AS last_transaction_date
		FROM transactions
		WHERE %s
	`, where)

	var count int64
	var total, maxPrice sql.NullFloat64
	var last sql.NullTime

	if err := r.db.QueryRow(query, args...).Scan(&count, &total, &maxPrice, &last); err != nil {
		return nil, err
	}

	// No rows for this issuer/date range.
	if count == 0 {
		return nil, nil
	}

	sum := models.IssuerSummary{Issuer: issuer, Transactions: count}
	if total.Valid {
		sum.TotalQuantity = total.Float64
	}
	if maxPrice.Valid {
		sum.MaxPrice = maxPrice.Float64
	}
	if last.Valid {
		sum.LastTransactionDate = last.Time
	}
	return &sum, nil
}
