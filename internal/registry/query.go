package registry

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public registry search client.
const DefaultBaseURL = "https://marknadssok.fi.se/Publiceringsklient"

const queryDateLayout = "2006-01-02"

// TransactionQuery selects transactions to export. At least one complete date
// range (transaction or publication) is required; dates are day resolution.
type TransactionQuery struct {
	FromTransactionDate *time.Time
	ToTransactionDate   *time.Time
	FromPublicationDate *time.Time
	ToPublicationDate   *time.Time
	Issuer              string
	PDMR                string
	Language            Language
}

var (
	ErrMissingDateRange = errors.New("a transaction or publication date range is required")
	ErrInvertedRange    = errors.New("from date after to date is not allowed")
	ErrNegativeDays     = errors.New("number of days must not be negative")
)

// TransactionsBetween queries by transaction date.
func TransactionsBetween(from, to time.Time) (TransactionQuery, error) {
	if dayAfter(from, to) {
		return TransactionQuery{}, ErrInvertedRange
	}
	return TransactionQuery{FromTransactionDate: &from, ToTransactionDate: &to}, nil
}

// TransactionsLastDays queries transactions made during the last days days.
func TransactionsLastDays(days int, now time.Time) (TransactionQuery, error) {
	if days < 0 {
		return TransactionQuery{}, ErrNegativeDays
	}
	return TransactionsBetween(now.AddDate(0, 0, -days), now)
}

// PublicationsBetween queries by publication date.
func PublicationsBetween(from, to time.Time) (TransactionQuery, error) {
	if dayAfter(from, to) {
		return TransactionQuery{}, ErrInvertedRange
	}
	return TransactionQuery{FromPublicationDate: &from, ToPublicationDate: &to}, nil
}

// PublicationsLastDays queries transactions published during the last days days.
func PublicationsLastDays(days int, now time.Time) (TransactionQuery, error) {
	if days < 0 {
		return TransactionQuery{}, ErrNegativeDays
	}
	return PublicationsBetween(now.AddDate(0, 0, -days), now)
}

// WithIssuer narrows the query to one issuer name.
func (q TransactionQuery) WithIssuer(issuer string) TransactionQuery {
	q.Issuer = strings.TrimSpace(issuer)
	return q
}

// WithPDMR narrows the query to one person discharging managerial responsibilities.
func (q TransactionQuery) WithPDMR(pdmr string) TransactionQuery {
	q.PDMR = strings.TrimSpace(pdmr)
	return q
}

// WithLanguage selects the export language.
func (q TransactionQuery) WithLanguage(lang Language) TransactionQuery {
	q.Language = lang
	return q
}

// Validate checks that a complete date range is present and not inverted.
func (q TransactionQuery) Validate() error {
	hasTx := q.FromTransactionDate != nil && q.ToTransactionDate != nil
	hasPub := q.FromPublicationDate != nil && q.ToPublicationDate != nil
	if !hasTx && !hasPub {
		return ErrMissingDateRange
	}
	if hasTx && dayAfter(*q.FromTransactionDate, *q.ToTransactionDate) {
		return ErrInvertedRange
	}
	if hasPub && dayAfter(*q.FromPublicationDate, *q.ToPublicationDate) {
		return ErrInvertedRange
	}
	return nil
}

// URL renders the export URL below base (DefaultBaseURL when empty).
func (q TransactionQuery) URL(base string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf(
		"%s/%s/Search/Search?SearchFunctionType=Insyn&Utgivare=%s&PersonILedandeSt%%C3%%A4llningNamn=%s"+
			"&Transaktionsdatum.From=%s&Transaktionsdatum.To=%s"+
			"&Publiceringsdatum.From=%s&Publiceringsdatum.To=%s&button=export",
		strings.TrimRight(base, "/"),
		q.Language.Name(),
		url.QueryEscape(q.Issuer),
		url.QueryEscape(q.PDMR),
		formatQueryDate(q.FromTransactionDate),
		formatQueryDate(q.ToTransactionDate),
		formatQueryDate(q.FromPublicationDate),
		formatQueryDate(q.ToPublicationDate),
	)
}

func formatQueryDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.In(Stockholm).Format(queryDateLayout)
}

// dayAfter compares calendar days in registry time.
func dayAfter(from, to time.Time) bool {
	return from.In(Stockholm).Format(queryDateLayout) > to.In(Stockholm).Format(queryDateLayout)
}
