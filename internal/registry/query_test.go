package registry

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestTransactionQuery_URL(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, Stockholm)
	to := time.Date(2024, 3, 8, 0, 0, 0, 0, Stockholm)

	q, err := TransactionsBetween(from, to)
	if err != nil {
		t.Fatalf("TransactionsBetween: %v", err)
	}
	q = q.WithIssuer(" H&M Hennes & Mauritz AB ").WithPDMR("Karl-Johan Persson").WithLanguage(English)

	raw := q.URL("https://example.test/Publiceringsklient/")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url parse: %v", err)
	}
	if u.Path != "/Publiceringsklient/en-GB/Search/Search" {
		t.Fatalf("unexpected path %q", u.Path)
	}

	want := map[string]string{
		"SearchFunctionType":          "Insyn",
		"Utgivare":                    "H&M Hennes & Mauritz AB",
		"PersonILedandeStällningNamn": "Karl-Johan Persson",
		"Transaktionsdatum.From":      "2024-03-01",
		"Transaktionsdatum.To":        "2024-03-08",
		"Publiceringsdatum.From":      "",
		"Publiceringsdatum.To":        "",
		"button":                      "export",
	}
	got := u.Query()
	for k, v := range want {
		if got.Get(k) != v {
			t.Fatalf("param %s: want %q got %q (url %s)", k, v, got.Get(k), raw)
		}
	}
}

func TestTransactionQuery_DefaultBaseAndLanguage(t *testing.T) {
	now := time.Date(2024, 3, 8, 12, 0, 0, 0, Stockholm)
	q, err := PublicationsLastDays(7, now)
	if err != nil {
		t.Fatalf("PublicationsLastDays: %v", err)
	}
	raw := q.URL("")
	if !strings.HasPrefix(raw, DefaultBaseURL+"/sv-SE/Search/Search?") {
		t.Fatalf("unexpected url %s", raw)
	}
	if !strings.Contains(raw, "Publiceringsdatum.From=2024-03-01&Publiceringsdatum.To=2024-03-08") {
		t.Fatalf("publication range missing from %s", raw)
	}
}

func TestTransactionQuery_Validation(t *testing.T) {
	d1 := time.Date(2024, 3, 2, 0, 0, 0, 0, Stockholm)
	d2 := time.Date(2024, 3, 1, 0, 0, 0, 0, Stockholm)

	if _, err := TransactionsBetween(d1, d2); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("want ErrInvertedRange, got %v", err)
	}
	if _, err := PublicationsBetween(d1, d2); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("want ErrInvertedRange, got %v", err)
	}
	if _, err := TransactionsLastDays(-1, d1); !errors.Is(err, ErrNegativeDays) {
		t.Fatalf("want ErrNegativeDays, got %v", err)
	}
	if _, err := PublicationsLastDays(-1, d1); !errors.Is(err, ErrNegativeDays) {
		t.Fatalf("want ErrNegativeDays, got %v", err)
	}
	if err := (TransactionQuery{}).Validate(); !errors.Is(err, ErrMissingDateRange) {
		t.Fatalf("want ErrMissingDateRange, got %v", err)
	}
	if err := (TransactionQuery{FromTransactionDate: &d2}).Validate(); !errors.Is(err, ErrMissingDateRange) {
		t.Fatalf("half range: want ErrMissingDateRange, got %v", err)
	}
	if err := (TransactionQuery{FromPublicationDate: &d1, ToPublicationDate: &d2}).Validate(); !errors.Is(err, ErrInvertedRange) {
		t.Fatalf("want ErrInvertedRange, got %v", err)
	}

	// same calendar day is fine regardless of clock time
	late := time.Date(2024, 3, 1, 23, 0, 0, 0, Stockholm)
	early := time.Date(2024, 3, 1, 1, 0, 0, 0, Stockholm)
	if _, err := TransactionsBetween(late, early); err != nil {
		t.Fatalf("same day should be accepted: %v", err)
	}
	if q, err := TransactionsLastDays(0, d1); err != nil || q.Validate() != nil {
		t.Fatalf("zero days should be accepted: %v", err)
	}
}
