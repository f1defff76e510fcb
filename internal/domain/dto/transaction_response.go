package dto

import (
	"time"

	"github.com/guttosm/insynpulse/internal/domain/models"
)

// TransactionResponse represents one insider transaction as returned by
// GET /api/v1/transactions.
//
// Fields match the API contract and may differ from internal domain models.
// Dates are omitted when the registry left them empty.
type TransactionResponse struct {
	PublicationDate              *time.Time `json:"publication_date,omitempty" example:"2024-03-05T09:00:00+01:00"`
	Issuer                       string     `json:"issuer" example:"Swedish Match AB"`
	LEICode                      string     `json:"lei_code,omitempty" example:"529900F3C9XHTXQLQE74"`
	Notifier                     string     `json:"notifier,omitempty"`
	PDMR                         string     `json:"pdmr" example:"Lars Dahlgren"`
	Position                     string     `json:"position,omitempty" example:"Verkställande direktör (VD)"`
	CloselyAssociated            bool       `json:"closely_associated"`
	Amendment                    bool       `json:"amendment"`
	DetailsOfAmendment           string     `json:"details_of_amendment,omitempty"`
	InitialNotification          bool       `json:"initial_notification"`
	LinkedToShareOptionProgramme bool       `json:"linked_to_share_option_programme"`
	NatureOfTransaction          string     `json:"nature_of_transaction,omitempty" example:"Förvärv"`
	InstrumentType               string     `json:"instrument_type,omitempty" example:"Aktie"`
	InstrumentTypeDescription    string     `json:"instrument_type_description" example:"Share"`
	InstrumentName               string     `json:"instrument_name,omitempty"`
	ISIN                         string     `json:"isin,omitempty" example:"SE0000310336"`
	TransactionDate              *time.Time `json:"transaction_date,omitempty" example:"2024-03-01T00:00:00+01:00"`
	Quantity                     float64    `json:"quantity" example:"1500"`
	Unit                         string     `json:"unit,omitempty" example:"Antal"`
	Price                        float64    `json:"price" example:"37.9"`
	Currency                     string     `json:"currency,omitempty" example:"SEK"`
	TradingVenue                 string     `json:"trading_venue,omitempty" example:"NASDAQ STOCKHOLM AB"`
	Status                       string     `json:"status,omitempty" example:"Aktuell"`
}

// TransactionListResponse wraps a page of transactions.
type TransactionListResponse struct {
	Count        int                   `json:"count" example:"1"`
	Transactions []TransactionResponse `json:"transactions"`
}

// IssuerSummaryResponse is returned by GET /api/v1/issuers/summary.
type IssuerSummaryResponse struct {
	Issuer              string     `json:"issuer" example:"Swedish Match AB"`                              // Issuer requested
	Transactions        int64      `json:"transactions" example:"12"`                                      // Number of transactions in the period
	TotalQuantity       float64    `json:"total_quantity" example:"150000"`                                // Sum of traded volume in the period
	MaxPrice            float64    `json:"max_price" example:"412.5"`                                      // Highest price in the period
	LastTransactionDate *time.Time `json:"last_transaction_date,omitempty" example:"2024-03-01T00:00:00Z"` // Most recent transaction date
}

// SuggestResponse lists autocomplete names from the registry.
type SuggestResponse struct {
	Field       string   `json:"field" example:"issuer"`
	Term        string   `json:"term" example:"Swe"`
	Suggestions []string `json:"suggestions"`
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// NewTransactionResponse maps a domain transaction onto the API contract.
func NewTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		PublicationDate:              optionalTime(t.PublicationDate),
		Issuer:                       t.Issuer,
		LEICode:                      t.LEICode,
		Notifier:                     t.Notifier,
		PDMR:                         t.PDMR,
		Position:                     t.Position,
		CloselyAssociated:            t.CloselyAssociated,
		Amendment:                    t.Amendment,
		DetailsOfAmendment:           t.DetailsOfAmendment,
		InitialNotification:          t.InitialNotification,
		LinkedToShareOptionProgramme: t.LinkedToShareOptionProgramme,
		NatureOfTransaction:          t.NatureOfTransaction,
		InstrumentType:               t.InstrumentType,
		InstrumentTypeDescription:    t.InstrumentTypeDescription().English,
		InstrumentName:               t.InstrumentName,
		ISIN:                         t.ISIN,
		TransactionDate:              optionalTime(t.TransactionDate),
		Quantity:                     t.Quantity,
		Unit:                         t.Unit,
		Price:                        t.Price,
		Currency:                     t.Currency,
		TradingVenue:                 t.TradingVenue,
		Status:                       t.Status,
	}
}

// NewTransactionListResponse maps a page of domain transactions.
func NewTransactionListResponse(ts []models.Transaction) TransactionListResponse {
	out := TransactionListResponse{Count: len(ts), Transactions: make([]TransactionResponse, 0, len(ts))}
	for _, t := range ts {
		out.Transactions = append(out.Transactions, NewTransactionResponse(t))
	}
	return out
}

// NewIssuerSummaryResponse maps a domain summary.
func NewIssuerSummaryResponse(s models.IssuerSummary) IssuerSummaryResponse {
	return IssuerSummaryResponse{
		Issuer:              s.Issuer,
		Transactions:        s.Transactions,
		TotalQuantity:       s.TotalQuantity,
		MaxPrice:            s.MaxPrice,
		LastTransactionDate: optionalTime(s.LastTransactionDate),
	}
}
