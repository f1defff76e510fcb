package models

import "time"

// IssuerSummary represents the result of aggregated queries
// over the disclosed transactions of one issuer.
//
// Fields:
//   - Issuer: The issuer name used in the aggregation (e.g., "Swedish Match AB").
//   - Transactions: Number of disclosed transactions in the selected period.
//   - TotalQuantity: Sum of the disclosed volumes.
//   - MaxPrice: The highest unit price observed in the selected period.
//   - LastTransactionDate: Most recent transaction date in the selected period.
//
// This model is returned by the API when querying /api/v1/issuers/summary.
//
// swagger:model IssuerSummary
type IssuerSummary struct {
	Issuer              string    `json:"issuer" example:"Swedish Match AB"`
	Transactions        int64     `json:"transactions" example:"12"`
	TotalQuantity       float64   `json:"total_quantity" example:"15000"`
	MaxPrice            float64   `json:"max_price" example:"37.9"`
	LastTransactionDate time.Time `json:"last_transaction_date"`
}
