package models

import (
	"math"
	"time"
)

// Transaction represents a single disclosure row in an Insynsregistret export.
// Each field matches one canonical column of the registry, regardless of the
// language the export was requested in.
//
// Quantity and Price are NaN when the registry value could not be parsed; such
// transactions are not Valid and never leave the parser.
type Transaction struct {
	PublicationDate              time.Time `json:"publication_date"`
	Issuer                       string    `json:"issuer" example:"Swedish Match AB"`
	LEICode                      string    `json:"lei_code"`
	Notifier                     string    `json:"notifier"`
	PDMR                         string    `json:"pdmr"`
	Position                     string    `json:"position"`
	CloselyAssociated            bool      `json:"closely_associated"`
	Amendment                    bool      `json:"amendment"`
	DetailsOfAmendment           string    `json:"details_of_amendment"`
	InitialNotification          bool      `json:"initial_notification"`
	LinkedToShareOptionProgramme bool      `json:"linked_to_share_option_programme"`
	NatureOfTransaction          string    `json:"nature_of_transaction"`
	InstrumentType               string    `json:"instrument_type"`
	InstrumentName               string    `json:"instrument_name"`
	ISIN                         string    `json:"isin" example:"SE0000310336"`
	TransactionDate              time.Time `json:"transaction_date"`
	Quantity                     float64   `json:"quantity"`
	Unit                         string    `json:"unit"`
	Price                        float64   `json:"price"`
	Currency                     string    `json:"currency" example:"SEK"`
	TradingVenue                 string    `json:"trading_venue"`
	Status                       string    `json:"status"`
}

// Valid reports whether both quantity and price hold real numbers.
func (t Transaction) Valid() bool {
	return !math.IsNaN(t.Quantity) && !math.IsNaN(t.Price)
}

// InstrumentTypeDescription resolves the raw instrument type column into a
// known instrument type, or UnknownInstrumentType.
func (t Transaction) InstrumentTypeDescription() InstrumentType {
	return LookupInstrumentType(t.InstrumentType)
}

// TransactionFilter narrows a transaction listing. Zero values mean "no filter".
type TransactionFilter struct {
	Issuer string
	PDMR   string
	From   *time.Time
	To     *time.Time
	Limit  int
}
