package registry

import (
	"fmt"
	"strings"
)

// Language selects the export locale: header names, boolean literals and the
// path segment used when querying the registry.
type Language int

const (
	Swedish Language = iota
	English
)

// Name returns the registry locale name ("sv-SE" or "en-GB").
func (l Language) Name() string {
	if l == English {
		return "en-GB"
	}
	return "sv-SE"
}

func (l Language) String() string {
	if l == English {
		return "english"
	}
	return "swedish"
}

// TrueWord is the literal the registry uses for "yes" in boolean columns.
func (l Language) TrueWord() string {
	if l == English {
		return "Yes"
	}
	return "Ja"
}

// ParseLanguage accepts "sv", "sv-SE", "swedish", "en", "en-GB" or "english"
// (case-insensitive).
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sv", "sv-se", "swedish":
		return Swedish, nil
	case "en", "en-gb", "english":
		return English, nil
	}
	return Swedish, fmt.Errorf("unknown language %q", s)
}

// Kind is the conversion rule applied to a column value.
type Kind int

const (
	KindUnmapped Kind = iota
	KindText
	KindBool
	KindNumeric
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	case KindNumeric:
		return "numeric"
	case KindTimestamp:
		return "timestamp"
	}
	return "unmapped"
}

// Field is a canonical transaction attribute, independent of locale.
type Field int

const (
	Unmapped Field = iota
	PublicationDate
	Issuer
	LEICode
	Notifier
	PDMR
	Position
	CloselyAssociated
	Amendment
	DetailsOfAmendment
	InitialNotification
	LinkedToShareOptionProgramme
	NatureOfTransaction
	InstrumentType
	InstrumentName
	ISIN
	TransactionDate
	Quantity
	Unit
	Price
	Currency
	TradingVenue
	Status

	fieldCount
)

// NumFields is the number of canonical fields.
const NumFields = int(fieldCount) - 1

var fieldNames = [fieldCount]string{
	Unmapped:                     "unmapped",
	PublicationDate:              "publication_date",
	Issuer:                       "issuer",
	LEICode:                      "lei_code",
	Notifier:                     "notifier",
	PDMR:                         "pdmr",
	Position:                     "position",
	CloselyAssociated:            "closely_associated",
	Amendment:                    "amendment",
	DetailsOfAmendment:           "details_of_amendment",
	InitialNotification:          "initial_notification",
	LinkedToShareOptionProgramme: "linked_to_share_option_programme",
	NatureOfTransaction:          "nature_of_transaction",
	InstrumentType:               "instrument_type",
	InstrumentName:               "instrument_name",
	ISIN:                         "isin",
	TransactionDate:              "transaction_date",
	Quantity:                     "quantity",
	Unit:                         "unit",
	Price:                        "price",
	Currency:                     "currency",
	TradingVenue:                 "trading_venue",
	Status:                       "status",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fieldNames[Unmapped]
	}
	return fieldNames[f]
}

// Kind returns the conversion rule for the field.
func (f Field) Kind() Kind {
	switch f {
	case Unmapped:
		return KindUnmapped
	case PublicationDate, TransactionDate:
		return KindTimestamp
	case CloselyAssociated, Amendment, InitialNotification, LinkedToShareOptionProgramme:
		return KindBool
	case Quantity, Price:
		return KindNumeric
	}
	if f < 0 || f >= fieldCount {
		return KindUnmapped
	}
	return KindText
}

// ColumnName pairs a canonical field with the literal header text that
// denotes it in one locale.
type ColumnName struct {
	Field Field
	Text  string
}

// HeaderTable holds the header names recognized per locale. Several names may
// point at the same field; supporting another locale means adding an entry.
type HeaderTable map[Language][]ColumnName

// DefaultHeaders matches current registry exports as well as the older column
// names that still show up in archived files.
var DefaultHeaders = HeaderTable{
	Swedish: {
		{PublicationDate, "Publiceringsdatum"},
		{Issuer, "Emittent"},
		{LEICode, "LEI-kod"},
		{Notifier, "Anmälningsskyldig"},
		{PDMR, "Person i ledande ställning"},
		{Position, "Befattning"},
		{CloselyAssociated, "Närstående"},
		{Amendment, "Korrigering"},
		{DetailsOfAmendment, "Beskrivning av korrigering"},
		{InitialNotification, "Är förstagångsrapportering"},
		{LinkedToShareOptionProgramme, "Är kopplad till aktieprogram"},
		{NatureOfTransaction, "Karaktär"},
		{InstrumentType, "Instrumenttyp"},
		{InstrumentName, "Instrumentnamn"},
		{ISIN, "ISIN"},
		{TransactionDate, "Transaktionsdatum"},
		{Quantity, "Volym"},
		{Unit, "Volymsenhet"},
		{Price, "Pris"},
		{Currency, "Valuta"},
		{TradingVenue, "Handelsplats"},
		{Status, "Status"},
		// older exports
		{PublicationDate, "Publicerings datum"},
		{Issuer, "Utgivare"},
		{TransactionDate, "Transaktions datum"},
		{InstrumentName, "Instrument"},
	},
	English: {
		{PublicationDate, "Publication date"},
		{Issuer, "Issuer"},
		{LEICode, "LEI-code"},
		{Notifier, "Notifier"},
		{PDMR, "Person discharging managerial responsibilities"},
		{Position, "Position"},
		{CloselyAssociated, "Closely associated"},
		{Amendment, "Amendment"},
		{DetailsOfAmendment, "Details of amendment"},
		{InitialNotification, "Initial notification"},
		{LinkedToShareOptionProgramme, "Linked to share option programme"},
		{NatureOfTransaction, "Nature of transaction"},
		{InstrumentType, "Intrument type"}, // sic, as sent by the registry
		{InstrumentName, "Instrument name"},
		{ISIN, "ISIN"},
		{TransactionDate, "Transaction date"},
		{Quantity, "Volume"},
		{Unit, "Unit"},
		{Price, "Price"},
		{Currency, "Currency"},
		{TradingVenue, "Trading venue"},
		{Status, "Status"},
		{InstrumentType, "Instrument type"},
	},
}

// lookup builds the header text index for one locale.
func (t HeaderTable) lookup(lang Language) map[string]Field {
	names := t[lang]
	idx := make(map[string]Field, len(names))
	for _, n := range names {
		if n.Field == Unmapped {
			continue
		}
		if _, dup := idx[n.Text]; !dup {
			idx[n.Text] = n.Field
		}
	}
	return idx
}
