package registry

import (
	"math"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Europe/Stockholm on hosts without a zoneinfo database

	"github.com/rs/zerolog"

	"github.com/guttosm/insynpulse/internal/domain/models"
)

// MaxColumns bounds the number of header cells considered.
const MaxColumns = 32

// Assignment tells what to do with one column: which field it feeds and how
// its value is converted. A zero Assignment is unmapped.
type Assignment struct {
	Field Field
	Kind  Kind
}

// Mapped reports whether the column feeds a field.
func (a Assignment) Mapped() bool { return a.Field != Unmapped }

// Columns is the per-response column assignment list. It is read-only once
// built and safe for concurrent use.
type Columns struct {
	lang        Language
	assignments []Assignment
}

// BuildColumns resolves the tokenized header cells against the locale table.
//
// Header text is matched exactly after trimming. Unknown names stay unmapped.
// A field is assigned to the first column naming it; later duplicates are
// unmapped so each field is written at most once per line.
func BuildColumns(table HeaderTable, lang Language, header []string) Columns {
	header = headerCells(header)
	idx := table.lookup(lang)
	seen := make(map[Field]bool, len(idx))

	out := make([]Assignment, len(header))
	for i, cell := range header {
		f, ok := idx[strings.TrimSpace(cell)]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		out[i] = Assignment{Field: f, Kind: f.Kind()}
	}
	return Columns{lang: lang, assignments: out}
}

// headerCells drops trailing empty cells and applies the column bound.
func headerCells(header []string) []string {
	if len(header) > MaxColumns {
		header = header[:MaxColumns]
	}
	n := len(header)
	for n > 0 && strings.TrimSpace(header[n-1]) == "" {
		n--
	}
	return header[:n]
}

// Len is the number of columns declared by the header.
func (c Columns) Len() int { return len(c.assignments) }

// Language is the locale the columns were resolved for.
func (c Columns) Language() Language { return c.lang }

// Assignments returns a copy of the assignment list.
func (c Columns) Assignments() []Assignment {
	return append([]Assignment(nil), c.assignments...)
}

// Mapped counts the columns that feed a field.
func (c Columns) Mapped() int {
	n := 0
	for _, a := range c.assignments {
		if a.Mapped() {
			n++
		}
	}
	return n
}

// Convert builds one transaction from a tokenized line.
//
// Fields beyond the tokenized length and unmapped columns are skipped and keep
// their zero value. Unparseable numbers become NaN; they and unparseable
// timestamps are logged as warnings on log.
func (c Columns) Convert(fields []string, log *zerolog.Logger) models.Transaction {
	var t models.Transaction
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	n := len(fields)
	if n > len(c.assignments) {
		n = len(c.assignments)
	}
	for i := 0; i < n; i++ {
		a := c.assignments[i]
		v := fields[i]
		switch a.Kind {
		case KindText:
			setText(&t, a.Field, v)
		case KindBool:
			setBool(&t, a.Field, parseBool(v, c.lang))
		case KindNumeric:
			f, ok := parseNumber(v)
			if !ok {
				log.Warn().
					Str("value", v).
					Str("language", c.lang.String()).
					Str("field", a.Field.String()).
					Msg("unparseable numeric value")
			}
			setNumber(&t, a.Field, f)
		case KindTimestamp:
			ts, ok := parseTimestamp(v)
			if !ok {
				log.Warn().
					Str("value", v).
					Str("language", c.lang.String()).
					Str("field", a.Field.String()).
					Msg("unparseable timestamp")
			}
			setTime(&t, a.Field, ts)
		}
	}
	return t
}

func parseBool(v string, lang Language) bool {
	return strings.EqualFold(strings.TrimSpace(v), lang.TrueWord())
}

// parseNumber accepts both decimal comma and decimal point. Only finite
// decimal values count; "Inf", "NaN" and hex floats are rejected.
func parseNumber(v string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
	if strings.ContainsAny(s, "xX") {
		return math.NaN(), false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return math.NaN(), false
	}
	return f, true
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Stockholm is the zone registry timestamps are expressed in.
var Stockholm = loadStockholm()

func loadStockholm() *time.Location {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseTimestamp reports ok for empty values, which simply stay zero.
func parseTimestamp(v string) (time.Time, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, Stockholm); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func setText(t *models.Transaction, f Field, v string) {
	switch f {
	case Issuer:
		t.Issuer = v
	case LEICode:
		t.LEICode = v
	case Notifier:
		t.Notifier = v
	case PDMR:
		t.PDMR = v
	case Position:
		t.Position = v
	case DetailsOfAmendment:
		t.DetailsOfAmendment = v
	case NatureOfTransaction:
		t.NatureOfTransaction = v
	case InstrumentType:
		t.InstrumentType = v
	case InstrumentName:
		t.InstrumentName = v
	case ISIN:
		t.ISIN = v
	case Unit:
		t.Unit = v
	case Currency:
		t.Currency = v
	case TradingVenue:
		t.TradingVenue = v
	case Status:
		t.Status = v
	}
}

func setBool(t *models.Transaction, f Field, v bool) {
	switch f {
	case CloselyAssociated:
		t.CloselyAssociated = v
	case Amendment:
		t.Amendment = v
	case InitialNotification:
		t.InitialNotification = v
	case LinkedToShareOptionProgramme:
		t.LinkedToShareOptionProgramme = v
	}
}

func setNumber(t *models.Transaction, f Field, v float64) {
	switch f {
	case Quantity:
		t.Quantity = v
	case Price:
		t.Price = v
	}
}

func setTime(t *models.Transaction, f Field, v time.Time) {
	switch f {
	case PublicationDate:
		t.PublicationDate = v
	case TransactionDate:
		t.TransactionDate = v
	}
}
