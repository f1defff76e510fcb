package registry

import (
	"github.com/rs/zerolog"

	"github.com/guttosm/insynpulse/internal/domain/models"
)

// Mapper turns the lines of one export response into transactions.
//
// A Mapper starts uninitialized; Initialize consumes the header line and fixes
// the column assignment list for the rest of the response. A new response
// needs a new Mapper.
type Mapper struct {
	table   HeaderTable
	lang    Language
	log     *zerolog.Logger
	columns Columns
	ready   bool
}

// NewMapper returns an uninitialized mapper. A nil table selects DefaultHeaders
// and a nil log discards warnings.
func NewMapper(lang Language, table HeaderTable, log *zerolog.Logger) *Mapper {
	if table == nil {
		table = DefaultHeaders
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Mapper{table: table, lang: lang, log: log}
}

// Initialize tokenizes the header line and builds the column assignment list.
// It returns the number of columns data lines are split into.
// Calling it twice panics.
func (m *Mapper) Initialize(header string) int {
	if m.ready {
		panic("registry: mapper already initialized")
	}
	m.columns = BuildColumns(m.table, m.lang, SplitLine(header, MaxColumns))
	m.ready = true
	return m.columns.Len()
}

// Initialized reports whether the header has been consumed.
func (m *Mapper) Initialized() bool { return m.ready }

// Columns returns the assignment list built by Initialize.
func (m *Mapper) Columns() Columns { return m.columns }

// Convert tokenizes one data line and converts it. The result may be invalid;
// filtering is left to the caller. Calling Convert before Initialize panics.
func (m *Mapper) Convert(line string) models.Transaction {
	if !m.ready {
		panic("registry: Convert called before Initialize")
	}
	return m.columns.Convert(SplitLine(line, m.columns.Len()), m.log)
}
