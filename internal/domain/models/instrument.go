package models

import "strings"

// InstrumentType is one of the instrument categories used by the registry.
// Exports carry either the code or one of the descriptions, depending on the
// requested language and the age of the export.
type InstrumentType struct {
	Code    string `json:"code"`
	English string `json:"english"`
	Swedish string `json:"swedish"`
}

// UnknownInstrumentType is returned for values that match no known category.
var UnknownInstrumentType = InstrumentType{Code: "UNKNOWN", English: "Unknown", Swedish: "Okänd"}

var instrumentTypes = []InstrumentType{
	{Code: "InstrumentTyp1", English: "Share", Swedish: "Aktie"},
	{Code: "InstrumentTyp2", English: "BTA", Swedish: "BTA (betald tecknad aktie)"},
	{Code: "InstrumentTyp3", English: "BTU", Swedish: "BTU (betald tecknad unit)"},
	{Code: "InstrumentTyp5", English: "Capital equity", Swedish: "Kapitalandelsbevis"},
	{Code: "InstrumentTyp6", English: "Convertible", Swedish: "Konvertibel"},
	{Code: "InstrumentTyp7", English: "Bond", Swedish: "Obligation"},
	{Code: "InstrumentTyp8", English: "Option", Swedish: "Option"},
	{Code: "InstrumentTyp11", English: "Subscription warrant", Swedish: "Teckningsoption"},
	{Code: "InstrumentTyp12", English: "Subscription right", Swedish: "Teckningsrätt"},
	{Code: "InstrumentTyp13", English: "Future/Forward", Swedish: "Terminer"},
	{Code: "InstrumentTyp14", English: "Warrant", Swedish: "Warrant"},
	{Code: "InstrumentTyp15", English: "Other derivative contracts", Swedish: "Övriga derivatkontrakt"},
	{Code: "InstrumentTyp17", English: "Redemption share", Swedish: "Inlösenaktie"},
	{Code: "InstrumentTyp18", English: "Call option", Swedish: "Köpoption"},
	{Code: "InstrumentTyp19", English: "Put option", Swedish: "Säljoption"},
	{Code: "InstrumentTyp20", English: "Synthetic option", Swedish: "Syntetisk option"},
	{Code: "InstrumentTyp21", English: "Commercial paper", Swedish: "Företagscertifikat"},
	{Code: "InstrumentTyp22", English: "Interim share", Swedish: "Interimsaktie"},
	{Code: "InstrumentTyp23", English: "Emission allowance", Swedish: "Utsläppsrätt"},
}

// instrumentIndex maps every accepted spelling to its instrument type.
var instrumentIndex = func() map[string]InstrumentType {
	idx := make(map[string]InstrumentType, len(instrumentTypes)*3+1)
	for _, it := range instrumentTypes {
		idx[it.Code] = it
		idx[it.English] = it
		idx[it.Swedish] = it
	}
	// older Swedish exports
	idx["Teckningsrätt/Uniträtt"] = instrumentTypes[8]
	return idx
}()

// LookupInstrumentType accepts a code ("InstrumentTyp1"), an English
// description ("Share") or a Swedish description ("Aktie").
func LookupInstrumentType(s string) InstrumentType {
	if it, ok := instrumentIndex[strings.TrimSpace(s)]; ok {
		return it
	}
	return UnknownInstrumentType
}
