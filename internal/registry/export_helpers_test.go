package registry

import (
	"strings"
)

// headerFor renders the current registry header for lang.
func headerFor(lang Language) string {
	var names []string
	seen := map[Field]bool{}
	for _, cn := range DefaultHeaders[lang] {
		if seen[cn.Field] {
			continue
		}
		seen[cn.Field] = true
		names = append(names, cn.Text)
	}
	return strings.Join(names, ";") + ";"
}

// swedishRow renders one data row matching headerFor(Swedish).
func swedishRow(issuer, volume, price string) string {
	return strings.Join([]string{
		"2024-03-01 09:00:00",
		issuer,
		"529900F3C9XHTXQLQE74",
		"Swedish Match AB",
		"Lars Dahlgren",
		"Verkställande direktör (VD)",
		"Nej",
		"Nej",
		"",
		"Ja",
		"Nej",
		"Förvärv",
		"Aktie",
		"Swedish Match AB",
		"SE0000310336",
		"2024-02-28 00:00:00",
		volume,
		"Antal",
		price,
		"SEK",
		"NASDAQ STOCKHOLM AB",
		"Aktuell",
	}, ";") + ";"
}

// englishRow renders one data row matching headerFor(English).
func englishRow(issuer, volume, price string) string {
	return strings.Join([]string{
		"01/03/2024 09:00:00",
		issuer,
		"529900F3C9XHTXQLQE74",
		"Swedish Match AB",
		"Lars Dahlgren",
		"Chief Executive Officer (CEO)",
		"Yes",
		"No",
		"",
		"Yes",
		"No",
		"Acquisition",
		"Share",
		"Swedish Match AB",
		"SE0000310336",
		"28/02/2024 00:00:00",
		volume,
		"Quantity",
		price,
		"SEK",
		"NASDAQ STOCKHOLM AB",
		"Current",
	}, ";") + ";"
}
