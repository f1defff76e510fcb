package registry

import (
	"context"
	"fmt"
	"io"
	"net/url"
)

// SuggestField selects which names the autocomplete search looks through.
type SuggestField string

const (
	SuggestIssuer SuggestField = "Utgivare"
	SuggestPDMR   SuggestField = "PersonILedandeSt%C3%A4llningNamn"
)

// Suggest runs the registry's free-text autocomplete for issuer or PDMR names.
// Names are returned once each, in the order the registry lists them.
func (c *Client) Suggest(ctx context.Context, field SuggestField, term string) ([]string, error) {
	u := fmt.Sprintf("%s/sv-SE/AutoComplete/H%%C3%%A4mtaAutoCompleteLista?sokfunktion=Insyn&falt=%s&sokterm=%s",
		c.baseURL, field, url.QueryEscape(term))

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	return ParseSuggestions(body)
}

// ParseSuggestions extracts the quoted names of an autocomplete response.
func ParseSuggestions(r io.Reader) ([]string, error) {
	sc := newScanner(r)
	seen := make(map[string]struct{})
	var out []string

	for sc.Scan() {
		for _, name := range quotedTokens(sc.Text()) {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read suggestions: %w", err)
	}
	return out, nil
}

// quotedTokens returns every "..." span after the first character of text.
func quotedTokens(text string) []string {
	if len(text) <= 2 {
		return nil
	}
	var out []string
	end := 0
	for {
		start := indexFrom(text, '"', end+1)
		if start == -1 {
			break
		}
		end = indexFrom(text, '"', start+1)
		if end == -1 {
			break
		}
		out = append(out, cleanField(text[start+1:end]))
	}
	return out
}
