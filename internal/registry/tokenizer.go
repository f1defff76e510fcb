package registry

import (
	"strings"
)

const (
	delimiter = ';'
	quote     = '"'

	// ampersandEscape is how the registry site encodes '&' inside exports.
	ampersandEscape = `\u0026`
)

// SplitLine splits one export line into at most n fields.
//
// Fields are separated by ';'. A field starting with '"' is quoted and runs up
// to the next ';' that is directly preceded by '"'; delimiters inside it are
// content and doubled quotes are kept as-is. The enclosing quotes are stripped.
// When the opening quote is directly followed by ';' that delimiter is content
// too, so `";"` yields the single-character field ";".
//
// Every field has `\u0026` replaced by "&" and surrounding whitespace trimmed.
// Text after the last delimiter is a field of its own when non-empty.
//
// SplitLine never fails: a quoted field without a closing quote stops the scan
// and the returned slice is simply shorter than n.
func SplitLine(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	fields := make([]string, 0, n)
	start := 0

	for len(fields) < n {
		end := indexFrom(text, delimiter, start)
		if end == -1 {
			if rest, ok := remainder(text[start:]); ok {
				fields = append(fields, rest)
			}
			break
		}

		skip := 1
		if text[start] == quote {
			start++
			if start == end {
				// opening quote followed by ';': the delimiter is content
				end = indexFrom(text, delimiter, end+1)
			}
			for end != -1 && text[end-1] != quote {
				end = indexFrom(text, delimiter, end+1)
			}
			if end == -1 {
				// unterminated quoted field
				break
			}
			end--
			skip = 2
		}

		fields = append(fields, cleanField(text[start:end]))
		start = end + skip
	}

	return fields
}

// remainder handles the trailing text after the last delimiter.
func remainder(rest string) (string, bool) {
	if strings.TrimSpace(rest) == "" {
		return "", false
	}
	if rest[0] != quote {
		return cleanField(rest), true
	}
	trimmed := strings.TrimRightFunc(rest, isSpace)
	if len(trimmed) < 2 || trimmed[len(trimmed)-1] != quote {
		return "", false
	}
	return cleanField(trimmed[1 : len(trimmed)-1]), true
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, ampersandEscape, "&"))
}

func indexFrom(s string, c byte, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexByte(s[from:], c)
	if i == -1 {
		return -1
	}
	return from + i
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
