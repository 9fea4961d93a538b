package sqlfix

import "strings"

// SplitValues splits the text of a VALUES clause into trimmed literal tokens.
//
// A comma separates tokens only outside quotes. A quoted region opens on ' or
// " and closes only on the same character, so "it's" stays one token. An
// unterminated quote runs to the end of the input and is not an error.
//
// Empty segments are kept everywhere except the last position: "" and "1,"
// produce no trailing token, while ",1" and "1,,2" keep their empty entries.
func SplitValues(list string) []string {
	var (
		values  []string
		current strings.Builder
		quote   byte // 0 when outside a quoted region
	)

	// Quotes and commas are ASCII, so a byte scan never splits a UTF-8 sequence.
	for i := 0; i < len(list); i++ {
		c := list[i]
		switch {
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
			current.WriteByte(c)
		case quote != 0 && c == quote:
			quote = 0
			current.WriteByte(c)
		case quote == 0 && c == ',':
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	if last := strings.TrimSpace(current.String()); last != "" {
		values = append(values, last)
	}
	return values
}

// SplitColumns splits a column list on every comma and trims each name.
// Column lists are identifiers, so no quote tracking is done.
func SplitColumns(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
