package input

import (
	"strings"
	"unicode/utf8"
)

// trimSet is the set of characters stripped from both ends of form input.
const trimSet = " \t\n\r\x00\x0B"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#039;",
	"<", "&lt;",
	">", "&gt;",
)

// Sanitize trims surrounding whitespace and escapes &, ", ', < and > as HTML
// entities. Input that is not valid UTF-8 yields an empty string.
func Sanitize(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}

	return htmlEscaper.Replace(strings.Trim(s, trimSet))
}
