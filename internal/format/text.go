package format

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTruncateLength is the length callers without one of their own use,
// such as the truncate template helper. DefaultTruncateSuffix is appended by
// Truncate when no suffix is given.
const (
	DefaultTruncateLength = 50
	DefaultTruncateSuffix = "..."
)

var (
	slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)
	lower          = cases.Lower(language.Und)
)

// Slugify lowercases s and replaces every run of characters outside [a-z0-9]
// with a single hyphen. Leading and trailing hyphens are removed.
func Slugify(s string) string {
	s = slugSeparators.ReplaceAllString(lower.String(s), "-")

	return strings.Trim(s, "-")
}

// Truncate shortens s to maxLength characters and appends suffix. Strings
// that already fit are returned unchanged. A zero maxLength keeps only the
// suffix, a negative one drops that many characters from the end before the
// suffix is appended. A missing suffix means DefaultTruncateSuffix.
func Truncate(s string, maxLength int, suffix ...string) string {
	tail := DefaultTruncateSuffix
	if len(suffix) > 0 {
		tail = suffix[0]
	}

	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	end := maxLength
	if end < 0 {
		end = max(len(runes)+maxLength, 0)
	}

	return string(runes[:end]) + tail
}
