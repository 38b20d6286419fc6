package format

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var englishPrinter = message.NewPrinter(language.English)

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
}

// CurrencyCodes returns the codes with a known symbol, sorted.
func CurrencyCodes() []string {
	return slices.Sorted(maps.Keys(currencySymbols))
}

// CurrencySymbol returns the symbol for code, or code itself when unknown.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}

	return code
}

// Currency formats amount with the symbol of code, two decimals and comma
// thousands separators: Currency(1234.5, "EUR") == "€1,234.50".
// An empty code means DefaultCurrency.
func Currency(amount float64, code string) string {
	if code == "" {
		code = DefaultCurrency
	}

	return CurrencySymbol(code) + Number(amount, 2) //nolint:mnd
}

// Number formats v rounded half away from zero to decimals places with comma
// thousands separators and a dot as decimal point. NaN and infinities are
// printed as strconv does.
func Number(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	rounded := decimal.NewFromFloat(v).Round(int32(decimals)) //nolint:gosec
	abs := rounded.Abs()
	whole := abs.Truncate(0)

	out := groupThousands(whole.String())

	if decimals > 0 {
		// "0.50" -> ".50"
		out += abs.Sub(whole).StringFixed(int32(decimals))[1:] //nolint:gosec
	}

	if rounded.IsNegative() {
		out = "-" + out
	}

	return out
}

// groupThousands inserts commas into a string of decimal digits. Values that
// fit an int64 go through the x/text printer, larger ones are grouped by hand
// so that amounts beyond the int64 range keep their digits.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return englishPrinter.Sprintf("%d", n)
	}

	var b strings.Builder

	lead := len(digits) % 3 //nolint:mnd
	if lead == 0 {
		lead = 3
	}

	b.WriteString(digits[:lead])

	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
