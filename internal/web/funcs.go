package web

import (
	"html/template"

	"github.com/spf13/cast"

	"github.com/gestock/gestock/internal/format"
	"github.com/gestock/gestock/internal/pricing"
)

// templateFuncs are the helpers available in every template.
func templateFuncs() map[string]any {
	return map[string]any{
		"currency": func(amount any, code ...string) string {
			c := ""
			if len(code) > 0 {
				c = code[0]
			}

			return format.Currency(cast.ToFloat64(amount), c)
		},
		"date": func(value any, layout ...string) string {
			l := ""
			if len(layout) > 0 {
				l = layout[0]
			}

			return format.Date(value, l)
		},
		"truncate": func(s string, maxLength ...int) string {
			l := format.DefaultTruncateLength
			if len(maxLength) > 0 {
				l = maxLength[0]
			}

			return format.Truncate(s, l)
		},
		"slug":  format.Slugify,
		"badge": format.StatusBadgeClass,
		"query": format.QueryString,
		"percentage": func(value, total any) float64 {
			return pricing.Percentage(cast.ToFloat64(value), cast.ToFloat64(total), pricing.DefaultPercentageDecimals)
		},
		"csrfField": csrfField,
	}
}

// csrfField renders the hidden form input carrying the session token.
func csrfField(token string) template.HTML {
	return template.HTML(`<input type="hidden" name="_token" value="` + //nolint:gosec
		template.HTMLEscapeString(token) + `">`)
}
