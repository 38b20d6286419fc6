package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DateTimeLayout is the default layout for Date and the layout of
// CurrentTimestamp and ToUTC.
const DateTimeLayout = time.DateTime

// Date formats value with the Go layout (DateTimeLayout when empty) in the
// local timezone.
//
// Numbers and numeric strings are Unix timestamps, time.Time values are used
// as is and other strings are parsed as free-form dates. A string that can
// not be parsed is returned unchanged.
func Date(value any, layout string) string {
	if layout == "" {
		layout = DateTimeLayout
	}

	t, ok := toTime(value)
	if !ok {
		if s, isString := value.(string); isString {
			return s
		}

		return ""
	}

	return t.In(time.Local).Format(layout)
}

// CurrentTimestamp returns the current UTC time as "YYYY-MM-DD HH:MM:SS".
func CurrentTimestamp() string {
	return time.Now().UTC().Format(DateTimeLayout)
}

// ToUTC converts a Unix timestamp, time.Time or date string to UTC
// "YYYY-MM-DD HH:MM:SS". Date strings without a zone are read in the local
// timezone. Unparsable input maps to the Unix epoch.
func ToUTC(value any) string {
	t, ok := toTime(value)
	if !ok {
		t = time.Unix(0, 0)
	}

	return t.UTC().Format(DateTimeLayout)
}

func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}

		return *v, true
	case int:
		return time.Unix(int64(v), 0), true
	case int32:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case uint32:
		return time.Unix(int64(v), 0), true
	case float64:
		return time.Unix(int64(v), 0), true
	case string:
		return parseTime(v)
	default:
		return time.Time{}, false
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Unix(int64(n), 0), true
	}

	t, err := now.ParseInLocation(time.Local, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
