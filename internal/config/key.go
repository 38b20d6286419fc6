package config

import (
	"encoding/base64"
	"strings"
)

// KeyPrefix marks a base64 encoded app.key.
const KeyPrefix = "base64:"

// CookieKey returns the app key as the standard base64 string the cookie
// encryption expects. ok is false for the placeholder, for keys without the
// base64: prefix and for keys that do not decode to 16, 24 or 32 bytes.
func (a *App) CookieKey() (key string, ok bool) {
	encoded, found := strings.CutPrefix(a.Key, KeyPrefix)
	if !found {
		return "", false
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}

	switch len(raw) {
	case 16, 24, 32: //nolint:mnd
		return encoded, true
	default:
		return "", false
	}
}
