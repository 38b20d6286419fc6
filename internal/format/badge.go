package format

import "strings"

// DefaultBadgeClass is returned for statuses without a dedicated class.
const DefaultBadgeClass = "badge-secondary"

var badgeClasses = map[string]string{
	"active":    "badge-success",
	"inactive":  "badge-secondary",
	"pending":   "badge-warning",
	"cancelled": "badge-danger",
	"completed": "badge-info",
}

// StatusBadgeClass maps a status to its badge CSS class, ignoring case.
func StatusBadgeClass(status string) string {
	if class, ok := badgeClasses[strings.ToLower(status)]; ok {
		return class
	}

	return DefaultBadgeClass
}
