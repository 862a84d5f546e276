package services

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the date formats the backend sends
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var monthNames = map[string][12]string{
	"fr": {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"ar": {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
}

// ParseDate parses a backend date (YYYY-MM-DD, optionally with a time).
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
}

// FormatDate renders a backend date for display in lang. Values that do
// not parse are returned unchanged.
func FormatDate(dateStr, lang string) string {
	t, err := ParseDate(dateStr)
	if err != nil {
		return strings.TrimSpace(dateStr)
	}

	months, ok := monthNames[lang]
	if !ok {
		months = monthNames["fr"]
	}
	month := months[t.Month()-1]

	if lang == "en" {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
}
