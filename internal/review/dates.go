package review

import (
	"regexp"
	"strings"
	"time"
)

const displayDateLayout = "02/01/2006"

var displayDateRe = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})(\s.*)?$`)

// FormatDate renders a stored date cell as DD/MM/YYYY. Cells already
// in display form (optionally carrying a time suffix) keep their date
// part; ISO-style timestamps are parsed and reformatted in UTC.
// Anything else reads as absent — an ambiguous date must never render
// as a wrong one.
func FormatDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if m := displayDateRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}

	if strings.Contains(raw, "T") {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC().Format(displayDateLayout), true
			}
		}
		return "", false
	}

	return "", false
}
