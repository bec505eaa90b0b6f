package review

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds an externally supplied header or value into a
// canonical key: diacritics stripped via NFD decomposition, the
// Vietnamese đ mapped to d, lower-cased, everything outside [a-z0-9]
// dropped. Idempotent, so normalized keys can be re-normalized safely.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "đ", "d")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Record is one applicant's stored row: backend-defined column headers
// mapped to cell values. Headers arrive with arbitrary casing,
// spacing and diacritics, so all access goes through Normalize.
type Record map[string]string

// FindKey returns the stored key whose normalized form equals the
// normalized target, or "" when no column matches.
func (r Record) FindKey(target string) string {
	want := Normalize(target)
	for key := range r {
		if Normalize(key) == want {
			return key
		}
	}
	return ""
}

// Get returns the trimmed value for a canonical field. The second
// result is false when the column is missing or holds only whitespace.
func (r Record) Get(field string) (string, bool) {
	key := r.FindKey(field)
	if key == "" {
		return "", false
	}
	value := strings.TrimSpace(r[key])
	// Sheets prefix text-forced cells with a quote.
	value = strings.TrimPrefix(value, "'")
	if value == "" {
		return "", false
	}
	return value, true
}
