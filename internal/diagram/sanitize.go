package diagram

import (
	"strings"
	"unicode"
)

const (
	maxIDLength    = 64
	maxLabelLength = 60

	fallbackID = "node"
)

// SanitizeID normalizes a raw path or name into a diagram-safe identifier:
// alphanumerics and underscores only, runs collapsed, no leading digit, no
// leading or trailing underscore, length-capped. Re-applying the function to
// its own output is a no-op. Distinct raw inputs may collapse to the same
// token; identifiers are presentational, not keys.
func SanitizeID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	prevUnderscore := false
	for _, r := range raw {
		if r > unicode.MaxASCII || (!unicode.IsLetter(r) && !unicode.IsDigit(r)) {
			if !prevUnderscore {
				b.WriteByte('_')
				prevUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		prevUnderscore = false
	}

	id := strings.Trim(b.String(), "_")
	if id == "" {
		return fallbackID
	}
	if id[0] >= '0' && id[0] <= '9' {
		id = "n_" + id
	}
	if len(id) > maxIDLength {
		id = strings.TrimRight(id[:maxIDLength], "_")
	}
	return id
}

// SanitizeLabel strips characters that break quoted diagram labels. Allowed:
// alphanumerics, spaces, dashes, underscores, parentheses, commas, periods.
func SanitizeLabel(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for _, r := range raw {
		if r > unicode.MaxASCII {
			continue
		}
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case strings.ContainsRune(" -_(),.", r):
			b.WriteRune(r)
		}
	}

	label := strings.TrimSpace(b.String())
	if len(label) > maxLabelLength {
		label = strings.TrimSpace(label[:maxLabelLength])
	}
	return label
}
