package portal

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fallbackDescription is published when a property has no usable
// description text at all.
const fallbackDescription = "Consulte por más información sobre esta propiedad."

// normalizeDescription cleans free text coming from the back office:
// NFC-normalizes it, collapses runs of spaces and tabs inside each
// line, collapses runs of blank lines to a single separating blank
// line and trims leading and trailing blanks. Empty input maps to a
// fixed fallback sentence so portals never receive an empty body.
func normalizeDescription(s string) string {
	s = norm.NFC.String(s)

	var lines []string
	pendingBlank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			pendingBlank = true
			continue
		}
		if pendingBlank && len(lines) > 0 {
			lines = append(lines, "")
		}
		pendingBlank = false
		lines = append(lines, line)
	}
	out := strings.Join(lines, "\n")
	if out == "" {
		return fallbackDescription
	}
	return out
}

// normalizeTitle collapses whitespace in a title to a single line
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
