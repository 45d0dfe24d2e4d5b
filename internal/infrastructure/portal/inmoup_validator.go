package portal

import (
	"fmt"
	"unicode/utf8"
)

// inmoupMaxTitleLength is the portal's hard title limit.
const inmoupMaxTitleLength = 60

// validateInmoupListing checks a mapped payload against the portal's
// published constraints. Every violation is accumulated; an empty
// result means the payload can be sent.
func validateInmoupListing(l *InmoupListing) []string {
	var violations []string

	if l.Titulo == "" {
		violations = append(violations, "titulo is required")
	} else if utf8.RuneCountInString(l.Titulo) > inmoupMaxTitleLength {
		violations = append(violations, fmt.Sprintf("titulo exceeds %d characters", inmoupMaxTitleLength))
	}
	if l.Precio <= 0 {
		violations = append(violations, "precio must be greater than zero")
	}
	if len(l.Imagenes) == 0 {
		violations = append(violations, "at least one image is required")
	}
	if l.OperacionID == 0 {
		violations = append(violations, "tipoOperacion is required")
	}

	return violations
}
