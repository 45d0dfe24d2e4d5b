package portal

import (
	"fmt"
	"unicode/utf8"
)

// meliMaxTitleLength is the site's hard title limit.
const meliMaxTitleLength = 60

// validateMeliItem checks a mapped create payload against the site's
// constraints. Every violation is accumulated; an empty result means
// the payload can be sent.
func validateMeliItem(item *MeliItem) []string {
	var violations []string

	if item.Title == "" {
		violations = append(violations, "title is required")
	} else if utf8.RuneCountInString(item.Title) > meliMaxTitleLength {
		violations = append(violations, fmt.Sprintf("title exceeds %d characters", meliMaxTitleLength))
	}
	if item.Price <= 0 {
		violations = append(violations, "price must be greater than zero")
	}
	if len(item.Pictures) == 0 {
		violations = append(violations, "at least one picture is required")
	}
	if item.CategoryID == "" {
		violations = append(violations, "category_id is required")
	}

	present := make(map[string]bool, len(item.Attributes))
	for _, a := range item.Attributes {
		present[a.ID] = true
	}
	for _, required := range meliRequiredAttributes {
		if !present[required] {
			violations = append(violations, fmt.Sprintf("required attribute %s is missing", required))
		}
	}

	return violations
}

// validateMeliItemUpdate checks an edit payload. Only the fields an
// update can carry are constrained.
func validateMeliItemUpdate(upd *MeliItemUpdate) []string {
	var violations []string

	if upd.Title != "" && utf8.RuneCountInString(upd.Title) > meliMaxTitleLength {
		violations = append(violations, fmt.Sprintf("title exceeds %d characters", meliMaxTitleLength))
	}
	if upd.Price < 0 {
		violations = append(violations, "price must not be negative")
	}

	return violations
}
