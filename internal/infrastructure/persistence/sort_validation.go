package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns the defaultOrder if the input is invalid or empty.
func ValidateSortOrder(orderDir, defaultOrder string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return defaultOrder
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
// Sort fields reach an ORDER BY clause, so nothing outside the whitelist may
// pass through.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// PropertySortFields contains allowed sort fields for property listings
var PropertySortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"title":         true,
	"property_type": true,
	"operation":     true,
	"lifecycle":     true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"city":       true,
	"province":   true,
}

// ContractSortFields contains allowed sort fields for contracts
var ContractSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"signed_at":  true,
	"operation":  true,
	"amount":     true,
	"currency":   true,
}
