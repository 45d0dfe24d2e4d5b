package handler

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/inmobiliaria/backend/internal/domain/client"
	"github.com/inmobiliaria/backend/internal/domain/contract"
	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/interfaces/http/dto"
)

// toDecimalPtr converts a float64 to a *decimal.Decimal
func toDecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// toDecimal converts a float64 to a decimal.Decimal
func toDecimal(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// sentinelErrorCode maps domain sentinel errors to API error codes.
func sentinelErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, listing.ErrPropertyNotFound),
		errors.Is(err, client.ErrClientNotFound),
		errors.Is(err, contract.ErrContractNotFound):
		return dto.ErrCodeNotFound, true
	case errors.Is(err, listing.ErrPropertyTerminated),
		errors.Is(err, listing.ErrInvalidTransition):
		return dto.ErrCodeInvalidState, true
	case errors.Is(err, listing.ErrInvalidPropertyType),
		errors.Is(err, listing.ErrInvalidOperation),
		errors.Is(err, listing.ErrInvalidLifecycle),
		errors.Is(err, listing.ErrTitleRequired),
		errors.Is(err, listing.ErrOwnerRequired),
		errors.Is(err, client.ErrNameRequired),
		errors.Is(err, client.ErrInvalidEmail),
		errors.Is(err, contract.ErrPropertyRequired),
		errors.Is(err, contract.ErrClientRequired),
		errors.Is(err, contract.ErrInvalidAmount):
		return dto.ErrCodeInvalidInput, true
	case errors.Is(err, listing.ErrUnknownPortal):
		return dto.ErrCodePortalUnknown, true
	}
	return "", false
}
