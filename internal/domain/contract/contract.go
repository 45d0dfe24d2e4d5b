package contract

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/shared"
)

var (
	ErrPropertyRequired = errors.New("contract: property is required")
	ErrClientRequired   = errors.New("contract: client is required")
	ErrInvalidAmount    = errors.New("contract: amount must be positive")
	ErrContractNotFound = errors.New("contract: not found")
)

// Contract records a closed operation over a property. Creating one
// moves the linked property to the terminada lifecycle.
type Contract struct {
	shared.BaseAggregateRoot
	PropertyID uuid.UUID         `gorm:"type:uuid;not null;index" json:"propertyId"`
	ClientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"clientId"`
	Operation  listing.Operation `gorm:"type:varchar(30);not null" json:"operation"`
	Amount     decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"amount"`
	Currency   string            `gorm:"type:varchar(10);not null;default:'ars'" json:"currency"`
	SignedAt   time.Time         `gorm:"not null" json:"signedAt"`
	Notes      string            `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a contract with required references validated
func NewContract(propertyID, clientID uuid.UUID, op listing.Operation, amount decimal.Decimal, currency string, signedAt time.Time) (*Contract, error) {
	if propertyID == uuid.Nil {
		return nil, ErrPropertyRequired
	}
	if clientID == uuid.Nil {
		return nil, ErrClientRequired
	}
	if !op.IsValid() {
		return nil, listing.ErrInvalidOperation
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = "ars"
	}
	if signedAt.IsZero() {
		signedAt = time.Now()
	}
	return &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		ClientID:          clientID,
		Operation:         op,
		Amount:            amount,
		Currency:          currency,
		SignedAt:          signedAt,
	}, nil
}

// Filter narrows contract listings
type Filter struct {
	PropertyID *uuid.UUID
	ClientID   *uuid.UUID
	Operation  listing.Operation
	SortBy     string
	SortOrder  string
	Limit      int
	Offset     int
}

// Repository provides access to contract records
type Repository interface {
	Create(ctx context.Context, contract *Contract) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	List(ctx context.Context, filter Filter) ([]*Contract, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}
