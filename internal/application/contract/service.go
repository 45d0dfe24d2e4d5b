package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/contract"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// CreateContractInput carries the fields accepted on creation
type CreateContractInput struct {
	PropertyID uuid.UUID
	ClientID   uuid.UUID
	Operation  listing.Operation
	Amount     decimal.Decimal
	Currency   string
	SignedAt   time.Time
	Notes      string
}

// Service handles contract creation and lookup. Creating a contract
// closes the operation: the linked property moves to terminada.
type Service struct {
	contracts  contract.Repository
	properties listing.Repository
	logger     *zap.Logger
}

// NewService creates the contract service
func NewService(contracts contract.Repository, properties listing.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{contracts: contracts, properties: properties, logger: logger}
}

// CreateContract records the contract and terminates the property
// lifecycle
func (s *Service) CreateContract(ctx context.Context, input CreateContractInput) (*contract.Contract, error) {
	prop, err := s.properties.FindByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	c, err := contract.NewContract(input.PropertyID, input.ClientID, input.Operation, input.Amount, input.Currency, input.SignedAt)
	if err != nil {
		return nil, err
	}
	c.Notes = input.Notes

	if err := s.contracts.Create(ctx, c); err != nil {
		return nil, err
	}

	prop.Terminate()
	if err := s.properties.Update(ctx, prop); err != nil {
		// The contract exists; the lifecycle write is retried on the
		// next edit. Log it so the inconsistency is visible.
		s.logger.Error("property lifecycle update failed after contract creation",
			zap.String("contract_id", c.ID.String()),
			zap.String("property_id", prop.ID.String()),
			zap.Error(err))
	}

	return c, nil
}

// GetContract loads one contract
func (s *Service) GetContract(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	return s.contracts.FindByID(ctx, id)
}

// ListContracts lists contracts with their total count
func (s *Service) ListContracts(ctx context.Context, filter contract.Filter) ([]*contract.Contract, int64, error) {
	list, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.contracts.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
