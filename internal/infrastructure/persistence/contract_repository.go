package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmobiliaria/backend/internal/domain/contract"
)

// GormContractRepository implements contract.Repository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

var _ contract.Repository = (*GormContractRepository)(nil)

// Create persists a new contract
func (r *GormContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	var c contract.Contract
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contract.ErrContractNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List finds contracts matching the filter
func (r *GormContractRepository) List(ctx context.Context, filter contract.Filter) ([]*contract.Contract, error) {
	var contracts []*contract.Contract
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contract.Contract{}), filter)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	sortField := ValidateSortField(filter.SortBy, ContractSortFields, "signed_at")
	sortOrder := ValidateSortOrder(filter.SortOrder, "DESC")
	if err := query.Order(sortField + " " + sortOrder).Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Count counts contracts matching the filter
func (r *GormContractRepository) Count(ctx context.Context, filter contract.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&contract.Contract{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormContractRepository) applyFilter(query *gorm.DB, filter contract.Filter) *gorm.DB {
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Operation != "" {
		query = query.Where("operation = ?", filter.Operation)
	}
	return query
}
