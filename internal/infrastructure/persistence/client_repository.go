package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inmobiliaria/backend/internal/domain/client"
)

// GormClientRepository implements client.Repository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

var _ client.Repository = (*GormClientRepository)(nil)

// Create persists a new client
func (r *GormClientRepository) Create(ctx context.Context, c *client.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update saves an existing client
func (r *GormClientRepository) Update(ctx context.Context, c *client.Client) error {
	result := r.db.WithContext(ctx).Model(&client.Client{}).
		Where("id = ?", c.ID).
		Select("*").Omit("id", "created_at").Updates(c)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List finds clients matching the filter
func (r *GormClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	var clients []*client.Client
	query := r.applyFilter(r.db.WithContext(ctx).Model(&client.Client{}), filter)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	sortField := ValidateSortField(filter.SortBy, ClientSortFields, "name")
	sortOrder := ValidateSortOrder(filter.SortOrder, "ASC")
	if err := query.Order(sortField + " " + sortOrder).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter client.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&client.Client{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a client record
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&client.Client{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func (r *GormClientRepository) applyFilter(query *gorm.DB, filter client.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}
	return query
}
