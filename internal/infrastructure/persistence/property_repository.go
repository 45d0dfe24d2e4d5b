package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence/models"
)

// GormPropertyRepository implements listing.Repository using GORM.
// The aggregate is split over two tables: the property row and one
// portal status row per portal the property has touched.
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

var _ listing.Repository = (*GormPropertyRepository)(nil)

// --- Reads ---

// FindByID loads a property together with its portal status rows
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Property, error) {
	var model models.PropertyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, listing.ErrPropertyNotFound
		}
		return nil, err
	}
	if err := r.loadPortalStatuses(ctx, &model); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List finds properties matching the filter
func (r *GormPropertyRepository) List(ctx context.Context, filter listing.Filter) ([]*listing.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PropertyModel{}), filter)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	sortField := ValidateSortField(filter.SortBy, PropertySortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder, "DESC")
	if err := query.Order(sortField + " " + sortOrder).Find(&propertyModels).Error; err != nil {
		return nil, err
	}

	properties := make([]*listing.Property, len(propertyModels))
	for i := range propertyModels {
		if err := r.loadPortalStatuses(ctx, &propertyModels[i]); err != nil {
			return nil, err
		}
		properties[i] = propertyModels[i].ToDomain()
	}
	return properties, nil
}

// Count counts properties matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, filter listing.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PropertyModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --- Writes ---

// Create persists a new property and its portal status rows
func (r *GormPropertyRepository) Create(ctx context.Context, property *listing.Property) error {
	model := models.PropertyModelFromDomain(property)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return r.savePortalStatusRows(tx, model.PortalStatuses)
	})
}

// Update saves the whole aggregate, upserting its portal status rows
func (r *GormPropertyRepository) Update(ctx context.Context, property *listing.Property) error {
	model := models.PropertyModelFromDomain(property)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PropertyModel{}).Where("id = ?", model.ID).
			Select("*").Omit("id", "created_at").Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return listing.ErrPropertyNotFound
		}
		return r.savePortalStatusRows(tx, model.PortalStatuses)
	})
}

// Delete removes a property and its portal status rows
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&models.PortalStatusModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.PropertyModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return listing.ErrPropertyNotFound
		}
		return nil
	})
}

// SavePortalStatus upserts a single portal status row without touching
// the rest of the aggregate
func (r *GormPropertyRepository) SavePortalStatus(ctx context.Context, propertyID uuid.UUID, status *listing.PortalStatus) error {
	var model models.PortalStatusModel
	model.FromDomain(propertyID, status)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "property_id"}, {Name: "portal"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"uploaded", "external_id", "external_url", "status", "last_sync_at", "last_error", "updated_at",
			}),
		}).
		Create(&model).Error
}

// --- Helpers ---

func (r *GormPropertyRepository) loadPortalStatuses(ctx context.Context, model *models.PropertyModel) error {
	return r.db.WithContext(ctx).
		Where("property_id = ?", model.ID).
		Order("portal ASC").
		Find(&model.PortalStatuses).Error
}

func (r *GormPropertyRepository) savePortalStatusRows(tx *gorm.DB, rows []models.PortalStatusModel) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "property_id"}, {Name: "portal"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"uploaded", "external_id", "external_url", "status", "last_sync_at", "last_error", "updated_at",
		}),
	}).Create(&rows).Error
}

func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter listing.Filter) *gorm.DB {
	if filter.Type != "" {
		query = query.Where("property_type = ?", filter.Type)
	}
	if filter.Condition != "" {
		query = query.Where("operation = ?", filter.Condition)
	}
	if filter.Lifecycle != "" {
		query = query.Where("lifecycle = ?", filter.Lifecycle)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Portal != "" || filter.PortalStatus != "" {
		sub := r.db.Model(&models.PortalStatusModel{}).
			Select("property_id").
			Where("property_portal_statuses.property_id = properties.id")
		if filter.Portal != "" {
			sub = sub.Where("portal = ?", filter.Portal)
		}
		if filter.PortalStatus != "" {
			sub = sub.Where("status = ?", filter.PortalStatus)
		}
		query = query.Where("EXISTS (?)", sub)
	}
	return query
}
