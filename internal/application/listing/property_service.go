package listing

import (
	"context"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// CreatePropertyInput carries the fields accepted on creation
type CreatePropertyInput struct {
	Title           string
	Description     string
	Notes           string
	Classification  listing.Classification
	Characteristics listing.Characteristics
	Environments    listing.Environments
	Amenities       listing.Amenities
	Location        listing.Location
	CoverImage      *listing.Image
	Gallery         []listing.Image
	OwnerID         *uuid.UUID
}

// UpdatePropertyInput carries partial updates. Nil fields are left
// untouched. Gallery replaces the whole gallery when non-nil.
type UpdatePropertyInput struct {
	Title           *string
	Description     *string
	Notes           *string
	Lifecycle       *listing.Lifecycle
	Classification  *listing.Classification
	Characteristics *listing.Characteristics
	Environments    *listing.Environments
	Amenities       *listing.Amenities
	Location        *listing.Location
	CoverImage      *listing.Image
	Gallery         []listing.Image
	OwnerID         *uuid.UUID
}

// PropertyService handles property CRUD and the staleness rule: any
// significant change to a published property flips its ok portals to
// desactualizado.
type PropertyService struct {
	repo   listing.Repository
	logger *zap.Logger
}

// NewPropertyService creates the property service
func NewPropertyService(repo listing.Repository, logger *zap.Logger) *PropertyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PropertyService{repo: repo, logger: logger}
}

// CreateProperty creates a property in the disponible lifecycle
func (s *PropertyService) CreateProperty(ctx context.Context, input CreatePropertyInput) (*listing.Property, error) {
	prop, err := listing.NewProperty(input.Title, input.Classification)
	if err != nil {
		return nil, err
	}
	prop.Description = input.Description
	prop.Notes = input.Notes
	prop.Characteristics = input.Characteristics
	prop.Environments = input.Environments
	prop.Amenities = input.Amenities
	prop.Location = input.Location
	prop.CoverImage = input.CoverImage
	prop.Gallery = input.Gallery
	prop.OwnerID = input.OwnerID
	if prop.Characteristics.Currency == "" {
		prop.Characteristics.Currency = "ars"
	}

	if err := s.repo.Create(ctx, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

// GetProperty loads one property
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*listing.Property, error) {
	return s.repo.FindByID(ctx, id)
}

// ListProperties lists properties with their total count
func (s *PropertyService) ListProperties(ctx context.Context, filter listing.Filter) ([]*listing.Property, int64, error) {
	props, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return props, total, nil
}

// UpdateProperty applies a partial update. Significant changes, which
// is everything except notes and lifecycle, mark published portals
// stale while leaving their external references alone.
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*listing.Property, error) {
	prop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	significant := false

	if input.Title != nil && *input.Title != prop.Title {
		prop.Title = *input.Title
		significant = true
	}
	if input.Description != nil && *input.Description != prop.Description {
		prop.Description = *input.Description
		significant = true
	}
	if input.Notes != nil {
		prop.Notes = *input.Notes
	}
	if input.Lifecycle != nil {
		if err := prop.SetLifecycle(*input.Lifecycle); err != nil {
			return nil, err
		}
	}
	if input.Classification != nil && *input.Classification != prop.Classification {
		if !input.Classification.Type.IsValid() {
			return nil, listing.ErrInvalidPropertyType
		}
		if !input.Classification.Condition.IsValid() {
			return nil, listing.ErrInvalidOperation
		}
		prop.Classification = *input.Classification
		significant = true
	}
	if input.Characteristics != nil && !reflect.DeepEqual(*input.Characteristics, prop.Characteristics) {
		prop.Characteristics = *input.Characteristics
		if prop.Characteristics.Currency == "" {
			prop.Characteristics.Currency = "ars"
		}
		significant = true
	}
	if input.Environments != nil && *input.Environments != prop.Environments {
		prop.Environments = *input.Environments
		significant = true
	}
	if input.Amenities != nil && !reflect.DeepEqual(*input.Amenities, prop.Amenities) {
		prop.Amenities = *input.Amenities
		significant = true
	}
	if input.Location != nil && *input.Location != prop.Location {
		prop.Location = *input.Location
		significant = true
	}
	if input.CoverImage != nil && !reflect.DeepEqual(input.CoverImage, prop.CoverImage) {
		prop.CoverImage = input.CoverImage
		significant = true
	}
	if input.Gallery != nil && !reflect.DeepEqual(input.Gallery, prop.Gallery) {
		prop.Gallery = input.Gallery
		significant = true
	}
	if input.OwnerID != nil && (prop.OwnerID == nil || *input.OwnerID != *prop.OwnerID) {
		prop.OwnerID = input.OwnerID
		significant = true
	}

	if significant {
		if flipped := prop.MarkStale(); len(flipped) > 0 {
			s.logger.Info("published portals marked stale after edit",
				zap.String("property_id", prop.ID.String()),
				zap.Strings("portals", flipped))
		}
	}

	if err := s.repo.Update(ctx, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

// DeleteProperty removes a property record
func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
