package listing

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows property listings
type Filter struct {
	Type         PropertyType
	Condition    Operation
	Lifecycle    Lifecycle
	Portal       string
	PortalStatus PublicationState
	OwnerID      *uuid.UUID
	Search       string
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// Reader provides read access to properties
type Reader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	List(ctx context.Context, filter Filter) ([]*Property, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Writer provides write access to properties
type Writer interface {
	Create(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SavePortalStatus persists a single portal status record of a
	// property without touching the rest of the aggregate.
	SavePortalStatus(ctx context.Context, propertyID uuid.UUID, status *PortalStatus) error
}

// Repository combines read and write access to properties
type Repository interface {
	Reader
	Writer
}
