package client

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows client listings
type Filter struct {
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// Repository provides access to client records
type Repository interface {
	Create(ctx context.Context, client *Client) error
	Update(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context, filter Filter) ([]*Client, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
