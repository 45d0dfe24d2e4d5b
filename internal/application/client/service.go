package client

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inmobiliaria/backend/internal/domain/client"
)

// UpdateClientInput carries partial client updates; empty fields are
// left untouched
type UpdateClientInput struct {
	Name       string
	Email      string
	Phone      string
	DocumentID string
	Address    string
	City       string
	Province   string
	Notes      string
}

// Service handles client (owner) records
type Service struct {
	repo   client.Repository
	logger *zap.Logger
}

// NewService creates the client service
func NewService(repo client.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateClient creates a client record
func (s *Service) CreateClient(ctx context.Context, name, email, phone string) (*client.Client, error) {
	c, err := client.NewClient(name, email, phone)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetClient loads one client
func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// ListClients lists clients with their total count
func (s *Service) ListClients(ctx context.Context, filter client.Filter) ([]*client.Client, int64, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// UpdateClient applies a partial update
func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*client.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(input.Name, input.Email, input.Phone, input.DocumentID, input.Address, input.City, input.Province, input.Notes); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteClient removes a client record
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
