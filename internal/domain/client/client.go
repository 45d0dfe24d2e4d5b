package client

import (
	"errors"
	"regexp"
	"strings"

	"github.com/inmobiliaria/backend/internal/domain/shared"
)

var (
	ErrNameRequired  = errors.New("client: name is required")
	ErrInvalidEmail  = errors.New("client: invalid email address")
	ErrClientNotFound = errors.New("client: not found")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Client is an owner or counterpart the brokerage deals with. It is
// referenced by properties (as owner) and by contracts.
type Client struct {
	shared.BaseAggregateRoot
	Name       string `gorm:"type:varchar(200);not null" json:"name"`
	Email      string `gorm:"type:varchar(200);index" json:"email"`
	Phone      string `gorm:"type:varchar(50);index" json:"phone"`
	DocumentID string `gorm:"type:varchar(50)" json:"documentId"` // DNI or CUIT
	Address    string `gorm:"type:text" json:"address"`
	City       string `gorm:"type:varchar(100)" json:"city"`
	Province   string `gorm:"type:varchar(100)" json:"province"`
	Notes      string `gorm:"type:text" json:"notes"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a client with the required fields validated
func NewClient(name, email, phone string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	return &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
	}, nil
}

// Update applies editable fields, validating the email when present
func (c *Client) Update(name, email, phone, documentID, address, city, province, notes string) error {
	if name != "" {
		c.Name = strings.TrimSpace(name)
	}
	if c.Name == "" {
		return ErrNameRequired
	}
	if email != "" && !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if email != "" {
		c.Email = email
	}
	if phone != "" {
		c.Phone = phone
	}
	if documentID != "" {
		c.DocumentID = documentID
	}
	if address != "" {
		c.Address = address
	}
	if city != "" {
		c.City = city
	}
	if province != "" {
		c.Province = province
	}
	if notes != "" {
		c.Notes = notes
	}
	return nil
}
