package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// PropertyModel is the persistence model for the Property aggregate.
// Filterable fields are plain columns; the nested value objects are
// stored as jsonb documents.
type PropertyModel struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primary_key"`
	Title               string               `gorm:"type:varchar(200);not null"`
	Description         string               `gorm:"type:text"`
	Notes               string               `gorm:"type:text"`
	Lifecycle           listing.Lifecycle    `gorm:"type:varchar(20);not null;index"`
	PropertyType        listing.PropertyType `gorm:"type:varchar(30);not null;index"`
	Operation           listing.Operation    `gorm:"type:varchar(30);not null;index"`
	CharacteristicsJSON string               `gorm:"type:jsonb;column:characteristics"`
	EnvironmentsJSON    string               `gorm:"type:jsonb;column:environments"`
	AmenitiesJSON       string               `gorm:"type:jsonb;column:amenities"`
	LocationJSON        string               `gorm:"type:jsonb;column:location"`
	CoverImageJSON      string               `gorm:"type:jsonb;column:cover_image"`
	GalleryJSON         string               `gorm:"type:jsonb;column:gallery"`
	OwnerID             *uuid.UUID           `gorm:"type:uuid;index"`
	CreatedAt           time.Time            `gorm:"not null"`
	UpdatedAt           time.Time            `gorm:"not null"`

	PortalStatuses []PortalStatusModel `gorm:"-"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property aggregate.
func (m *PropertyModel) ToDomain() *listing.Property {
	prop := &listing.Property{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Notes:       m.Notes,
		Lifecycle:   m.Lifecycle,
		Classification: listing.Classification{
			Type:      m.PropertyType,
			Condition: m.Operation,
		},
		OwnerID:   m.OwnerID,
		Portals:   make(map[string]*listing.PortalStatus),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.CharacteristicsJSON != "" {
		_ = json.Unmarshal([]byte(m.CharacteristicsJSON), &prop.Characteristics)
	}
	if m.EnvironmentsJSON != "" {
		_ = json.Unmarshal([]byte(m.EnvironmentsJSON), &prop.Environments)
	}
	if m.AmenitiesJSON != "" {
		_ = json.Unmarshal([]byte(m.AmenitiesJSON), &prop.Amenities)
	}
	if m.LocationJSON != "" {
		_ = json.Unmarshal([]byte(m.LocationJSON), &prop.Location)
	}
	if m.CoverImageJSON != "" && m.CoverImageJSON != "null" {
		var cover listing.Image
		if err := json.Unmarshal([]byte(m.CoverImageJSON), &cover); err == nil {
			prop.CoverImage = &cover
		}
	}
	if m.GalleryJSON != "" {
		var gallery []listing.Image
		if err := json.Unmarshal([]byte(m.GalleryJSON), &gallery); err == nil {
			prop.Gallery = gallery
		}
	}

	for i := range m.PortalStatuses {
		st := m.PortalStatuses[i].ToDomain()
		prop.Portals[st.Portal] = st
	}

	return prop
}

// FromDomain populates the persistence model from a domain Property aggregate.
func (m *PropertyModel) FromDomain(p *listing.Property) {
	m.ID = p.ID
	m.Title = p.Title
	m.Description = p.Description
	m.Notes = p.Notes
	m.Lifecycle = p.Lifecycle
	m.PropertyType = p.Classification.Type
	m.Operation = p.Classification.Condition
	m.OwnerID = p.OwnerID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt

	m.CharacteristicsJSON = marshalJSON(p.Characteristics, "{}")
	m.EnvironmentsJSON = marshalJSON(p.Environments, "{}")
	m.AmenitiesJSON = marshalJSON(p.Amenities, "{}")
	m.LocationJSON = marshalJSON(p.Location, "{}")
	if p.CoverImage != nil {
		m.CoverImageJSON = marshalJSON(p.CoverImage, "null")
	} else {
		m.CoverImageJSON = "null"
	}
	if len(p.Gallery) > 0 {
		m.GalleryJSON = marshalJSON(p.Gallery, "[]")
	} else {
		m.GalleryJSON = "[]"
	}

	m.PortalStatuses = m.PortalStatuses[:0]
	for _, st := range p.Portals {
		var psm PortalStatusModel
		psm.FromDomain(p.ID, st)
		m.PortalStatuses = append(m.PortalStatuses, psm)
	}
}

// PropertyModelFromDomain creates a new persistence model from a domain Property aggregate.
func PropertyModelFromDomain(p *listing.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

func marshalJSON(v any, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(data)
}

// PortalStatusModel is the persistence model for one property's
// publication record on one portal. One row per (property, portal).
type PortalStatusModel struct {
	ID          uuid.UUID                `gorm:"type:uuid;primary_key"`
	PropertyID  uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_portal_status_property_portal,priority:1"`
	Portal      string                   `gorm:"type:varchar(30);not null;uniqueIndex:idx_portal_status_property_portal,priority:2"`
	Uploaded    bool                     `gorm:"not null;default:false"`
	ExternalID  *string                  `gorm:"type:varchar(100);index"`
	ExternalURL *string                  `gorm:"type:varchar(500)"`
	Status      listing.PublicationState `gorm:"type:varchar(20);not null;default:'not_sent'"`
	LastSyncAt  *time.Time               `gorm:""`
	LastError   *string                  `gorm:"type:text"`
	CreatedAt   time.Time                `gorm:"not null"`
	UpdatedAt   time.Time                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PortalStatusModel) TableName() string {
	return "property_portal_statuses"
}

// ToDomain converts the persistence model to a domain PortalStatus.
func (m *PortalStatusModel) ToDomain() *listing.PortalStatus {
	return &listing.PortalStatus{
		Portal:      m.Portal,
		Uploaded:    m.Uploaded,
		ExternalID:  m.ExternalID,
		ExternalURL: m.ExternalURL,
		Status:      m.Status,
		LastSyncAt:  m.LastSyncAt,
		LastError:   m.LastError,
	}
}

// FromDomain populates the persistence model from a domain PortalStatus.
// The row id is derived deterministically so repeated saves address the
// same (property, portal) row.
func (m *PortalStatusModel) FromDomain(propertyID uuid.UUID, st *listing.PortalStatus) {
	m.ID = uuid.NewSHA1(propertyID, []byte(st.Portal))
	m.PropertyID = propertyID
	m.Portal = st.Portal
	m.Uploaded = st.Uploaded
	m.ExternalID = st.ExternalID
	m.ExternalURL = st.ExternalURL
	m.Status = st.Status
	m.LastSyncAt = st.LastSyncAt
	m.LastError = st.LastError
}
