package listing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyType classifies the physical kind of property
type PropertyType string

const (
	TypeCasa         PropertyType = "casa"
	TypeDepartamento PropertyType = "departamento"
	TypePH           PropertyType = "ph"
	TypeLocal        PropertyType = "local"
	TypeOficina      PropertyType = "oficina"
	TypeTerreno      PropertyType = "terreno"
	TypeGalpon       PropertyType = "galpon"
	TypeCampo        PropertyType = "campo"
	TypeCochera      PropertyType = "cochera"
)

// IsValid checks whether the property type is a known value
func (t PropertyType) IsValid() bool {
	switch t {
	case TypeCasa, TypeDepartamento, TypePH, TypeLocal, TypeOficina,
		TypeTerreno, TypeGalpon, TypeCampo, TypeCochera:
		return true
	}
	return false
}

func (t PropertyType) String() string {
	return string(t)
}

// Operation is the commercial condition a property is offered under
type Operation string

const (
	OperationVenta    Operation = "venta"
	OperationAlquiler Operation = "alquiler"
	OperationTemporal Operation = "alquiler_temporario"
)

// IsValid checks whether the operation is a known value
func (o Operation) IsValid() bool {
	switch o {
	case OperationVenta, OperationAlquiler, OperationTemporal:
		return true
	}
	return false
}

func (o Operation) String() string {
	return string(o)
}

// Lifecycle is the back-office lifecycle of a property record
type Lifecycle string

const (
	LifecycleDisponible Lifecycle = "disponible"
	LifecycleReservada  Lifecycle = "reservada"
	LifecycleTerminada  Lifecycle = "terminada"
)

// IsValid checks whether the lifecycle state is a known value
func (l Lifecycle) IsValid() bool {
	switch l {
	case LifecycleDisponible, LifecycleReservada, LifecycleTerminada:
		return true
	}
	return false
}

// Classification groups the type and operation of a property
type Classification struct {
	Type      PropertyType `json:"type"`
	Condition Operation    `json:"condition"`
}

// Characteristics holds the measurable attributes of a property.
// Areas are in square meters.
type Characteristics struct {
	TotalArea   float64         `json:"totalArea"`
	CoveredArea float64         `json:"coveredArea"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Expenses    decimal.Decimal `json:"expenses"`
	Age         int             `json:"age"`
	Orientation string          `json:"orientation"`
}

// Environments holds room counts. A zero garage count is meaningful
// data (the property has no parking), not an absent field.
type Environments struct {
	Bedrooms  int `json:"bedrooms"`
	Bathrooms int `json:"bathrooms"`
	Toilets   int `json:"toilets"`
	Garages   int `json:"garages"`
	Rooms     int `json:"rooms"`
	Floors    int `json:"floors"`
}

// Amenities holds the three independent multi-select sets describing
// a property beyond its room counts.
type Amenities struct {
	Services     []string `json:"services"`
	Environments []string `json:"environments"`
	NearbyZones  []string `json:"nearbyZones"`
}

// Location places the property geographically. HideAddress suppresses
// the exact street address on outbound publications.
type Location struct {
	Province     string  `json:"province"`
	Department   string  `json:"department"`
	Locality     string  `json:"locality"`
	Neighborhood string  `json:"neighborhood"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	HideAddress  bool    `json:"hideAddress"`
}

// Image is a single media entry. URL may be site-relative and is
// absolutized before publishing.
type Image struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// Property is the aggregate root of the listing context
type Property struct {
	ID              uuid.UUID              `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Notes           string                 `json:"notes"`
	Lifecycle       Lifecycle              `json:"lifecycle"`
	Classification  Classification         `json:"classification"`
	Characteristics Characteristics        `json:"caracteristics"`
	Environments    Environments           `json:"environments"`
	Amenities       Amenities              `json:"amenities"`
	Location        Location               `json:"location"`
	CoverImage      *Image                 `json:"coverImage,omitempty"`
	Gallery         []Image                `json:"gallery,omitempty"`
	OwnerID         *uuid.UUID             `json:"ownerId,omitempty"`
	Portals         map[string]*PortalStatus `json:"portals"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// NewProperty creates a property in the disponible lifecycle with
// empty portal state
func NewProperty(title string, classification Classification) (*Property, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if !classification.Type.IsValid() {
		return nil, ErrInvalidPropertyType
	}
	if !classification.Condition.IsValid() {
		return nil, ErrInvalidOperation
	}
	now := time.Now()
	return &Property{
		ID:             uuid.New(),
		Title:          title,
		Lifecycle:      LifecycleDisponible,
		Classification: classification,
		Portals:        make(map[string]*PortalStatus),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// PortalState returns the status record for the given portal,
// creating an empty not_sent record on first access
func (p *Property) PortalState(portal string) *PortalStatus {
	if p.Portals == nil {
		p.Portals = make(map[string]*PortalStatus)
	}
	st, ok := p.Portals[portal]
	if !ok {
		st = NewPortalStatus(portal)
		p.Portals[portal] = st
	}
	return st
}

// Images returns the cover image followed by the gallery in order
func (p *Property) Images() []Image {
	imgs := make([]Image, 0, len(p.Gallery)+1)
	if p.CoverImage != nil && p.CoverImage.URL != "" {
		imgs = append(imgs, *p.CoverImage)
	}
	imgs = append(imgs, p.Gallery...)
	return imgs
}

// MarkStale flips every portal currently published (ok) to
// desactualizado. External references are kept so the stale listing
// can still be synced or removed remotely.
func (p *Property) MarkStale() []string {
	var flipped []string
	for name, st := range p.Portals {
		if st.Status == StatusOK {
			st.Status = StatusStale
			flipped = append(flipped, name)
		}
	}
	return flipped
}

// Terminate moves the property to the terminada lifecycle. Terminada
// is terminal.
func (p *Property) Terminate() {
	p.Lifecycle = LifecycleTerminada
}

// SetLifecycle validates and applies a lifecycle change
func (p *Property) SetLifecycle(l Lifecycle) error {
	if !l.IsValid() {
		return ErrInvalidLifecycle
	}
	if p.Lifecycle == LifecycleTerminada && l != LifecycleTerminada {
		return ErrPropertyTerminated
	}
	p.Lifecycle = l
	return nil
}
