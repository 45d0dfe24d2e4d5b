package portal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
)

func testMeliConfig() *MeliConfig {
	cfg := NewMeliConfig("client-id", "client-secret", "APP_USR-token", "", "https://inmobiliaria.example.com")
	return cfg
}

func attributeValue(attrs []MeliAttribute, id string) (string, bool) {
	for _, a := range attrs {
		if a.ID == id {
			return a.ValueName, true
		}
	}
	return "", false
}

func TestMapMeliItem_CasaEnVenta(t *testing.T) {
	p, err := listing.NewProperty("Casa 3 dormitorios con cochera", listing.Classification{
		Type:      listing.TypeCasa,
		Condition: listing.OperationVenta,
	})
	require.NoError(t, err)
	p.Characteristics = listing.Characteristics{
		TotalArea:   120,
		CoveredArea: 90,
		Price:       decimal.NewFromInt(150000),
		Currency:    "usd",
	}
	p.Environments = listing.Environments{Bedrooms: 3, Bathrooms: 2, Garages: 0}
	p.Gallery = []listing.Image{{URL: "/media/frente.jpg"}}

	item := mapMeliItem(testMeliConfig(), &portal.PublishRequest{
		Property: p,
		Images:   p.Images(),
	})

	assert.Equal(t, "MLA401686", item.CategoryID)
	assert.Equal(t, "USD", item.CurrencyID)
	assert.Equal(t, float64(150000), item.Price)
	assert.Equal(t, "sale", item.Operation)

	total, ok := attributeValue(item.Attributes, "TOTAL_AREA")
	require.True(t, ok)
	assert.Equal(t, "120 m²", total)

	covered, ok := attributeValue(item.Attributes, "COVERED_AREA")
	require.True(t, ok)
	assert.Equal(t, "90 m²", covered)

	bedrooms, ok := attributeValue(item.Attributes, "BEDROOMS")
	require.True(t, ok)
	assert.Equal(t, "3", bedrooms)

	bathrooms, ok := attributeValue(item.Attributes, "FULL_BATHROOMS")
	require.True(t, ok)
	assert.Equal(t, "2", bathrooms)

	// Zero parking is data, not absence.
	parking, ok := attributeValue(item.Attributes, "PARKING_LOTS")
	require.True(t, ok)
	assert.Equal(t, "0", parking)

	assert.Empty(t, validateMeliItem(item))

	// Media URLs are absolutized against the site base URL.
	require.Len(t, item.Pictures, 1)
	assert.Equal(t, "https://inmobiliaria.example.com/media/frente.jpg", item.Pictures[0].Source)
}

func TestMapMeliItem_CategoryFallback(t *testing.T) {
	p, err := listing.NewProperty("Galpón en alquiler temporario", listing.Classification{
		Type:      listing.TypeGalpon,
		Condition: listing.OperationTemporal,
	})
	require.NoError(t, err)

	item := mapMeliItem(testMeliConfig(), &portal.PublishRequest{Property: p})

	// Galpones have no temporary-rent category; the generic fallback
	// applies.
	assert.Equal(t, meliFallbackCategory, item.CategoryID)
}

func TestMapMeliItem_CurrencyDefaultsToPesos(t *testing.T) {
	p, err := listing.NewProperty("Depto céntrico", listing.Classification{
		Type:      listing.TypeDepartamento,
		Condition: listing.OperationAlquiler,
	})
	require.NoError(t, err)
	p.Characteristics.Price = decimal.NewFromInt(250000)

	item := mapMeliItem(testMeliConfig(), &portal.PublishRequest{Property: p})
	assert.Equal(t, "ARS", item.CurrencyID)
}

func TestMapMeliAmenities_ExplicitNoVersusOmission(t *testing.T) {
	p, err := listing.NewProperty("Casa con pileta", listing.Classification{
		Type:      listing.TypeCasa,
		Condition: listing.OperationVenta,
	})
	require.NoError(t, err)
	p.Amenities = listing.Amenities{
		Services:     []string{"gas"},
		Environments: []string{"patio"},
	}

	attrs := mapMeliAttributes(p)

	gas, ok := attributeValue(attrs, "HAS_NATURAL_GAS")
	require.True(t, ok)
	assert.Equal(t, "Sí", gas)

	// Absent service with EmitNegative publishes an explicit "No".
	electricity, ok := attributeValue(attrs, "HAS_ELECTRICITY")
	require.True(t, ok)
	assert.Equal(t, "No", electricity)
	pool, ok := attributeValue(attrs, "HAS_SWIMMING_POOL")
	require.True(t, ok)
	assert.Equal(t, "No", pool)

	// Absent amenity without EmitNegative is omitted entirely.
	_, ok = attributeValue(attrs, "HAS_SEWAGE")
	assert.False(t, ok)
	_, ok = attributeValue(attrs, "HAS_BALCONY")
	assert.False(t, ok)

	patio, ok := attributeValue(attrs, "HAS_PATIO")
	require.True(t, ok)
	assert.Equal(t, "Sí", patio)
}

func TestMapMeliItem_HideAddress(t *testing.T) {
	p, err := listing.NewProperty("Casa reservada", listing.Classification{
		Type:      listing.TypeCasa,
		Condition: listing.OperationVenta,
	})
	require.NoError(t, err)
	p.Location = listing.Location{
		Province:    "Mendoza",
		Locality:    "Godoy Cruz",
		Address:     "San Martín 1234",
		HideAddress: true,
	}

	item := mapMeliItem(testMeliConfig(), &portal.PublishRequest{Property: p})
	assert.Empty(t, item.Location.AddressLine)
	assert.Equal(t, "Godoy Cruz", item.Location.City)
}

func TestMapMeliItemUpdate_StripsImmutableFields(t *testing.T) {
	p, err := listing.NewProperty("Casa para editar", listing.Classification{
		Type:      listing.TypeCasa,
		Condition: listing.OperationVenta,
	})
	require.NoError(t, err)
	p.Characteristics.Price = decimal.NewFromInt(99000)

	upd := mapMeliItemUpdate(testMeliConfig(), &portal.PublishRequest{Property: p, ExternalID: "MLA123"})
	body, err := upd.body()
	require.NoError(t, err)

	assert.NotContains(t, body, "category_id")
	assert.NotContains(t, body, "currency_id")
	assert.NotContains(t, body, "listing_type_id")
	assert.Equal(t, float64(99000), body["price"])
}

func TestValidateMeliItem_AccumulatesAllViolations(t *testing.T) {
	item := &MeliItem{
		Title: "Un título absurdamente largo que claramente excede el límite de sesenta caracteres permitidos",
		Price: 0,
	}

	violations := validateMeliItem(item)

	assert.Len(t, violations, 4+len(meliRequiredAttributes))
	assert.Contains(t, violations, "price must be greater than zero")
	assert.Contains(t, violations, "at least one picture is required")
	assert.Contains(t, violations, "category_id is required")
	assert.Contains(t, violations, "required attribute TOTAL_AREA is missing")
	assert.Contains(t, violations, "required attribute PARKING_LOTS is missing")
}
