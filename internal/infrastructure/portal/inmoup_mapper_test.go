package portal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
)

func testInmoupConfig() *InmoupConfig {
	return NewInmoupConfig("https://api.inmoup.com.ar", "test-key", "https://inmobiliaria.example.com")
}

func testInmoupProperty(t *testing.T) *listing.Property {
	t.Helper()
	p, err := listing.NewProperty("Casa 3 dormitorios zona este", listing.Classification{
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
	p.Gallery = []listing.Image{{URL: "/media/frente.jpg", Title: "Frente"}}
	return p
}

func TestMapInmoupListing(t *testing.T) {
	p := testInmoupProperty(t)
	p.Amenities = listing.Amenities{
		Services:     []string{"gas", "luz", "desconocido"},
		Environments: []string{"patio", "cocina"},
		NearbyZones:  []string{"escuelas"},
	}

	l := mapInmoupListing(testInmoupConfig(), &portal.PublishRequest{
		Property: p,
		Images:   p.Images(),
	})

	assert.Equal(t, inmoupTypeIDs[listing.TypeCasa], l.TipoID)
	assert.Equal(t, inmoupOperationIDs[listing.OperationVenta], l.OperacionID)
	assert.Equal(t, float64(150000), l.Precio)
	assert.Equal(t, inmoupCurrencyIDs["usd"], l.MonedaID)
	assert.Equal(t, 3, l.Dormitorios)
	assert.Equal(t, 0, l.Cocheras)

	// Unknown amenity strings are skipped; known ones map to sorted ids.
	assert.Equal(t, []int{inmoupServiceIDs["luz"], inmoupServiceIDs["gas"]}, l.Servicios)
	assert.Equal(t, []int{inmoupEnvironmentIDs["cocina"], inmoupEnvironmentIDs["patio"]}, l.AmbientesExtra)
	assert.Equal(t, []int{inmoupZoneIDs["escuelas"]}, l.ZonasCercanas)

	require.Len(t, l.Imagenes, 1)
	assert.Equal(t, "https://inmobiliaria.example.com/media/frente.jpg", l.Imagenes[0].URL)
	assert.Equal(t, 1, l.Imagenes[0].Orden)
}

func TestMapInmoupListing_BodyKeepsZeroGarages(t *testing.T) {
	p := testInmoupProperty(t)
	l := mapInmoupListing(testInmoupConfig(), &portal.PublishRequest{Property: p, Images: p.Images()})

	body, err := l.body()
	require.NoError(t, err)

	// Zero garages survive stripping; other zero counts do not.
	assert.Contains(t, body, "cocheras")
	assert.Equal(t, float64(0), body["cocheras"])
	assert.NotContains(t, body, "toilettes")
	assert.NotContains(t, body, "antiguedad")
	assert.NotContains(t, body, "expensas")
}

func TestMapInmoupListing_UnknownTypeFallsBack(t *testing.T) {
	p := testInmoupProperty(t)
	p.Classification.Type = "castillo"

	l := mapInmoupListing(testInmoupConfig(), &portal.PublishRequest{Property: p})
	assert.Equal(t, inmoupFallbackTypeID, l.TipoID)
}

func TestMapInmoupListing_HideAddress(t *testing.T) {
	p := testInmoupProperty(t)
	p.Location = listing.Location{Province: "Mendoza", Address: "Belgrano 742", HideAddress: true}

	l := mapInmoupListing(testInmoupConfig(), &portal.PublishRequest{Property: p})
	assert.Empty(t, l.Ubicacion.Direccion)
	assert.Equal(t, "Mendoza", l.Ubicacion.Provincia)
}

func TestValidateInmoupListing(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*InmoupListing)
		violations int
	}{
		{
			name:       "valid listing",
			mutate:     func(l *InmoupListing) {},
			violations: 0,
		},
		{
			name: "missing title and price",
			mutate: func(l *InmoupListing) {
				l.Titulo = ""
				l.Precio = 0
			},
			violations: 2,
		},
		{
			name: "title too long",
			mutate: func(l *InmoupListing) {
				l.Titulo = "Casa excepcional con vista a la montaña, piscina climatizada y parque"
			},
			violations: 1,
		},
		{
			name: "no images",
			mutate: func(l *InmoupListing) {
				l.Imagenes = nil
			},
			violations: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testInmoupProperty(t)
			l := mapInmoupListing(testInmoupConfig(), &portal.PublishRequest{Property: p, Images: p.Images()})
			tt.mutate(l)
			assert.Len(t, validateInmoupListing(l), tt.violations)
		})
	}
}
