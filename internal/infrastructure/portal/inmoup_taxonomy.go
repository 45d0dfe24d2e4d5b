package portal

import (
	"sort"

	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// InmoUp code tables. These mirror the portal's published catalogs
// and never change at runtime.

// inmoupFallbackTypeID is used when the property type has no entry.
const inmoupFallbackTypeID = 1

var inmoupTypeIDs = map[listing.PropertyType]int{
	listing.TypeCasa:         1,
	listing.TypeDepartamento: 2,
	listing.TypePH:           3,
	listing.TypeLocal:        4,
	listing.TypeOficina:      5,
	listing.TypeTerreno:      6,
	listing.TypeGalpon:       7,
	listing.TypeCampo:        8,
	listing.TypeCochera:      9,
}

var inmoupOperationIDs = map[listing.Operation]int{
	listing.OperationVenta:    1,
	listing.OperationAlquiler: 2,
	listing.OperationTemporal: 3,
}

var inmoupCurrencyIDs = map[string]int{
	"ars": 1,
	"usd": 2,
}

// inmoupRemovedStateID is the remote state meaning the listing was
// taken down. Removal on InmoUp is a state transition, never a hard
// delete.
const (
	inmoupPublishedStateID = 1
	inmoupRemovedStateID   = 3
)

// Amenity ids. Three independent catalogs: services, environments and
// nearby zones. Unknown amenity strings are silently skipped.
var inmoupServiceIDs = map[string]int{
	"luz":          1,
	"agua":         2,
	"gas":          3,
	"cloacas":      4,
	"telefono":     5,
	"internet":     6,
	"cable":        7,
	"pavimento":    8,
	"alumbrado":    9,
	"riego":        10,
}

var inmoupEnvironmentIDs = map[string]int{
	"cocina":         1,
	"comedor":        2,
	"living":         3,
	"lavadero":       4,
	"balcon":         5,
	"terraza":        6,
	"patio":          7,
	"jardin":         8,
	"pileta":         9,
	"quincho":        10,
	"parrilla":       11,
	"baulera":        12,
	"vestidor":       13,
	"escritorio":     14,
	"dependencias":   15,
	"salon_comercial": 16,
}

var inmoupZoneIDs = map[string]int{
	"centro":          1,
	"escuelas":        2,
	"hospitales":      3,
	"supermercados":   4,
	"plazas":          5,
	"transporte":      6,
	"universidades":   7,
	"shopping":        8,
	"terminal":        9,
	"costanera":       10,
}

// inmoupTypeID resolves a property type to its portal code, falling
// back to the generic house code for unknown types.
func inmoupTypeID(t listing.PropertyType) int {
	if id, ok := inmoupTypeIDs[t]; ok {
		return id
	}
	return inmoupFallbackTypeID
}

// inmoupCurrencyID resolves a currency, defaulting to pesos
func inmoupCurrencyID(currency string) int {
	if id, ok := inmoupCurrencyIDs[currency]; ok {
		return id
	}
	return inmoupCurrencyIDs["ars"]
}

// inmoupAmenityIDs maps amenity strings through a catalog, keeping
// the portal's ascending id order stable for tests and diffs.
func inmoupAmenityIDs(values []string, catalog map[string]int) []int {
	var ids []int
	for _, v := range values {
		if id, ok := catalog[v]; ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
