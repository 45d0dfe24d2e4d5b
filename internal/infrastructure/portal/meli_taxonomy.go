package portal

import (
	"fmt"

	"github.com/inmobiliaria/backend/internal/domain/listing"
)

// Mercado Libre attribute taxonomy. Attribute ids and category codes
// come from the site's published real-estate catalogs for MLA and are
// immutable at runtime.

// meliFallbackCategory is used when the property type has no entry in
// the category table.
const meliFallbackCategory = "MLA1459" // Inmuebles, generic

// meliCategories resolves property type, then operation, to the
// category the item is listed under.
var meliCategories = map[listing.PropertyType]map[listing.Operation]string{
	listing.TypeCasa: {
		listing.OperationVenta:    "MLA401686",
		listing.OperationAlquiler: "MLA401685",
		listing.OperationTemporal: "MLA401684",
	},
	listing.TypeDepartamento: {
		listing.OperationVenta:    "MLA401806",
		listing.OperationAlquiler: "MLA401805",
		listing.OperationTemporal: "MLA401804",
	},
	listing.TypePH: {
		listing.OperationVenta:    "MLA105179",
		listing.OperationAlquiler: "MLA105178",
		listing.OperationTemporal: "MLA105177",
	},
	listing.TypeLocal: {
		listing.OperationVenta:    "MLA79830",
		listing.OperationAlquiler: "MLA79829",
	},
	listing.TypeOficina: {
		listing.OperationVenta:    "MLA79832",
		listing.OperationAlquiler: "MLA79831",
	},
	listing.TypeTerreno: {
		listing.OperationVenta:    "MLA401810",
		listing.OperationAlquiler: "MLA401809",
	},
	listing.TypeGalpon: {
		listing.OperationVenta:    "MLA79834",
		listing.OperationAlquiler: "MLA79833",
	},
	listing.TypeCampo: {
		listing.OperationVenta:    "MLA79836",
		listing.OperationAlquiler: "MLA79835",
	},
	listing.TypeCochera: {
		listing.OperationVenta:    "MLA79838",
		listing.OperationAlquiler: "MLA79837",
	},
}

// meliCategoryFor resolves the two-level category lookup with the
// hard-coded fallback for unknown combinations.
func meliCategoryFor(t listing.PropertyType, op listing.Operation) string {
	byOp, ok := meliCategories[t]
	if !ok {
		return meliFallbackCategory
	}
	cat, ok := byOp[op]
	if !ok {
		return meliFallbackCategory
	}
	return cat
}

// Measured attribute ids.
const (
	meliAttrTotalArea     = "TOTAL_AREA"
	meliAttrCoveredArea   = "COVERED_AREA"
	meliAttrBedrooms      = "BEDROOMS"
	meliAttrFullBathrooms = "FULL_BATHROOMS"
	meliAttrParkingLots   = "PARKING_LOTS"
	meliAttrRooms         = "ROOMS"
	meliAttrFloors        = "FLOORS"
	meliAttrPropertyAge   = "PROPERTY_AGE"
	meliAttrItemCondition = "ITEM_CONDITION"
)

// meliRequiredAttributes must be present on every listing.
var meliRequiredAttributes = []string{
	meliAttrTotalArea,
	meliAttrCoveredArea,
	meliAttrBedrooms,
	meliAttrFullBathrooms,
	meliAttrParkingLots,
}

// meliBoolAttribute maps one internal amenity string to a boolean
// taxonomy attribute. EmitNegative controls the absent case: some
// attributes publish an explicit "No", others are simply omitted.
// That per-attribute behavior mirrors the site's catalog and must not
// be normalized.
type meliBoolAttribute struct {
	ID           string
	EmitNegative bool
}

var meliServiceAttributes = map[string]meliBoolAttribute{
	"luz":       {ID: "HAS_ELECTRICITY", EmitNegative: true},
	"agua":      {ID: "HAS_TAP_WATER", EmitNegative: true},
	"gas":       {ID: "HAS_NATURAL_GAS", EmitNegative: true},
	"cloacas":   {ID: "HAS_SEWAGE", EmitNegative: false},
	"telefono":  {ID: "HAS_TELEPHONE_LINE", EmitNegative: false},
	"internet":  {ID: "HAS_INTERNET_ACCESS", EmitNegative: false},
	"cable":     {ID: "HAS_CABLE_TV", EmitNegative: false},
	"pavimento": {ID: "HAS_PAVED_STREET", EmitNegative: false},
}

var meliEnvironmentAttributes = map[string]meliBoolAttribute{
	"cocina":     {ID: "HAS_KITCHEN", EmitNegative: false},
	"comedor":    {ID: "HAS_DINNING_ROOM", EmitNegative: false},
	"living":     {ID: "HAS_LIVING_ROOM", EmitNegative: false},
	"lavadero":   {ID: "HAS_LAUNDRY_ROOM", EmitNegative: false},
	"balcon":     {ID: "HAS_BALCONY", EmitNegative: false},
	"terraza":    {ID: "HAS_TERRACE", EmitNegative: false},
	"patio":      {ID: "HAS_PATIO", EmitNegative: false},
	"jardin":     {ID: "HAS_GARDEN", EmitNegative: false},
	"pileta":     {ID: "HAS_SWIMMING_POOL", EmitNegative: true},
	"quincho":    {ID: "HAS_BARBECUE_AREA", EmitNegative: false},
	"parrilla":   {ID: "HAS_GRILL", EmitNegative: false},
	"baulera":    {ID: "HAS_STORAGE_ROOM", EmitNegative: false},
	"vestidor":   {ID: "HAS_DRESSING_ROOM", EmitNegative: false},
	"escritorio": {ID: "HAS_STUDY", EmitNegative: false},
}

var meliZoneAttributes = map[string]meliBoolAttribute{
	"centro":        {ID: "NEAR_DOWNTOWN"},
	"escuelas":      {ID: "NEAR_SCHOOLS"},
	"hospitales":    {ID: "NEAR_HOSPITALS"},
	"supermercados": {ID: "NEAR_GROCERY_STORES"},
	"plazas":        {ID: "NEAR_GREEN_AREAS"},
	"transporte":    {ID: "NEAR_PUBLIC_TRANSPORT"},
	"universidades": {ID: "NEAR_UNIVERSITIES"},
	"shopping":      {ID: "NEAR_SHOPPING_CENTERS"},
	"costanera":     {ID: "NEAR_THE_COAST"},
}

// squareMeters formats an area attribute value
func squareMeters(v float64) string {
	return fmt.Sprintf("%g m²", v)
}
