package portal

import (
	"github.com/inmobiliaria/backend/internal/domain/portal"
)

// inmoupKeepZero lists payload keys whose zero value is data, not
// absence. A property with no parking still reports cocheras 0.
var inmoupKeepZero = map[string]bool{
	"cocheras": true,
}

// mapInmoupListing builds the InmoUp payload from a publish request.
// Pure: no network, no clock, no mutation of the request.
func mapInmoupListing(cfg *InmoupConfig, req *portal.PublishRequest) *InmoupListing {
	p := req.Property

	price, _ := p.Characteristics.Price.Float64()
	expenses, _ := p.Characteristics.Expenses.Float64()

	l := &InmoupListing{
		ID:             req.ExternalID,
		Titulo:         normalizeTitle(p.Title),
		Descripcion:    normalizeDescription(p.Description),
		TipoID:         inmoupTypeID(p.Classification.Type),
		OperacionID:    inmoupOperationIDs[p.Classification.Condition],
		Precio:         price,
		MonedaID:       inmoupCurrencyID(p.Characteristics.Currency),
		Expensas:       expenses,
		SupTotal:       p.Characteristics.TotalArea,
		SupCubierta:    p.Characteristics.CoveredArea,
		Dormitorios:    p.Environments.Bedrooms,
		Banos:          p.Environments.Bathrooms,
		Toilettes:      p.Environments.Toilets,
		Cocheras:       p.Environments.Garages,
		Ambientes:      p.Environments.Rooms,
		Plantas:        p.Environments.Floors,
		Antiguedad:     p.Characteristics.Age,
		Orientacion:    p.Characteristics.Orientation,
		Servicios:      inmoupAmenityIDs(p.Amenities.Services, inmoupServiceIDs),
		AmbientesExtra: inmoupAmenityIDs(p.Amenities.Environments, inmoupEnvironmentIDs),
		ZonasCercanas:  inmoupAmenityIDs(p.Amenities.NearbyZones, inmoupZoneIDs),
	}

	loc := &InmoupLocation{
		Provincia:    p.Location.Province,
		Departamento: p.Location.Department,
		Localidad:    p.Location.Locality,
		Barrio:       p.Location.Neighborhood,
		Direccion:    p.Location.Address,
		Latitud:      p.Location.Latitude,
		Longitud:     p.Location.Longitude,
	}
	if p.Location.HideAddress {
		loc.Direccion = ""
	}
	l.Ubicacion = loc

	for i, img := range req.Images {
		l.Imagenes = append(l.Imagenes, InmoupImage{
			URL:    absoluteURL(cfg.SiteBaseURL, img.URL),
			Titulo: img.Title,
			Orden:  i + 1,
		})
	}

	return l
}

// body converts the listing to its stripped wire form
func (l *InmoupListing) body() (map[string]any, error) {
	m, err := toMap(l)
	if err != nil {
		return nil, err
	}
	return stripEmpty(m, inmoupKeepZero), nil
}
