package portal

import (
	"sort"
	"strconv"

	"github.com/inmobiliaria/backend/internal/domain/listing"
	"github.com/inmobiliaria/backend/internal/domain/portal"
)

// meliCurrencies maps internal currency codes to site currency ids.
// Unset currencies default to pesos.
var meliCurrencies = map[string]string{
	"ars": "ARS",
	"usd": "USD",
}

// meliKeepZero protects attribute zeros that carry meaning. A listing
// with no parking still publishes PARKING_LOTS 0.
var meliKeepZero = map[string]bool{
	"value_name": true,
}

func meliCurrencyID(currency string) string {
	if id, ok := meliCurrencies[currency]; ok {
		return id
	}
	return "ARS"
}

func meliOperation(op listing.Operation) string {
	switch op {
	case listing.OperationVenta:
		return "sale"
	case listing.OperationAlquiler:
		return "rent"
	case listing.OperationTemporal:
		return "temporary_rent"
	default:
		return ""
	}
}

// mapMeliAttributes builds the taxonomy attribute list. Measured
// attributes are emitted when set, except PARKING_LOTS which is
// always emitted: a zero there means "no parking", not "unknown".
func mapMeliAttributes(p *listing.Property) []MeliAttribute {
	attrs := []MeliAttribute{
		{ID: meliAttrItemCondition, ValueName: "Usado"},
	}
	if v := p.Characteristics.TotalArea; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrTotalArea, ValueName: squareMeters(v)})
	}
	if v := p.Characteristics.CoveredArea; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrCoveredArea, ValueName: squareMeters(v)})
	}
	if v := p.Environments.Bedrooms; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrBedrooms, ValueName: strconv.Itoa(v)})
	}
	if v := p.Environments.Bathrooms; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrFullBathrooms, ValueName: strconv.Itoa(v)})
	}
	attrs = append(attrs, MeliAttribute{ID: meliAttrParkingLots, ValueName: strconv.Itoa(p.Environments.Garages)})
	if v := p.Environments.Rooms; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrRooms, ValueName: strconv.Itoa(v)})
	}
	if v := p.Environments.Floors; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrFloors, ValueName: strconv.Itoa(v)})
	}
	if v := p.Characteristics.Age; v > 0 {
		attrs = append(attrs, MeliAttribute{ID: meliAttrPropertyAge, ValueName: strconv.Itoa(v) + " años"})
	}

	attrs = append(attrs, mapMeliAmenities(p.Amenities.Services, meliServiceAttributes)...)
	attrs = append(attrs, mapMeliAmenities(p.Amenities.Environments, meliEnvironmentAttributes)...)
	attrs = append(attrs, mapMeliAmenities(p.Amenities.NearbyZones, meliZoneAttributes)...)
	return attrs
}

// mapMeliAmenities maps one amenity set through its catalog. Present
// amenities publish "Sí". Absent ones publish an explicit "No" only
// when the catalog entry says so; otherwise the attribute is omitted.
func mapMeliAmenities(selected []string, catalog map[string]meliBoolAttribute) []MeliAttribute {
	present := make(map[string]bool, len(selected))
	for _, s := range selected {
		present[s] = true
	}

	var attrs []MeliAttribute
	seen := make(map[string]bool)
	for key, def := range catalog {
		if seen[def.ID] {
			continue
		}
		switch {
		case present[key]:
			attrs = append(attrs, MeliAttribute{ID: def.ID, ValueName: "Sí"})
			seen[def.ID] = true
		case def.EmitNegative:
			attrs = append(attrs, MeliAttribute{ID: def.ID, ValueName: "No"})
			seen[def.ID] = true
		}
	}
	sortMeliAttributes(attrs)
	return attrs
}

func sortMeliAttributes(attrs []MeliAttribute) {
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].ID < attrs[j].ID })
}

// mapMeliItem builds the create payload. Pure: no network, no clock.
func mapMeliItem(cfg *MeliConfig, req *portal.PublishRequest) *MeliItem {
	p := req.Property
	price, _ := p.Characteristics.Price.Float64()

	item := &MeliItem{
		Title:       normalizeTitle(p.Title),
		CategoryID:  meliCategoryFor(p.Classification.Type, p.Classification.Condition),
		Price:       price,
		CurrencyID:  meliCurrencyID(p.Characteristics.Currency),
		ListingType: "gold_premium",
		Operation:   meliOperation(p.Classification.Condition),
		Description: &MeliText{PlainText: normalizeDescription(p.Description)},
		Attributes:  mapMeliAttributes(p),
	}

	for _, img := range req.Images {
		item.Pictures = append(item.Pictures, MeliPicture{Source: absoluteURL(cfg.SiteBaseURL, img.URL)})
	}

	loc := &MeliLocation{
		AddressLine:  p.Location.Address,
		Neighborhood: p.Location.Neighborhood,
		City:         p.Location.Locality,
		State:        p.Location.Province,
		Country:      "Argentina",
		Latitude:     p.Location.Latitude,
		Longitude:    p.Location.Longitude,
	}
	if p.Location.HideAddress {
		loc.AddressLine = ""
	}
	item.Location = loc

	return item
}

// mapMeliItemUpdate builds the edit payload for an existing listing.
// Category, currency and listing type are immutable on the site and
// are never sent on update.
func mapMeliItemUpdate(cfg *MeliConfig, req *portal.PublishRequest) *MeliItemUpdate {
	p := req.Property
	price, _ := p.Characteristics.Price.Float64()

	upd := &MeliItemUpdate{
		Title:      normalizeTitle(p.Title),
		Price:      price,
		Attributes: mapMeliAttributes(p),
	}
	for _, img := range req.Images {
		upd.Pictures = append(upd.Pictures, MeliPicture{Source: absoluteURL(cfg.SiteBaseURL, img.URL)})
	}
	return upd
}

// body converts the item to its stripped wire form
func (i *MeliItem) body() (map[string]any, error) {
	m, err := toMap(i)
	if err != nil {
		return nil, err
	}
	return stripEmpty(m, meliKeepZero), nil
}

// body converts the update to its stripped wire form
func (u *MeliItemUpdate) body() (map[string]any, error) {
	m, err := toMap(u)
	if err != nil {
		return nil, err
	}
	return stripEmpty(m, meliKeepZero), nil
}
