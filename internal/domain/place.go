package domain

// PlaceType is the geocoder's classification of a free-text query.
type PlaceType string

const (
	PlaceCity     PlaceType = "city"
	PlaceRegion   PlaceType = "region"
	PlaceDistrict PlaceType = "district"
	PlaceLocality PlaceType = "locality"
	PlaceHotel    PlaceType = "hotel"
	PlaceUnknown  PlaceType = "unknown"
)

// IsArea reports whether the type calls for a many-hotel search rather
// than a single-hotel lookup.
func (t PlaceType) IsArea() bool {
	switch t {
	case PlaceCity, PlaceRegion, PlaceDistrict, PlaceLocality:
		return true
	}
	return false
}

type Place struct {
	Type   PlaceType
	Name   string
	Coords *Coords
}
