// Package geocode resolves free-text queries to classified places using
// the Booking.com locations endpoint, which returns a dest_type along
// with coordinates.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

const bookingHost = "booking-com.p.rapidapi.com"

type Booking struct {
	c    *rapidapi.Client
	base string
}

func New(c *rapidapi.Client, base string) *Booking {
	if base == "" {
		base = "https://" + bookingHost
	}
	return &Booking{c: c, base: base}
}

func (g *Booking) Geocode(ctx context.Context, query string) (domain.Place, error) {
	u := g.base + "/v1/hotels/locations?" + url.Values{"name": {query}, "locale": {"en-gb"}}.Encode()

	var locs []map[string]any
	if err := g.c.GetJSON(ctx, u, bookingHost, &locs); err != nil {
		if errors.Is(err, rapidapi.ErrNotFound) {
			return domain.Place{}, domain.ErrLocationNotFound
		}
		return domain.Place{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(locs) == 0 {
		return domain.Place{}, domain.ErrLocationNotFound
	}

	first := locs[0]
	place := domain.Place{Type: placeType(str(first["dest_type"]))}
	if place.Name = str(first["name"]); place.Name == "" {
		place.Name = str(first["label"])
	}
	if lat, okLat := num(first["latitude"]); okLat {
		if lon, okLon := num(first["longitude"]); okLon {
			place.Coords = &domain.Coords{Lat: lat, Lon: lon}
		}
	}
	return place, nil
}

// placeType maps Booking dest_type values onto the classifier's enum.
func placeType(destType string) domain.PlaceType {
	switch destType {
	case "city":
		return domain.PlaceCity
	case "region", "country":
		return domain.PlaceRegion
	case "district":
		return domain.PlaceDistrict
	case "landmark", "airport":
		return domain.PlaceLocality
	case "hotel":
		return domain.PlaceHotel
	default:
		return domain.PlaceUnknown
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
