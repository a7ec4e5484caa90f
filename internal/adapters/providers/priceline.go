package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

const pricelineHost = "priceline-com-provider.p.rapidapi.com"

// Priceline adapts the priceline-com-provider proxy. Star ratings are
// 0-5 and doubled to the canonical scale. Coordinates are extracted
// when a listing carries them; rows without them dedup on the
// name+address key.
type Priceline struct {
	c    *rapidapi.Client
	base string
}

func NewPriceline(c *rapidapi.Client, base string) *Priceline {
	if base == "" {
		base = "https://" + pricelineHost
	}
	return &Priceline{c: c, base: base}
}

func (p *Priceline) Name() domain.ProviderName { return domain.ProviderPriceline }

func (p *Priceline) Fetch(ctx context.Context, q domain.SearchQuery) ([]domain.Candidate, error) {
	locID, err := p.locationID(ctx, q.Place.Name)
	if err != nil {
		return nil, err
	}

	u := p.base + "/v1/hotels/search?" + url.Values{
		"sort_order":    {"HDR"},
		"location_id":   {locID},
		"date_checkin":  {q.CheckIn},
		"date_checkout": {q.CheckOut},
		"adults_number": {fmt.Sprint(q.Adults)},
		"rooms_number":  {"1"},
	}.Encode()

	var raw map[string]any
	if err := p.c.GetJSON(ctx, u, pricelineHost, &raw); err != nil {
		return nil, fmt.Errorf("priceline search: %w", err)
	}

	rows, _ := raw["hotels"].([]any)
	cands := make([]domain.Candidate, 0, len(rows))
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		name := firstStr(m, "name")
		if name == "" {
			continue
		}
		cand := domain.Candidate{
			SourceID:    anyToString(m["hotelId"]),
			Name:        name,
			Address:     firstStr(m, "address", "address.addressLine1", "location.address.addressLine1"),
			ReviewCount: getInt(m, "guestReviews.total", "totalReviewCount"),
			ImageURL:    firstStr(m, "thumbnailUrl"),
			Provider:    domain.ProviderPriceline,
		}
		if rating, ok := getFloat(m, "starRating"); ok {
			cand.ReviewScore = rating * 2 // 0-5 -> 0-10
		}
		if lat, okLat := getFloat(m, "latitude", "location.latitude"); okLat {
			if lon, okLon := getFloat(m, "longitude", "location.longitude"); okLon {
				cand.Coords = &domain.Coords{Lat: lat, Lon: lon}
			}
		}
		if amount, ok := getFloat(m, "ratePlan.price.exactCurrent"); ok {
			cand.Price = &domain.Price{Amount: amount, Currency: "USD", URL: lookupStr(m, "deeplink")}
		}
		cands = append(cands, cand)
	}
	return topByReviews(cands, maxPerProvider), nil
}

func (p *Priceline) locationID(ctx context.Context, place string) (string, error) {
	u := p.base + "/v1/hotels/locations?" + url.Values{"name": {place}, "search_type": {"CITY"}}.Encode()
	var locs []map[string]any
	if err := p.c.GetJSON(ctx, u, pricelineHost, &locs); err != nil {
		return "", fmt.Errorf("priceline locations: %w", err)
	}
	for _, m := range locs {
		if id := anyToString(m["id"]); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("priceline: no location for %q", place)
}
