package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

const expediaHost = "hotels-com-provider.p.rapidapi.com"

// Expedia adapts the hotels-com-provider proxy (Expedia group
// inventory). Two-step: resolve the place to a region id, then search
// it. Review scores are already 0-10.
type Expedia struct {
	c    *rapidapi.Client
	base string
}

func NewExpedia(c *rapidapi.Client, base string) *Expedia {
	if base == "" {
		base = "https://" + expediaHost
	}
	return &Expedia{c: c, base: base}
}

func (p *Expedia) Name() domain.ProviderName { return domain.ProviderExpedia }

func (p *Expedia) Fetch(ctx context.Context, q domain.SearchQuery) ([]domain.Candidate, error) {
	regionID, err := p.regionID(ctx, q.Place.Name)
	if err != nil {
		return nil, err
	}

	u := p.base + "/v2/hotels/search?" + url.Values{
		"domain":          {"US"},
		"locale":          {"en_US"},
		"region_id":       {regionID},
		"checkin_date":    {q.CheckIn},
		"checkout_date":   {q.CheckOut},
		"adults_number":   {fmt.Sprint(q.Adults)},
		"children_number": {"0"},
		"rooms_number":    {"1"},
		"sort_order":      {"REVIEW"},
		"currency":        {"USD"},
		"page_number":     {"1"},
	}.Encode()

	var raw map[string]any
	if err := p.c.GetJSON(ctx, u, expediaHost, &raw); err != nil {
		return nil, fmt.Errorf("expedia search: %w", err)
	}

	rows, _ := raw["properties"].([]any)
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
		id := anyToString(m["id"])
		cand := domain.Candidate{
			SourceID:    id,
			Name:        name,
			Address:     joinNonEmpty(lookupStr(m, "address.line1"), lookupStr(m, "address.city")),
			ReviewCount: getInt(m, "reviews.total"),
			ReviewText:  firstStr(m, "reviews.scoreDescription"),
			ImageURL:    firstStr(m, "propertyImage.image.url"),
			Provider:    domain.ProviderExpedia,
		}
		if score, ok := getFloat(m, "reviews.score"); ok {
			cand.ReviewScore = score
		}
		if lat, okLat := getFloat(m, "mapMarker.latLong.latitude"); okLat {
			if lon, okLon := getFloat(m, "mapMarker.latLong.longitude"); okLon {
				cand.Coords = &domain.Coords{Lat: lat, Lon: lon}
			}
		}
		if amount, ok := getFloat(m, "price.lead.amount"); ok {
			cur := firstStr(m, "price.lead.currencyInfo.code")
			if cur == "" {
				cur = "USD"
			}
			cand.Price = &domain.Price{
				Amount:   amount,
				Currency: cur,
				URL:      fmt.Sprintf("https://hotels.com/ho%s", id),
			}
		}
		cands = append(cands, cand)
	}
	return topByReviews(cands, maxPerProvider), nil
}

func (p *Expedia) regionID(ctx context.Context, place string) (string, error) {
	u := p.base + "/v2/regions?" + url.Values{"query": {place}, "locale": {"en_US"}, "domain": {"US"}}.Encode()
	var raw map[string]any
	if err := p.c.GetJSON(ctx, u, expediaHost, &raw); err != nil {
		return "", fmt.Errorf("expedia regions: %w", err)
	}
	rows, _ := raw["data"].([]any)
	// prefer a CITY match, fall back to an airport
	for _, want := range []string{"CITY", "AIRPORT"} {
		for _, r := range rows {
			m, ok := r.(map[string]any)
			if !ok {
				continue
			}
			if lookupStr(m, "type") == want {
				if id := anyToString(m["gaiaId"]); id != "" {
					return id, nil
				}
			}
		}
	}
	return "", fmt.Errorf("expedia: no region for %q", place)
}
