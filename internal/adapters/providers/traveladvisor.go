package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

const travelAdvisorHost = "travel-advisor.p.rapidapi.com"

// TravelAdvisor adapts the travel-advisor proxy (TripAdvisor data).
// Ratings arrive on a 0-5 scale and are doubled to the canonical 0-10.
type TravelAdvisor struct {
	c    *rapidapi.Client
	base string
}

func NewTravelAdvisor(c *rapidapi.Client, base string) *TravelAdvisor {
	if base == "" {
		base = "https://" + travelAdvisorHost
	}
	return &TravelAdvisor{c: c, base: base}
}

func (p *TravelAdvisor) Name() domain.ProviderName { return domain.ProviderTravelAdvisor }

func (p *TravelAdvisor) Fetch(ctx context.Context, q domain.SearchQuery) ([]domain.Candidate, error) {
	var endpoint string
	if c := q.Place.Coords; c != nil {
		endpoint = p.base + "/hotels/list-by-latlng?" + url.Values{
			"latitude":  {fmt.Sprintf("%f", c.Lat)},
			"longitude": {fmt.Sprintf("%f", c.Lon)},
			"checkin":   {q.CheckIn},
			"adults":    {fmt.Sprint(q.Adults)},
			"currency":  {"USD"},
			"limit":     {"30"},
		}.Encode()
	} else {
		locID, err := p.locationID(ctx, q.Place.Name)
		if err != nil {
			return nil, err
		}
		endpoint = p.base + "/hotels/list?" + url.Values{
			"location_id": {locID},
			"checkin":     {q.CheckIn},
			"checkout":    {q.CheckOut},
			"adults":      {fmt.Sprint(q.Adults)},
			"offset":      {"0"},
			"currency":    {"USD"},
			"limit":       {"30"},
			"sort":        {"recommended"},
		}.Encode()
	}

	var raw map[string]any
	if err := p.c.GetJSON(ctx, endpoint, travelAdvisorHost, &raw); err != nil {
		return nil, fmt.Errorf("traveladvisor list: %w", err)
	}
	if errs, ok := raw["errors"].([]any); ok && len(errs) > 0 {
		return nil, fmt.Errorf("traveladvisor: error payload: %v", errs[0])
	}

	rows, _ := raw["data"].([]any)
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
			SourceID:    anyToString(m["location_id"]),
			Name:        name,
			Address:     firstStr(m, "address_obj.address_string", "location_string", "address"),
			ReviewCount: getInt(m, "num_reviews"),
			ReviewText:  firstStr(m, "subcategory_ratings.text"),
			ImageURL:    firstStr(m, "photo.images.large.url", "photo.images.original.url"),
			Provider:    domain.ProviderTravelAdvisor,
		}
		if rating, ok := getFloat(m, "rating"); ok {
			cand.ReviewScore = rating * 2 // 0-5 -> 0-10
		}
		if lat, okLat := getFloat(m, "latitude"); okLat {
			if lon, okLon := getFloat(m, "longitude"); okLon {
				cand.Coords = &domain.Coords{Lat: lat, Lon: lon}
			}
		}
		if amount, ok := getFloat(m, "price"); ok {
			cand.Price = &domain.Price{Amount: amount, Currency: "USD", URL: lookupStr(m, "web_url")}
		}
		cands = append(cands, cand)
	}
	return topByReviews(cands, maxPerProvider), nil
}

func (p *TravelAdvisor) locationID(ctx context.Context, place string) (string, error) {
	u := p.base + "/locations/search?" + url.Values{"query": {place}, "limit": {"1"}}.Encode()
	var raw map[string]any
	if err := p.c.GetJSON(ctx, u, travelAdvisorHost, &raw); err != nil {
		return "", fmt.Errorf("traveladvisor locations: %w", err)
	}
	rows, _ := raw["data"].([]any)
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if id := firstStr(m, "result_object.location_id", "location_id"); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("traveladvisor: no location for %q", place)
}
