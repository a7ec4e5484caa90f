package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

const bookingHost = "booking-com.p.rapidapi.com"

// Booking adapts the Booking.com RapidAPI proxy. Prefers the
// coordinate-based search; falls back to a destination-id lookup when
// the geocoder resolved no coordinates.
type Booking struct {
	c    *rapidapi.Client
	base string
}

func NewBooking(c *rapidapi.Client, base string) *Booking {
	if base == "" {
		base = "https://" + bookingHost
	}
	return &Booking{c: c, base: base}
}

func (p *Booking) Name() domain.ProviderName { return domain.ProviderBooking }

func (p *Booking) Fetch(ctx context.Context, q domain.SearchQuery) ([]domain.Candidate, error) {
	vals := url.Values{
		"checkin_date":       {q.CheckIn},
		"checkout_date":      {q.CheckOut},
		"adults_number":      {fmt.Sprint(q.Adults)},
		"order_by":           {"popularity"},
		"filter_by_currency": {"USD"},
		"locale":             {"en-gb"},
		"room_number":        {"1"},
		"units":              {"metric"},
	}

	var endpoint string
	if c := q.Place.Coords; c != nil {
		vals.Set("latitude", fmt.Sprintf("%f", c.Lat))
		vals.Set("longitude", fmt.Sprintf("%f", c.Lon))
		endpoint = p.base + "/v1/hotels/search-by-coordinates?" + vals.Encode()
	} else {
		destID, err := p.destinationID(ctx, q.Place.Name)
		if err != nil {
			return nil, err
		}
		vals.Set("dest_type", "city")
		vals.Set("dest_id", destID)
		vals.Set("include_adjacency", "true")
		endpoint = p.base + "/v1/hotels/search?" + vals.Encode()
	}

	var raw map[string]any
	if err := p.c.GetJSON(ctx, endpoint, bookingHost, &raw); err != nil {
		return nil, fmt.Errorf("booking search: %w", err)
	}

	rows, _ := raw["result"].([]any)
	if rows == nil {
		rows, _ = raw["results"].([]any)
	}
	cands := make([]domain.Candidate, 0, len(rows))
	for _, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		name := firstStr(m, "hotel_name", "name")
		if name == "" {
			continue
		}
		cand := domain.Candidate{
			SourceID:    anyToString(m["hotel_id"]),
			Name:        name,
			Address:     joinNonEmpty(firstStr(m, "address", "address_trans"), lookupStr(m, "city")),
			ReviewCount: getInt(m, "review_nr", "review_count"),
			ReviewText:  firstStr(m, "review_score_word"),
			ImageURL:    firstStr(m, "max_1440_photo", "max_photo_url", "main_photo_url"),
			Provider:    domain.ProviderBooking,
		}
		// Booking reports review_score on the canonical 0-10 scale.
		if score, ok := getFloat(m, "review_score"); ok {
			cand.ReviewScore = score
		}
		if lat, okLat := getFloat(m, "latitude"); okLat {
			if lon, okLon := getFloat(m, "longitude"); okLon {
				cand.Coords = &domain.Coords{Lat: lat, Lon: lon}
			}
		}
		if amount, ok := getFloat(m, "price_breakdown.gross_price", "min_total_price"); ok {
			cur := firstStr(m, "price_breakdown.currency", "currency_code")
			if cur == "" {
				cur = "USD"
			}
			cand.Price = &domain.Price{Amount: amount, Currency: cur, URL: lookupStr(m, "url")}
		}
		cands = append(cands, cand)
	}
	return topByReviews(cands, maxPerProvider), nil
}

func (p *Booking) destinationID(ctx context.Context, place string) (string, error) {
	u := p.base + "/v1/hotels/locations?" + url.Values{"name": {place}, "locale": {"en-gb"}}.Encode()
	var locs []map[string]any
	if err := p.c.GetJSON(ctx, u, bookingHost, &locs); err != nil {
		return "", fmt.Errorf("booking locations: %w", err)
	}
	if len(locs) == 0 {
		return "", fmt.Errorf("booking: no destination for %q", place)
	}
	id := anyToString(locs[0]["dest_id"])
	if id == "" {
		return "", fmt.Errorf("booking: destination for %q has no id", place)
	}
	return id, nil
}
