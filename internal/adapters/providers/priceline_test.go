package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPricelineFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/hotels/locations":
			if r.URL.Query().Get("search_type") != "CITY" {
				t.Errorf("search_type = %q", r.URL.Query().Get("search_type"))
			}
			_ = json.NewEncoder(w).Encode([]any{map[string]any{"id": "3000015284"}})
		case "/v1/hotels/search":
			if r.URL.Query().Get("location_id") != "3000015284" {
				t.Errorf("location_id = %q", r.URL.Query().Get("location_id"))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"hotels": []any{
					map[string]any{
						"hotelId":    "77",
						"name":       "Hotel Lumiere",
						"address":    "12 Rue de Rivoli",
						"starRating": 4.0,
						"guestReviews": map[string]any{"total": 320},
						"ratePlan":   map[string]any{"price": map[string]any{"exactCurrent": 175.5}},
						"deeplink":   "https://priceline.example/77",
					},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	p := NewPriceline(testClient(t), srv.URL)
	cands, err := p.Fetch(context.Background(), cityQuery())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.ReviewScore != 8.0 {
		t.Errorf("star rating 4.0 must rescale to 8.0, got %.1f", c.ReviewScore)
	}
	if c.ReviewCount != 320 {
		t.Errorf("review count: %d", c.ReviewCount)
	}
	if c.Coords != nil {
		t.Errorf("priceline rows carry no coordinates, got %+v", c.Coords)
	}
	if c.Price == nil || c.Price.Amount != 175.5 {
		t.Errorf("price: %+v", c.Price)
	}
}
