package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhimit04/hotel-agent/internal/adapters/rapidapi"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

func testClient(t *testing.T) *rapidapi.Client {
	t.Helper()
	c, err := rapidapi.New("test-key", 100)
	if err != nil {
		t.Fatalf("rapidapi.New: %v", err)
	}
	return c
}

func cityQuery() domain.SearchQuery {
	return domain.SearchQuery{
		Place:    domain.Place{Type: domain.PlaceCity, Name: "Paris", Coords: &domain.Coords{Lat: 48.8566, Lon: 2.3522}},
		CheckIn:  "2026-09-01",
		CheckOut: "2026-09-05",
		Adults:   2,
	}
}

func TestBookingFetchByCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/hotels/search-by-coordinates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("checkin_date") != "2026-09-01" {
			t.Errorf("checkin_date = %q", r.URL.Query().Get("checkin_date"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []any{
				map[string]any{
					"hotel_id":     12345,
					"hotel_name":   "Hotel Lumiere",
					"address":      "12 Rue de Rivoli",
					"city":         "Paris",
					"review_score": 8.7,
					"review_nr":    412,
					"review_score_word": "Fabulous",
					"latitude":     48.8566,
					"longitude":    2.3522,
					"max_photo_url": "https://img.example/1.jpg",
					"price_breakdown": map[string]any{"gross_price": 210.5, "currency": "EUR"},
					"url":          "https://booking.example/lumiere",
				},
				map[string]any{"hotel_name": "", "review_nr": 10}, // nameless, dropped
			},
		})
	}))
	defer srv.Close()

	p := NewBooking(testClient(t), srv.URL)
	cands, err := p.Fetch(context.Background(), cityQuery())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	c := cands[0]
	if c.SourceID != "12345" || c.Name != "Hotel Lumiere" {
		t.Errorf("identity fields: %q %q", c.SourceID, c.Name)
	}
	if c.ReviewScore != 8.7 || c.ReviewCount != 412 {
		t.Errorf("reviews: %.1f/%d", c.ReviewScore, c.ReviewCount)
	}
	if c.Coords == nil || c.Coords.Lat != 48.8566 {
		t.Errorf("coords: %+v", c.Coords)
	}
	if c.Price == nil || c.Price.Amount != 210.5 || c.Price.Currency != "EUR" {
		t.Errorf("price: %+v", c.Price)
	}
	if c.Provider != domain.ProviderBooking {
		t.Errorf("provider: %q", c.Provider)
	}
}

func TestBookingFetchByDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/hotels/locations":
			if r.URL.Query().Get("name") != "Paris" {
				t.Errorf("name = %q", r.URL.Query().Get("name"))
			}
			_ = json.NewEncoder(w).Encode([]any{
				map[string]any{"dest_id": "-1456928", "dest_type": "city"},
			})
		case "/v1/hotels/search":
			if r.URL.Query().Get("dest_id") != "-1456928" {
				t.Errorf("dest_id = %q", r.URL.Query().Get("dest_id"))
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": []any{map[string]any{"hotel_id": 1, "hotel_name": "H", "review_score": 7.0, "review_nr": 3}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	q := cityQuery()
	q.Place.Coords = nil // forces the two-step lookup

	p := NewBooking(testClient(t), srv.URL)
	cands, err := p.Fetch(context.Background(), q)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(cands) != 1 || cands[0].Name != "H" {
		t.Fatalf("candidates: %+v", cands)
	}
}

func TestBookingTruncatesToTopReviewed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rows := make([]any, 0, 25)
		for i := 0; i < 25; i++ {
			rows = append(rows, map[string]any{
				"hotel_id":     i,
				"hotel_name":   fmt.Sprintf("Hotel %d", i),
				"review_score": 7.0,
				"review_nr":    i * 10,
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": rows})
	}))
	defer srv.Close()

	p := NewBooking(testClient(t), srv.URL)
	cands, err := p.Fetch(context.Background(), cityQuery())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(cands) != maxPerProvider {
		t.Fatalf("expected %d candidates, got %d", maxPerProvider, len(cands))
	}
	// the keepers are the most-reviewed rows
	for _, c := range cands {
		if c.ReviewCount < 150 {
			t.Errorf("low-volume candidate %q (%d reviews) survived truncation", c.Name, c.ReviewCount)
		}
	}
}
