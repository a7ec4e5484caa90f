package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abhimit04/hotel-agent/internal/domain"
)

func answer(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	}
}

func rankedHotels() []domain.MergedHotel {
	return []domain.MergedHotel{
		{IdentityKey: "k1", Name: "First", ReviewScore: 9, ReviewCount: 500, ReviewText: "Excellent"},
		{IdentityKey: "k2", Name: "Second", ReviewScore: 8, ReviewCount: 100, ReviewText: "Good"},
	}
}

func TestRerankParsesFencedAnswer(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Contents[0].Parts[0].Text

		text := "Here you go:\n```json\n{\"hotels\":[{\"identity_key\":\"k2\"},{\"identity_key\":\"k1\"}],\"summary\":\"Both are solid picks.\"}\n```"
		_ = json.NewEncoder(w).Encode(answer(text))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "test-key", "", time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := c.Rerank(context.Background(), "Paris", rankedHotels(), 10)
	if err != nil {
		t.Fatalf("Rerank: %v", err)
	}
	if len(out.Keys) != 2 || out.Keys[0] != "k2" {
		t.Errorf("keys: %v", out.Keys)
	}
	if out.Summary != "Both are solid picks." {
		t.Errorf("summary: %q", out.Summary)
	}
	if !strings.Contains(gotPrompt, "identity_key=k1") || !strings.Contains(gotPrompt, "Paris") {
		t.Errorf("prompt missing inputs:\n%s", gotPrompt)
	}
}

func TestRerankRejectsProseOnlyAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(answer("I cannot rank these hotels."))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, "test-key", "", time.Second)
	if _, err := c.Rerank(context.Background(), "Paris", rankedHotels(), 10); err == nil {
		t.Fatalf("expected an error for a JSON-free answer")
	}
}

func TestRerankRejectsEmptyHotelList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(answer(`{"hotels":[],"summary":"nothing"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL, "test-key", "", time.Second)
	if _, err := c.Rerank(context.Background(), "Paris", rankedHotels(), 10); err == nil {
		t.Fatalf("expected an error for an empty hotel list")
	}
}

func TestRerankUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, "test-key", "", time.Second)
	if _, err := c.Rerank(context.Background(), "Paris", rankedHotels(), 10); err == nil {
		t.Fatalf("expected an error for a non-200 status")
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("", "", "", 0); err == nil {
		t.Fatalf("expected an error for the missing key")
	}
}
