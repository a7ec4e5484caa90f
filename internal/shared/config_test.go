package shared

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.Adults != 2 || c.RerankTopK != 20 || c.RerankTopN != 10 {
		t.Errorf("search defaults: adults=%d topK=%d topN=%d", c.Adults, c.RerankTopK, c.RerankTopN)
	}
	if c.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v", c.CacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("RAPIDAPI_RPS", "12")
	t.Setenv("RERANK_TOP_K", "5")

	c := Load()
	if c.HTTPAddr != ":9999" || c.RapidAPIRPS != 12 || c.RerankTopK != 5 {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestLoadClampsCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "5")
	if c := Load(); c.CacheTTL != 10*time.Minute {
		t.Errorf("short TTL not clamped up: %v", c.CacheTTL)
	}

	t.Setenv("CACHE_TTL_SECONDS", "86400")
	if c := Load(); c.CacheTTL != 60*time.Minute {
		t.Errorf("long TTL not clamped down: %v", c.CacheTTL)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("RAPIDAPI_RPS", "not-a-number")
	if c := Load(); c.RapidAPIRPS != 5 {
		t.Errorf("malformed int did not fall back: %d", c.RapidAPIRPS)
	}
}
