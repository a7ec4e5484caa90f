package domain

import "context"

// SearchQuery carries the resolved place plus stay dates to every adapter.
type SearchQuery struct {
	Place    Place
	CheckIn  string // 2006-01-02
	CheckOut string
	Adults   int
}

// Provider is one upstream hotel-data source. Fetch errors are contained
// by the aggregator; a failing provider contributes zero candidates.
type Provider interface {
	Name() ProviderName
	Fetch(ctx context.Context, q SearchQuery) ([]Candidate, error)
}

// Geocoder resolves free text to a classified place.
// Returns ErrLocationNotFound when nothing matches.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
}

// RerankOutcome is the annotation service's answer: identity keys in its
// preferred order plus optional summary prose. Advisory only; callers
// validate the keys before trusting the ordering.
type RerankOutcome struct {
	Keys    []string
	Summary string
}

// Reranker submits ranked hotels to an external annotation service.
type Reranker interface {
	Rerank(ctx context.Context, placeName string, hotels []MergedHotel, topN int) (RerankOutcome, error)
}

// Cache is a TTL key-value store. Implementations must tolerate being
// bypassed: callers log and continue on any error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
