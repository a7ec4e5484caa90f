package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/abhimit04/hotel-agent/internal/adapters/observability"
	"github.com/abhimit04/hotel-agent/internal/domain"
)

// SearchService runs the full pipeline: classify the query, consult the
// cache, fan out to providers, merge, rank, and write the result back.
type SearchService struct {
	geo      domain.Geocoder
	agg      *Aggregator
	reranker domain.Reranker // nil disables AI rerank/summary
	cache    domain.Cache
	cacheTTL int // seconds
	adults   int
	topK     int
	topN     int
}

type SearchOptions struct {
	CacheTTLSeconds int
	Adults          int
	RerankTopK      int
	RerankTopN      int
}

func NewSearchService(geo domain.Geocoder, agg *Aggregator, rr domain.Reranker, cache domain.Cache, opts SearchOptions) *SearchService {
	if opts.Adults <= 0 {
		opts.Adults = 2
	}
	if opts.RerankTopK <= 0 {
		opts.RerankTopK = 20
	}
	if opts.RerankTopN <= 0 {
		opts.RerankTopN = 10
	}
	return &SearchService{
		geo:      geo,
		agg:      agg,
		reranker: rr,
		cache:    cache,
		cacheTTL: opts.CacheTTLSeconds,
		adults:   opts.Adults,
		topK:     opts.RerankTopK,
		topN:     opts.RerankTopN,
	}
}

// SearchResult is the cached unit: the ranked hotels plus an optional
// AI-written summary.
type SearchResult struct {
	Hotels  []domain.MergedHotel `json:"hotels"`
	Summary string               `json:"summary,omitempty"`
}

// CacheKey is whitespace- and case-insensitive over the query.
func CacheKey(query, checkin, checkout string) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return fmt.Sprintf("search:%s:%s:%s", q, checkin, checkout)
}

// Search resolves a free-text query to either a city-level list or a
// single-hotel lookup. A hotel-classified query that matches nothing is
// a final miss; it is never widened to a city search.
func (s *SearchService) Search(ctx context.Context, query, checkin, checkout string) (SearchResult, error) {
	key := CacheKey(query, checkin, checkout)

	var cached SearchResult
	if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, bypassing")
	} else if ok {
		return cached, nil
	}

	place, err := s.geo.Geocode(ctx, query)
	if err != nil {
		return SearchResult{}, err
	}
	if place.Type == domain.PlaceUnknown {
		return SearchResult{}, domain.ErrLocationNotFound
	}

	q := domain.SearchQuery{Place: place, CheckIn: checkin, CheckOut: checkout, Adults: s.adults}
	cands, err := s.agg.Collect(ctx, q)
	if err != nil {
		return SearchResult{}, err // cancelled; nothing cached
	}
	// unknown is already rejected above, so a non-area place is a
	// single-hotel lookup
	if !place.Type.IsArea() {
		cands = filterByName(cands, place.Name, query)
	}

	merged := MergeCandidates(cands)
	if len(merged) == 0 {
		return SearchResult{}, domain.ErrNoCandidates
	}

	res := s.rank(ctx, place, merged)

	if err := s.cache.Set(ctx, key, res, s.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return res, nil
}

// HotelDetails serves the single-hotel surface: same pipeline, then the
// best name match from the ranked output.
func (s *SearchService) HotelDetails(ctx context.Context, name, checkin, checkout string) (domain.MergedHotel, string, error) {
	res, err := s.Search(ctx, name, checkin, checkout)
	if err != nil {
		return domain.MergedHotel{}, "", err
	}
	want := normalizeText(name)
	for _, h := range res.Hotels {
		if strings.Contains(normalizeText(h.Name), want) {
			return h, res.Summary, nil
		}
	}
	return res.Hotels[0], res.Summary, nil
}

func (s *SearchService) rank(ctx context.Context, place domain.Place, merged []domain.MergedHotel) SearchResult {
	ranked := RankHotels(merged)
	if s.reranker == nil {
		return SearchResult{Hotels: ranked}
	}

	topK := s.topK
	if topK > len(ranked) {
		topK = len(ranked)
	}
	out, err := s.reranker.Rerank(ctx, place.Name, ranked[:topK], s.topN)
	if err != nil {
		observability.ObserveRerankFallback("error")
		log.Warn().Err(err).Msg("rerank failed, using deterministic order")
		return SearchResult{Hotels: ranked}
	}
	reordered, ok := applyRerank(ranked, topK, out)
	if !ok {
		// keys referenced hotels we never submitted; the whole
		// response is untrustworthy, summary included
		observability.ObserveRerankFallback("invalid_keys")
		log.Warn().Msg("rerank response failed identity validation, using deterministic order")
		return SearchResult{Hotels: ranked}
	}
	return SearchResult{Hotels: reordered, Summary: out.Summary}
}

// filterByName keeps candidates plausibly naming the looked-up hotel.
func filterByName(cands []domain.Candidate, placeName, rawQuery string) []domain.Candidate {
	wantA := normalizeText(placeName)
	wantB := normalizeText(rawQuery)
	var out []domain.Candidate
	for _, c := range cands {
		n := normalizeText(c.Name)
		if (wantA != "" && strings.Contains(n, wantA)) || (wantB != "" && strings.Contains(n, wantB)) {
			out = append(out, c)
		}
	}
	return out
}
