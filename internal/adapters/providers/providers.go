// Package providers holds one adapter per upstream hotel-data source,
// all speaking through the shared RapidAPI client. Every adapter maps
// its provider's schema onto domain.Candidate, rescales ratings to the
// canonical 0-10 scale, and contributes at most its maxPerProvider
// most-reviewed listings.
package providers

import (
	"sort"

	"github.com/abhimit04/hotel-agent/internal/domain"
)

const maxPerProvider = 10

// topByReviews keeps the n most-reviewed candidates.
func topByReviews(cands []domain.Candidate, n int) []domain.Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].ReviewCount > cands[j].ReviewCount
	})
	if len(cands) > n {
		cands = cands[:n]
	}
	return cands
}
