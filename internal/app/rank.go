package app

import (
	"math"
	"sort"

	"github.com/abhimit04/hotel-agent/internal/domain"
)

// AgentScore maps review quality and volume onto [0,100]: up to 70 points
// from the 0-10 review score, up to 30 from log-damped review count.
// Scores above 10 are treated as mis-tagged percentage-scale values.
func AgentScore(score float64, count int) float64 {
	if score > 10 {
		score = score / 10
	}
	if score < 0 || score != score {
		score = 0
	}
	base := math.Min(score, 10) / 10 * 70
	volume := math.Min(math.Log10(float64(count)+1)/3*30, 30)
	s := math.Round((base+volume)*10) / 10
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// RankHotels computes agent scores and orders hotels by agent score,
// then review score, then review count, all descending.
func RankHotels(hotels []domain.MergedHotel) []domain.MergedHotel {
	out := make([]domain.MergedHotel, len(hotels))
	copy(out, hotels)
	for i := range out {
		out[i].AgentScore = AgentScore(out[i].ReviewScore, out[i].ReviewCount)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AgentScore != b.AgentScore {
			return a.AgentScore > b.AgentScore
		}
		if a.ReviewScore != b.ReviewScore {
			return a.ReviewScore > b.ReviewScore
		}
		return a.ReviewCount > b.ReviewCount
	})
	return out
}

// applyRerank reorders hotels according to the annotator's key list.
// The list is only honored when every key names a hotel inside the
// submitted top-K window with no duplicates; anything else means the
// annotator hallucinated or truncated, and the deterministic order stands.
func applyRerank(ranked []domain.MergedHotel, topK int, out domain.RerankOutcome) ([]domain.MergedHotel, bool) {
	if len(out.Keys) == 0 {
		return ranked, false
	}
	if topK > len(ranked) {
		topK = len(ranked)
	}
	window := make(map[string]int, topK)
	for i := 0; i < topK; i++ {
		window[ranked[i].IdentityKey] = i
	}

	seen := make(map[string]bool, len(out.Keys))
	head := make([]domain.MergedHotel, 0, len(out.Keys))
	for _, k := range out.Keys {
		i, ok := window[k]
		if !ok || seen[k] {
			return ranked, false
		}
		seen[k] = true
		head = append(head, ranked[i])
	}

	rest := make([]domain.MergedHotel, 0, len(ranked)-len(head))
	for _, h := range ranked {
		if !seen[h.IdentityKey] {
			rest = append(rest, h)
		}
	}
	return append(head, rest...), true
}
