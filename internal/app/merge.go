package app

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/abhimit04/hotel-agent/internal/domain"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeText folds diacritics and strips everything but lowercase
// alphanumerics, so "Hôtel Lumière" and "Hotel Lumiere" compare equal.
func normalizeText(s string) string {
	if folded, _, err := transform.String(deaccent, s); err == nil {
		s = folded
	}
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// identityKey groups candidates that describe the same physical hotel:
// normalized name plus coordinates rounded to 3 decimal degrees (~110 m).
// Without coordinates the normalized address stands in.
func identityKey(name, address string, coords *domain.Coords) string {
	n := normalizeText(name)
	if coords != nil {
		return fmt.Sprintf("%s@%.3f,%.3f", n, coords.Lat, coords.Lon)
	}
	return n + "@" + normalizeText(address)
}

type mergeAcc struct {
	h         *domain.MergedHotel
	bestCount int // review count of the candidate that donated name/address/coords
}

// MergeCandidates folds provider candidates into one MergedHotel per
// identity key, in encounter order. Review scores combine as a running
// weighted average; zero-count contributions carry no weight. Nameless
// candidates are dropped before grouping.
func MergeCandidates(cands []domain.Candidate) []domain.MergedHotel {
	byKey := make(map[string]*mergeAcc)
	var order []string

	for _, c := range cands {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		if c.ReviewScore < 0 || c.ReviewScore != c.ReviewScore { // negative or NaN
			c.ReviewScore, c.ReviewCount = 0, 0
		}
		key := identityKey(c.Name, c.Address, c.Coords)
		acc, ok := byKey[key]
		if !ok {
			byKey[key] = &mergeAcc{h: seedHotel(key, c), bestCount: c.ReviewCount}
			order = append(order, key)
			continue
		}
		mergeInto(acc, c)
	}

	out := make([]domain.MergedHotel, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k].h)
	}
	return out
}

func seedHotel(key string, c domain.Candidate) *domain.MergedHotel {
	h := &domain.MergedHotel{
		IdentityKey: key,
		Name:        c.Name,
		Address:     c.Address,
		Coords:      c.Coords,
		Sources:     []domain.SourceRef{sourceRef(c)},
		ReviewScore: c.ReviewScore,
		ReviewCount: c.ReviewCount,
		ReviewText:  c.ReviewText,
		ImageURL:    c.ImageURL,
	}
	if c.Price != nil {
		h.Prices = map[domain.ProviderName]domain.Price{c.Provider: *c.Price}
	}
	return h
}

func mergeInto(acc *mergeAcc, c domain.Candidate) {
	h := acc.h

	ref := sourceRef(c)
	if !hasSource(h.Sources, ref) {
		h.Sources = append(h.Sources, ref)
	}
	if c.Price != nil {
		if h.Prices == nil {
			h.Prices = make(map[domain.ProviderName]domain.Price)
		}
		if _, dup := h.Prices[c.Provider]; !dup {
			h.Prices[c.Provider] = *c.Price
		}
	}

	// running weighted combination; both counts zero keeps the prior score
	if total := h.ReviewCount + c.ReviewCount; total > 0 {
		h.ReviewScore = (h.ReviewScore*float64(h.ReviewCount) + c.ReviewScore*float64(c.ReviewCount)) / float64(total)
		h.ReviewCount = total
	}

	// descriptive fields follow the highest-confidence contributor
	if c.ReviewCount > acc.bestCount {
		acc.bestCount = c.ReviewCount
		h.Name = c.Name
		if c.Address != "" {
			h.Address = c.Address
		}
		if c.Coords != nil {
			h.Coords = c.Coords
		}
		if c.ReviewText != "" {
			h.ReviewText = c.ReviewText
		}
		if c.ImageURL != "" {
			h.ImageURL = c.ImageURL
		}
	} else {
		if h.Address == "" {
			h.Address = c.Address
		}
		if h.Coords == nil {
			h.Coords = c.Coords
		}
		if h.ReviewText == "" {
			h.ReviewText = c.ReviewText
		}
		if h.ImageURL == "" {
			h.ImageURL = c.ImageURL
		}
	}
}

func sourceRef(c domain.Candidate) domain.SourceRef {
	ref := domain.SourceRef{Provider: c.Provider, SourceID: c.SourceID}
	if c.Price != nil {
		ref.URL = c.Price.URL
	}
	return ref
}

func hasSource(refs []domain.SourceRef, ref domain.SourceRef) bool {
	for _, r := range refs {
		if r.Provider == ref.Provider && r.SourceID == ref.SourceID {
			return true
		}
	}
	return false
}
