package domain

// ProviderName tags the upstream source an adapter talks to.
type ProviderName string

const (
	ProviderBooking       ProviderName = "booking"
	ProviderTravelAdvisor ProviderName = "traveladvisor"
	ProviderExpedia       ProviderName = "expedia"
	ProviderPriceline     ProviderName = "priceline"
)

type Coords struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	URL      string  `json:"url,omitempty"`
}

// Candidate is one provider's raw listing, normalized to the canonical
// schema. Created fresh on every aggregation run, discarded after merge.
type Candidate struct {
	SourceID    string
	Name        string
	Address     string
	Coords      *Coords
	Price       *Price
	ReviewScore float64 // 0-10 scale; adapters rescale
	ReviewCount int
	ReviewText  string
	ImageURL    string
	Provider    ProviderName
}

type SourceRef struct {
	Provider ProviderName `json:"provider"`
	SourceID string       `json:"source_id,omitempty"`
	URL      string       `json:"url,omitempty"`
}

// MergedHotel is one physical hotel assembled from every candidate that
// shares an identity key. The ranker fills AgentScore.
type MergedHotel struct {
	IdentityKey string                 `json:"identity_key"`
	Name        string                 `json:"name"`
	Address     string                 `json:"address,omitempty"`
	Coords      *Coords                `json:"coordinates,omitempty"`
	Sources     []SourceRef            `json:"sources"`
	Prices      map[ProviderName]Price `json:"prices,omitempty"`
	ReviewScore float64                `json:"review_score"`
	ReviewCount int                    `json:"review_count"`
	ReviewText  string                 `json:"review_text,omitempty"`
	ImageURL    string                 `json:"image_url,omitempty"`
	AgentScore  float64                `json:"agent_score"`
}
