// Package gemini calls the Gemini generateContent API to rerank ranked
// hotels and write a short trip summary. The model's answer is advisory:
// callers validate the returned identities and fall back to the
// deterministic ordering on any failure here.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhimit04/hotel-agent/internal/domain"
)

type Client struct {
	base  string
	key   string
	model string
	hc    *http.Client
}

func New(base, key, model string, timeout time.Duration) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if base == "" {
		base = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		key:   key,
		model: model,
		hc:    &http.Client{Timeout: timeout},
	}, nil
}

// generateContent request/response wire shapes (only the parts we read).
type genRequest struct {
	Contents []genContent `json:"contents"`
}

type genContent struct {
	Parts []genPart `json:"parts"`
}

type genPart struct {
	Text string `json:"text"`
}

type genResponse struct {
	Candidates []struct {
		Content genContent `json:"content"`
	} `json:"candidates"`
}

// parsedRerank is the JSON shape the prompt demands from the model.
type parsedRerank struct {
	Hotels []struct {
		IdentityKey string `json:"identity_key"`
	} `json:"hotels"`
	Summary string `json:"summary"`
}

func (c *Client) Rerank(ctx context.Context, placeName string, hotels []domain.MergedHotel, topN int) (domain.RerankOutcome, error) {
	prompt := buildPrompt(placeName, hotels, topN)

	body, err := json.Marshal(genRequest{Contents: []genContent{{Parts: []genPart{{Text: prompt}}}}})
	if err != nil {
		return domain.RerankOutcome{}, err
	}

	u := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.base, c.model, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return domain.RerankOutcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return domain.RerankOutcome{}, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.RerankOutcome{}, fmt.Errorf("gemini: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out genResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.RerankOutcome{}, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return domain.RerankOutcome{}, fmt.Errorf("gemini: empty response")
	}

	parsed, err := parseAnswer(out.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return domain.RerankOutcome{}, err
	}

	keys := make([]string, 0, len(parsed.Hotels))
	for _, h := range parsed.Hotels {
		keys = append(keys, h.IdentityKey)
	}
	return domain.RerankOutcome{Keys: keys, Summary: strings.TrimSpace(parsed.Summary)}, nil
}

// parseAnswer extracts the first JSON object from the model's text,
// which may be wrapped in prose or a code fence.
func parseAnswer(text string) (parsedRerank, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return parsedRerank{}, fmt.Errorf("gemini: no JSON object in answer")
	}
	var parsed parsedRerank
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return parsedRerank{}, fmt.Errorf("gemini: malformed JSON answer: %w", err)
	}
	if len(parsed.Hotels) == 0 {
		return parsedRerank{}, fmt.Errorf("gemini: answer listed no hotels")
	}
	return parsed, nil
}

func buildPrompt(placeName string, hotels []domain.MergedHotel, topN int) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are a travel assistant. Here is a list of hotels in %q with identity_key, name, review score (0-10), review count, and a short review descriptor.

Rank them and return ONLY the top %d, judged by:
- review score (higher is better)
- review count (more is better)
- positive review descriptor ("Excellent" beats "Good")

Also write a short markdown summary of the top hotels covering cleanliness, location, price, and guest experience.

Return strictly as JSON:
{"hotels":[{"identity_key":"..."}],"summary":"..."}

Use only identity_key values from the list below. Hotels:
`, placeName, topN)
	for _, h := range hotels {
		fmt.Fprintf(&b, "- identity_key=%s name=%q score=%.1f reviews=%d descriptor=%q\n",
			h.IdentityKey, h.Name, h.ReviewScore, h.ReviewCount, h.ReviewText)
	}
	return b.String()
}
