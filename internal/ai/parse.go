package ai

import (
	"encoding/json"
	"strings"

	"brightside/internal/domain"

	"mvdan.cc/xurls/v2"
)

type newsPayloadItem struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	Source    string  `json:"source"`
	URL       string  `json:"url"`
	Date      string  `json:"date"`
	Sentiment float64 `json:"sentimentScore"`
}

// parseNewsPayload extracts the JSON array from model output that may be
// wrapped in prose or markdown fences: everything between the first '['
// and the last ']' is taken. Anything unparseable yields an empty slice,
// never an error.
func parseNewsPayload(raw string, limit int) []domain.Draft {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil
	}

	var items []newsPayloadItem
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil
	}

	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return nil
	}

	drafts := make([]domain.Draft, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		if limit > 0 && len(drafts) >= limit {
			break
		}

		title := strings.TrimSpace(item.Title)
		itemURL := strings.TrimSpace(item.URL)
		if title == "" || itemURL == "" {
			continue
		}

		// The whole string must be one https URL, nothing around it.
		if httpsURLRe.FindString(itemURL) != itemURL {
			continue
		}

		if _, ok := seen[itemURL]; ok {
			continue
		}
		seen[itemURL] = struct{}{}

		drafts = append(drafts, domain.Draft{
			Title:     title,
			Summary:   strings.TrimSpace(item.Summary),
			Source:    strings.TrimSpace(item.Source),
			URL:       itemURL,
			Date:      strings.TrimSpace(item.Date),
			Sentiment: clampSentiment(item.Sentiment),
		})
	}

	return drafts
}

func clampSentiment(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
