package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"brightside/internal/domain"
	"brightside/internal/metrics"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const (
	newsMaxOutputTokens int64 = 4096

	newsSystemPrompt = `You are a news curator for a positivity portal.
Find recent, real, uplifting news for the given topic.

Rules:
- Respond with ONLY a JSON array, no prose, no markdown fences.
- Each element: {"title", "summary", "source", "url", "date", "sentimentScore"}.
- "summary" is 2-3 sentences in the language of the topic.
- "date" is YYYY-MM-DD.
- "sentimentScore" is a number between 0 and 1, higher is more positive.
- "url" must be a real https article URL.
- Skip tragedies, accidents, politics framed negatively.`
)

// Client calls the provider's text, image and speech endpoints. It
// implements Searcher, Illustrator, Narrator and Muse.
type Client struct {
	client openai.Client
	log    *slog.Logger
}

func NewClient(apiKey string, log *slog.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		log:    log,
	}, nil
}

// SearchNews asks the model for a structured news listing. The model is
// asked for bare JSON; surrounding prose or fences are tolerated during
// parsing and malformed payloads yield an empty result.
func (c *Client) SearchNews(
	ctx context.Context,
	query string,
	limit int,
) ([]domain.Draft, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query is empty")
	}

	metrics.NewsSearches.Inc()

	userPrompt := fmt.Sprintf("Topic: %s\nReturn up to %d items.", query, limit)

	var raw string
	err := withRetry(ctx, func() error {
		resp, reqErr := c.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:           openai.ChatModelGPT5Mini2025_08_07,
			MaxOutputTokens: openai.Int(newsMaxOutputTokens),
			Instructions:    openai.String(newsSystemPrompt),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(userPrompt),
			},
		})
		if reqErr != nil {
			return fmt.Errorf("do request: %w", reqErr)
		}

		raw = resp.OutputText()

		return nil
	})
	if err != nil {
		return nil, err
	}

	drafts := parseNewsPayload(raw, limit)
	if len(drafts) == 0 {
		c.log.WarnContext(ctx, "News search returned no parseable items",
			"query", query,
			"rawLength", len(raw))
	}

	return drafts, nil
}
