package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"
)

const (
	museMaxOutputTokens int64 = 256

	quotePrompt = `Return ONLY a JSON object {"text", "author"} with one short,
genuinely uplifting quote in Italian. Prefer real authors; leave "author"
empty for anonymous quotes. No markdown, no prose.`

	deedPrompt = `Return ONLY a JSON object {"text"} with one small good deed
someone can do today, in Italian, one sentence. No markdown, no prose.`
)

// Quote generates a fresh inspirational quote for the append-only pool.
func (c *Client) Quote(ctx context.Context) (string, string, error) {
	raw, err := c.museRequest(ctx, quotePrompt)
	if err != nil {
		return "", "", err
	}

	var payload struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err = json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", "", fmt.Errorf("parse quote payload: %w", err)
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return "", "", errors.New("quote text is missing")
	}

	return text, strings.TrimSpace(payload.Author), nil
}

// Deed generates a fresh good-deed suggestion.
func (c *Client) Deed(ctx context.Context) (string, error) {
	raw, err := c.museRequest(ctx, deedPrompt)
	if err != nil {
		return "", err
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err = json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("parse deed payload: %w", err)
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return "", errors.New("deed text is missing")
	}

	return text, nil
}

func (c *Client) museRequest(ctx context.Context, prompt string) (string, error) {
	var raw string
	err := withRetry(ctx, func() error {
		resp, reqErr := c.client.Responses.New(ctx, responses.ResponseNewParams{
			Model:           openai.ChatModelGPT5Mini2025_08_07,
			MaxOutputTokens: openai.Int(museMaxOutputTokens),
			Input: responses.ResponseNewParamsInputUnion{
				OfString: openai.String(prompt),
			},
		})
		if reqErr != nil {
			return fmt.Errorf("do request: %w", reqErr)
		}

		raw = resp.OutputText()

		return nil
	})
	if err != nil {
		return "", err
	}

	// Prose or fences around the object are tolerated, as in the news
	// parser.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", errors.New("payload delimiters are missing")
	}

	return raw[start : end+1], nil
}
