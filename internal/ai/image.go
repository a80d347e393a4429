package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"brightside/internal/metrics"

	"github.com/openai/openai-go/v3"
)

const imagePromptTemplate = `A warm, optimistic editorial illustration for a news article.
Title: %s
Summary: %s
Style: soft colors, hopeful mood, no text in the image.`

// Illustrate generates one image for an article. Single-shot: image
// generation is not retried on rate limits, the prefetch queue simply
// comes back to the article later.
func (c *Client) Illustrate(ctx context.Context, title, summary string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title is empty")
	}

	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:  openai.ImageModelGPTImage1,
		Prompt: fmt.Sprintf(imagePromptTemplate, title, strings.TrimSpace(summary)),
		Size:   openai.ImageGenerateParamsSize1024x1024,
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", errors.New("image payload is missing")
	}

	metrics.ImagesGenerated.Inc()

	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}
