package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"brightside/internal/metrics"
	"brightside/internal/sanitize"

	"github.com/openai/openai-go/v3"
)

// Narrate synthesizes speech for article text. Markdown and HTML are
// stripped first. The provider streams raw PCM: 16-bit little-endian
// samples, 24kHz, mono. That format is the playback contract, so it is
// returned as-is, base64-encoded.
func (c *Client) Narrate(ctx context.Context, text string) (string, error) {
	text = sanitize.PlainText(text)
	if text == "" {
		return "", errors.New("text is empty")
	}

	var audio string
	err := withRetry(ctx, func() error {
		resp, reqErr := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
			Model:          openai.SpeechModelGPT4oMiniTTS,
			Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
			Input:          text,
			ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
		})
		if reqErr != nil {
			return fmt.Errorf("do request: %w", reqErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("read audio body: %w", readErr)
		}
		if len(raw) == 0 {
			return errors.New("audio payload is empty")
		}

		audio = base64.StdEncoding.EncodeToString(raw)

		return nil
	})
	if err != nil {
		return "", err
	}

	metrics.Narrations.Inc()

	return audio, nil
}
