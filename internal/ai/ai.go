// Package ai wraps the generative provider behind small per-concern
// interfaces so the orchestration layer can be exercised with stubs.
package ai

import (
	"context"

	"brightside/internal/domain"
)

// Searcher finds recent positive news for a query.
type Searcher interface {
	SearchNews(ctx context.Context, query string, limit int) ([]domain.Draft, error)
}

// Illustrator produces a data-URI-embedded image for an article.
type Illustrator interface {
	Illustrate(ctx context.Context, title, summary string) (string, error)
}

// Narrator synthesizes speech for plain text. Output is base64-encoded
// 16-bit little-endian PCM, 24kHz, mono. Playback must decode exactly
// that format.
type Narrator interface {
	Narrate(ctx context.Context, text string) (string, error)
}

// Muse generates inspirational content for the daily display.
type Muse interface {
	Quote(ctx context.Context) (text, author string, err error)
	Deed(ctx context.Context) (string, error)
}
