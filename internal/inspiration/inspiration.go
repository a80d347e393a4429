// Package inspiration serves the daily quote and good deed from
// append-only pools, generating fresh entries when a pool runs dry.
package inspiration

import (
	"context"
	"log/slog"

	"brightside/internal/ai"
	"brightside/internal/database"
	"brightside/internal/domain"
)

// Pools below this size get refilled by the nightly job.
const refillThreshold = 10

type Service struct {
	db   *database.Database
	muse ai.Muse
	log  *slog.Logger
}

func New(db *database.Database, muse ai.Muse, log *slog.Logger) *Service {
	return &Service{db: db, muse: muse, log: log}
}

// Daily picks a random quote and deed. Either may be nil when the pool
// is empty and generation is unavailable; the caller renders what it
// gets.
func (s *Service) Daily(ctx context.Context) (*domain.Quote, *domain.Deed) {
	quote, err := s.db.RandomQuote(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load random quote",
			"error", err)
	}
	if quote == nil {
		quote = s.generateQuote(ctx)
	}

	deed, err := s.db.RandomDeed(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load random deed",
			"error", err)
	}
	if deed == nil {
		deed = s.generateDeed(ctx)
	}

	return quote, deed
}

// Refill tops up small pools. Called by the scheduler off-peak.
func (s *Service) Refill(ctx context.Context) {
	if s.muse == nil {
		return
	}

	if count, err := s.db.QuoteCount(ctx); err == nil && count < refillThreshold {
		s.generateQuote(ctx)
	}

	if count, err := s.db.DeedCount(ctx); err == nil && count < refillThreshold {
		s.generateDeed(ctx)
	}
}

func (s *Service) generateQuote(ctx context.Context) *domain.Quote {
	if s.muse == nil {
		return nil
	}

	text, author, err := s.muse.Quote(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to generate quote",
			"error", err)

		return nil
	}

	exists, err := s.db.QuoteExists(ctx, text)
	if err != nil || exists {
		return &domain.Quote{Text: text, Author: author}
	}

	if err = s.db.AddQuote(ctx, text, author); err != nil {
		s.log.ErrorContext(ctx, "Failed to store quote",
			"error", err)
	}

	return &domain.Quote{Text: text, Author: author}
}

func (s *Service) generateDeed(ctx context.Context) *domain.Deed {
	if s.muse == nil {
		return nil
	}

	text, err := s.muse.Deed(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to generate deed",
			"error", err)

		return nil
	}

	exists, err := s.db.DeedExists(ctx, text)
	if err != nil || exists {
		return &domain.Deed{Text: text}
	}

	if err = s.db.AddDeed(ctx, text); err != nil {
		s.log.ErrorContext(ctx, "Failed to store deed",
			"error", err)
	}

	return &domain.Deed{Text: text}
}
