package scheduler

import (
	"context"
	"log/slog"
	"time"

	"brightside/internal/database"
	"brightside/internal/inspiration"
	"brightside/internal/news"

	"github.com/robfig/cron/v3"
)

const (
	HourlyImageSweepSpec   = "30 * * * *"
	NightlyMaintenanceSpec = "0 3 * * *"
	Timezone               = "UTC"
	TimezoneOffsetSeconds  = 0

	imageSweepBatchSize = 5
	jobTimeout          = 15 * time.Minute
	articleRetention    = 14 * 24 * time.Hour
)

type Scheduler struct {
	ctx         context.Context
	cron        *cron.Cron
	db          *database.Database
	prefetcher  *news.Prefetcher
	inspiration *inspiration.Service
	log         *slog.Logger
}

func New(
	ctx context.Context,
	db *database.Database,
	prefetcher *news.Prefetcher,
	insp *inspiration.Service,
	log *slog.Logger,
) *Scheduler {
	c := cron.New(cron.WithLocation(time.FixedZone(Timezone, TimezoneOffsetSeconds)))

	return &Scheduler{
		ctx:         ctx,
		cron:        c,
		db:          db,
		prefetcher:  prefetcher,
		inspiration: insp,
		log:         log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(HourlyImageSweepSpec, s.sweepMissingImages); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(NightlyMaintenanceSpec, s.nightlyMaintenance); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// sweepMissingImages enqueues stored articles without an image onto the
// prefetch queue in small batches, one sweep per hour.
func (s *Scheduler) sweepMissingImages() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	if ctx.Err() != nil {
		return
	}

	articles, err := s.db.ArticlesMissingImages(ctx, imageSweepBatchSize)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list articles missing images",
			"error", err,
			"batchSize", imageSweepBatchSize)

		return
	}

	for _, a := range articles {
		s.prefetcher.Enqueue(a)
	}

	if len(articles) > 0 {
		s.log.InfoContext(ctx, "Image sweep enqueued articles",
			"articleCount", len(articles))
	}
}

func (s *Scheduler) nightlyMaintenance() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	if ctx.Err() != nil {
		return
	}

	cutoff := time.Now().Add(-articleRetention)

	pruned, err := s.db.PruneArticles(ctx, cutoff)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to prune stale articles",
			"error", err,
			"cutoff", cutoff)
	} else if pruned > 0 {
		s.log.InfoContext(ctx, "Pruned stale articles",
			"prunedCount", pruned,
			"cutoff", cutoff)
	}

	s.inspiration.Refill(ctx)
}
