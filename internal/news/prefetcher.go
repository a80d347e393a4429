package news

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"brightside/internal/ai"
	"brightside/internal/database"
	"brightside/internal/domain"

	"github.com/google/uuid"
)

const (
	prefetchQueueSize  = 64
	prefetchStartDelay = 8 * time.Second
	prefetchInterval   = 6 * time.Second
	prefetchJobTimeout = 2 * time.Minute
)

type prefetchJob struct {
	id      uuid.UUID
	title   string
	summary string
}

// Prefetcher is the single owner of background image generation: one
// queue, one concurrency slot, strictly sequential requests with a fixed
// delay between them, and in-flight tracking keyed by article identity so
// a job is never queued twice.
type Prefetcher struct {
	db          *database.Database
	illustrator ai.Illustrator
	queue       chan prefetchJob
	inFlight    map[uuid.UUID]struct{}
	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	startDelay  time.Duration
	interval    time.Duration
	log         *slog.Logger
}

func NewPrefetcher(
	db *database.Database,
	illustrator ai.Illustrator,
	log *slog.Logger,
) *Prefetcher {
	return newPrefetcher(db, illustrator, log, prefetchStartDelay, prefetchInterval)
}

func newPrefetcher(
	db *database.Database,
	illustrator ai.Illustrator,
	log *slog.Logger,
	startDelay time.Duration,
	interval time.Duration,
) *Prefetcher {
	ctx, cancel := context.WithCancel(context.Background())

	p := &Prefetcher{
		db:          db,
		illustrator: illustrator,
		queue:       make(chan prefetchJob, prefetchQueueSize),
		inFlight:    make(map[uuid.UUID]struct{}),
		ctx:         ctx,
		cancel:      cancel,
		startDelay:  startDelay,
		interval:    interval,
		log:         log,
	}

	go p.processQueue()

	return p
}

// Enqueue schedules image generation for an article that lacks one.
// Articles already illustrated or already in flight are skipped; a full
// queue drops the job rather than blocking the caller.
func (p *Prefetcher) Enqueue(a domain.Article) {
	if p.illustrator == nil || a.ImageURL != "" {
		return
	}

	p.mu.Lock()
	if _, ok := p.inFlight[a.ID]; ok {
		p.mu.Unlock()
		return
	}
	p.inFlight[a.ID] = struct{}{}
	p.mu.Unlock()

	job := prefetchJob{id: a.ID, title: a.Title, summary: a.Summary}

	select {
	case p.queue <- job:
	default:
		p.log.WarnContext(p.ctx, "Prefetch queue is full",
			"articleID", a.ID.String(),
			"queueLen", len(p.queue))

		p.release(a.ID)
	}
}

func (p *Prefetcher) Stop() {
	p.cancel()
}

func (p *Prefetcher) processQueue() {
	// Let foreground fetches finish before spending image quota.
	select {
	case <-time.After(p.startDelay):
	case <-p.ctx.Done():
		return
	}

	for {
		select {
		case job := <-p.queue:
			p.handleJob(job)

			select {
			case <-time.After(p.interval):
			case <-p.ctx.Done():
				return
			}
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Prefetcher) handleJob(job prefetchJob) {
	defer p.release(job.id)

	ctx, cancel := context.WithTimeout(p.ctx, prefetchJobTimeout)
	defer cancel()

	imageURL, err := p.illustrator.Illustrate(ctx, job.title, job.summary)
	if err != nil {
		p.log.ErrorContext(ctx, "Failed to generate article image",
			"error", err,
			"articleID", job.id.String(),
			"queueLen", len(p.queue))

		return
	}

	if err = p.db.UpdateArticleImage(ctx, job.id, imageURL); err != nil {
		p.log.ErrorContext(ctx, "Failed to store article image",
			"error", err,
			"articleID", job.id.String())
	}
}

func (p *Prefetcher) release(id uuid.UUID) {
	p.mu.Lock()
	delete(p.inFlight, id)
	p.mu.Unlock()
}
