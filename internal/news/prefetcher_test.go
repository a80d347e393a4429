package news

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"brightside/internal/domain"
)

type stubIllustrator struct {
	mu    sync.Mutex
	calls int
}

func (s *stubIllustrator) Illustrate(
	_ context.Context,
	_ string,
	_ string,
) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	return "data:image/png;base64,aGVsbG8=", nil
}

func (s *stubIllustrator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Fatalf("condition not met within %v", timeout)
}

func TestPrefetcherGeneratesAndStoresImage(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	article := db.SaveArticles(ctx, "Sport", testDrafts("https://example.com/match"))[0]

	stub := &stubIllustrator{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	p := newPrefetcher(db, stub, log, 0, time.Millisecond)
	defer p.Stop()

	p.Enqueue(article)

	waitFor(t, 2*time.Second, func() bool {
		cached := db.CachedArticles(ctx, "Sport")
		return len(cached) == 1 && cached[0].ImageURL != ""
	})

	if got := stub.callCount(); got != 1 {
		t.Fatalf("expected 1 generation, got %d", got)
	}
}

func TestPrefetcherSkipsArticlesWithImages(t *testing.T) {
	db := newTestDB(t)

	stub := &stubIllustrator{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	p := newPrefetcher(db, stub, log, 0, time.Millisecond)
	defer p.Stop()

	article := domain.Article{ImageURL: "data:image/png;base64,already"}
	article.Title = "Already illustrated"
	p.Enqueue(article)

	time.Sleep(50 * time.Millisecond)

	if got := stub.callCount(); got != 0 {
		t.Fatalf("expected no generations, got %d", got)
	}
}

func TestPrefetcherDeduplicatesInFlightJobs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	article := db.SaveArticles(ctx, "Sport", testDrafts("https://example.com/match"))[0]

	stub := &stubIllustrator{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A long start delay keeps jobs queued while we enqueue duplicates.
	p := newPrefetcher(db, stub, log, 50*time.Millisecond, time.Millisecond)
	defer p.Stop()

	p.Enqueue(article)
	p.Enqueue(article)
	p.Enqueue(article)

	waitFor(t, 2*time.Second, func() bool {
		return stub.callCount() >= 1
	})
	time.Sleep(50 * time.Millisecond)

	if got := stub.callCount(); got != 1 {
		t.Fatalf("expected a single generation for duplicate enqueues, got %d", got)
	}
}

func TestPrefetcherWithoutIllustratorIsInert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	article := db.SaveArticles(ctx, "Sport", testDrafts("https://example.com/match"))[0]

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	p := newPrefetcher(db, nil, log, 0, time.Millisecond)
	defer p.Stop()

	// Must not panic or queue anything.
	p.Enqueue(article)
}
