// Package news is the orchestration core: cache-first article loading
// with AI-generation fallback, just-in-time persistence for volatile
// articles, and background image prefetching.
package news

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"brightside/internal/ai"
	"brightside/internal/database"
	"brightside/internal/domain"
	"brightside/internal/metrics"

	"github.com/google/uuid"
)

const maxGeneratedArticles = 6

// NoticeNoNews is surfaced instead of an error when generation fails or
// returns nothing.
const NoticeNoNews = "Nessuna buona notizia trovata al momento. Riprova più tardi."

var ErrUnavailable = errors.New("generation is unavailable")

type Service struct {
	db          *database.Database
	searcher    ai.Searcher
	illustrator ai.Illustrator
	narrator    ai.Narrator
	prefetcher  *Prefetcher
	log         *slog.Logger
}

// Result is what the transport renders: items plus an optional
// user-facing notice. Fetching never fails outright.
type Result struct {
	Items  []domain.NewsItem `json:"articles"`
	Notice string            `json:"notice,omitempty"`
}

func NewService(
	db *database.Database,
	searcher ai.Searcher,
	illustrator ai.Illustrator,
	narrator ai.Narrator,
	prefetcher *Prefetcher,
	log *slog.Logger,
) *Service {
	return &Service{
		db:          db,
		searcher:    searcher,
		illustrator: illustrator,
		narrator:    narrator,
		prefetcher:  prefetcher,
		log:         log,
	}
}

// FetchNews loads articles for a category label. A non-empty cache
// short-circuits the AI call; generation runs only on a miss or a forced
// refresh. Generated articles are upserted immediately and served with
// their assigned identifiers; if the upsert fails they are served
// volatile.
func (s *Service) FetchNews(
	ctx context.Context,
	query string,
	label string,
	forceAI bool,
) Result {
	label = strings.TrimSpace(label)

	if !forceAI {
		cached := s.db.CachedArticles(ctx, label)
		if len(cached) > 0 {
			metrics.CacheHits.Inc()
			s.enqueuePrefetch(cached)

			return Result{Items: itemsFromArticles(cached, false)}
		}
	}

	metrics.CacheMisses.Inc()

	if s.searcher == nil {
		return Result{Notice: NoticeNoNews}
	}

	drafts, err := s.searcher.SearchNews(ctx, query, maxGeneratedArticles)
	if err != nil {
		s.log.ErrorContext(ctx, "News search failed",
			"error", err,
			"query", query,
			"label", label)

		return Result{Notice: NoticeNoNews}
	}
	if len(drafts) == 0 {
		return Result{Notice: NoticeNoNews}
	}

	saved := s.db.SaveArticles(ctx, label, drafts)
	if saved == nil {
		items := make([]domain.NewsItem, 0, len(drafts))
		for _, draft := range drafts {
			items = append(items, domain.ItemFromDraft(draft))
		}

		return Result{Items: items}
	}

	s.enqueuePrefetch(saved)

	return Result{Items: itemsFromArticles(saved, true)}
}

// Favorites lists the user's saved articles.
func (s *Service) Favorites(ctx context.Context, userID uuid.UUID) []domain.NewsItem {
	return itemsFromArticles(s.db.FavoriteArticles(ctx, userID), false)
}

// ToggleFavorite flips the favorite pair, persisting a volatile article
// first. The join write never runs without a store-assigned identifier;
// when one cannot be obtained the whole operation is a silent no-op.
func (s *Service) ToggleFavorite(
	ctx context.Context,
	userID uuid.UUID,
	item domain.NewsItem,
) (bool, bool) {
	id, ok := s.ensureID(ctx, item)
	if !ok {
		return false, false
	}

	return s.db.ToggleFavorite(ctx, userID, id), true
}

func (s *Service) ToggleLike(
	ctx context.Context,
	userID uuid.UUID,
	item domain.NewsItem,
) (bool, bool) {
	id, ok := s.ensureID(ctx, item)
	if !ok {
		return false, false
	}

	return s.db.ToggleLike(ctx, userID, id), true
}

func (s *Service) ToggleDislike(
	ctx context.Context,
	userID uuid.UUID,
	item domain.NewsItem,
) (bool, bool) {
	id, ok := s.ensureID(ctx, item)
	if !ok {
		return false, false
	}

	return s.db.ToggleDislike(ctx, userID, id), true
}

func (s *Service) AddComment(
	ctx context.Context,
	user *domain.User,
	item domain.NewsItem,
	text string,
) (*domain.Comment, error) {
	id, ok := s.ensureID(ctx, item)
	if !ok {
		return nil, errors.New("article has no stable identifier")
	}

	return s.db.AddComment(ctx, id, user, text)
}

func (s *Service) Comments(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	return s.db.Comments(ctx, articleID)
}

func (s *Service) DeleteComment(ctx context.Context, id int64, userID uuid.UUID) bool {
	return s.db.DeleteComment(ctx, id, userID)
}

// Narrate returns article audio, synthesizing and storing it on first
// request.
func (s *Service) Narrate(ctx context.Context, articleID uuid.UUID) (string, error) {
	audio, err := s.db.ArticleAudio(ctx, articleID)
	if err != nil {
		return "", err
	}
	if audio != "" {
		return audio, nil
	}

	if s.narrator == nil {
		return "", ErrUnavailable
	}

	article, err := s.db.ArticleByID(ctx, articleID)
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", errors.New("article not found")
	}

	audio, err = s.narrator.Narrate(ctx, article.Title+". "+article.Summary)
	if err != nil {
		return "", err
	}

	if storeErr := s.db.SetArticleAudio(ctx, articleID, audio); storeErr != nil {
		s.log.ErrorContext(ctx, "Failed to store narration",
			"error", storeErr,
			"articleID", articleID.String())
	}

	return audio, nil
}

// Illustrate generates an article image on demand, bypassing the
// background queue.
func (s *Service) Illustrate(ctx context.Context, articleID uuid.UUID) (string, error) {
	article, err := s.db.ArticleByID(ctx, articleID)
	if err != nil {
		return "", err
	}
	if article == nil {
		return "", errors.New("article not found")
	}
	if article.ImageURL != "" {
		return article.ImageURL, nil
	}

	if s.illustrator == nil {
		return "", ErrUnavailable
	}

	imageURL, err := s.illustrator.Illustrate(ctx, article.Title, article.Summary)
	if err != nil {
		return "", err
	}

	if storeErr := s.db.UpdateArticleImage(ctx, articleID, imageURL); storeErr != nil {
		s.log.ErrorContext(ctx, "Failed to store article image",
			"error", storeErr,
			"articleID", articleID.String())
	}

	return imageURL, nil
}

func (s *Service) ensureID(ctx context.Context, item domain.NewsItem) (uuid.UUID, bool) {
	if id, ok := item.ParseID(); ok {
		return id, true
	}

	if strings.TrimSpace(item.URL) == "" {
		return uuid.Nil, false
	}

	saved := s.db.SaveArticles(ctx, item.Category, []domain.Draft{item.AsDraft()})
	if len(saved) != 1 {
		return uuid.Nil, false
	}

	return saved[0].ID, true
}

func (s *Service) enqueuePrefetch(articles []domain.Article) {
	if s.prefetcher == nil {
		return
	}

	for _, a := range articles {
		s.prefetcher.Enqueue(a)
	}
}

func itemsFromArticles(articles []domain.Article, isNew bool) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, domain.ItemFromArticle(a, isNew))
	}
	return items
}
