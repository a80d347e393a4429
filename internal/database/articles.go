package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"brightside/internal/domain"

	"github.com/google/uuid"
)

const cachedArticlesLimit = 20

const articleColumns = `a.id, a.title, a.summary, a.source, a.url, a.date,
a.category, a.image_url, a.sentiment,
(select count(*) from likes as l where l.article_id = a.id),
(select count(*) from dislikes as d where d.article_id = a.id)`

// CachedArticles returns the newest stored articles for an exact category
// label. Any query failure degrades to an empty list: a broken cache must
// read as a cache miss, not break the fetch.
func (d *Database) CachedArticles(ctx context.Context, label string) []domain.Article {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}

	query := fmt.Sprintf(`select %s
	from articles as a
	where a.category = ?
	order by a.created_at desc, a.rowid desc
	limit %d`, articleColumns, cachedArticlesLimit)

	rows, err := d.db.QueryContext(ctx, query, label)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to query cached articles",
			"error", err,
			"label", label)

		return nil
	}
	defer d.closeRows(ctx, rows, "CachedArticles")

	articles, err := scanArticles(rows)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to scan cached articles",
			"error", err,
			"label", label)

		return nil
	}

	return articles
}

// SaveArticles upserts drafts by URL inside one transaction and returns
// the stored rows in input order. On any failure it returns nil so the
// caller can keep serving the volatile drafts.
func (d *Database) SaveArticles(
	ctx context.Context,
	label string,
	drafts []domain.Draft,
) []domain.Article {
	if len(drafts) == 0 {
		return nil
	}

	label = strings.TrimSpace(label)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to begin save transaction",
			"error", err,
			"label", label,
			"draftCount", len(drafts))

		return nil
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `insert into articles (id, title, summary, source, url, date, category, sentiment)
	values (?, ?, ?, ?, ?, ?, ?, ?)
	on conflict (url) do update set
	title = excluded.title,
	summary = excluded.summary,
	source = excluded.source,
	date = excluded.date,
	category = excluded.category,
	sentiment = excluded.sentiment
	returning id, image_url`

	articles := make([]domain.Article, 0, len(drafts))
	for _, draft := range drafts {
		draftURL := strings.TrimSpace(draft.URL)
		if draftURL == "" {
			continue
		}

		category := strings.TrimSpace(draft.Category)
		if category == "" {
			category = label
		}

		var (
			idStr    string
			imageURL string
		)
		err = tx.QueryRowContext(ctx, query,
			uuid.New().String(),
			strings.TrimSpace(draft.Title),
			strings.TrimSpace(draft.Summary),
			strings.TrimSpace(draft.Source),
			draftURL,
			normalizeDate(draft.Date),
			category,
			draft.Sentiment,
		).Scan(&idStr, &imageURL)
		if err != nil {
			d.log.ErrorContext(ctx, "Failed to upsert article",
				"error", err,
				"label", label,
				"url", draftURL)

			return nil
		}

		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			d.log.ErrorContext(ctx, "Stored article has malformed id",
				"error", parseErr,
				"id", idStr,
				"url", draftURL)

			return nil
		}

		stored := domain.Article{ID: id, Draft: draft, ImageURL: imageURL}
		stored.URL = draftURL
		stored.Category = category
		stored.Date = normalizeDate(draft.Date)
		articles = append(articles, stored)
	}

	if err = tx.Commit(); err != nil {
		d.log.ErrorContext(ctx, "Failed to commit saved articles",
			"error", err,
			"label", label,
			"articleCount", len(articles))

		return nil
	}

	return articles
}

func (d *Database) ArticleByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	query := fmt.Sprintf(`select %s from articles as a where a.id = ?`, articleColumns)

	rows, err := d.db.QueryContext(ctx, query, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer d.closeRows(ctx, rows, "ArticleByID")

	articles, err := scanArticles(rows)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, nil
	}

	return &articles[0], nil
}

func (d *Database) UpdateArticleImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return errors.New("image URL is empty")
	}

	query := "update articles set image_url = ? where id = ?"

	_, err := d.db.ExecContext(ctx, query, imageURL, id.String())

	return err
}

// ArticleAudio returns the stored narration for an article, empty when
// none was synthesized yet.
func (d *Database) ArticleAudio(ctx context.Context, id uuid.UUID) (string, error) {
	query := "select audio_base64 from articles where id = ?"

	var audio string
	err := d.db.QueryRowContext(ctx, query, id.String()).Scan(&audio)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to execute query: %w", err)
	}

	return audio, nil
}

func (d *Database) SetArticleAudio(ctx context.Context, id uuid.UUID, audioBase64 string) error {
	query := "update articles set audio_base64 = ? where id = ?"

	_, err := d.db.ExecContext(ctx, query, audioBase64, id.String())

	return err
}

// ArticlesMissingImages feeds the background illustration sweep.
func (d *Database) ArticlesMissingImages(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`select %s
	from articles as a
	where a.image_url = ''
	order by a.created_at desc, a.rowid desc
	limit ?`, articleColumns)

	rows, err := d.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer d.closeRows(ctx, rows, "ArticlesMissingImages")

	return scanArticles(rows)
}

// PruneArticles deletes cached articles older than the cutoff, keeping
// anything a user favorited.
func (d *Database) PruneArticles(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `delete from articles
	where created_at < ?
	and id not in (select article_id from favorites)`

	res, err := d.db.ExecContext(ctx, query, olderThan.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return res.RowsAffected()
}

func scanArticles(rows *sql.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		var (
			a     domain.Article
			idStr string
		)
		err := rows.Scan(&idStr, &a.Title, &a.Summary, &a.Source, &a.URL, &a.Date,
			&a.Category, &a.ImageURL, &a.Sentiment, &a.LikeCount, &a.DislikeCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		a.ID, err = uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse article id: %w", err)
		}

		a.Date = normalizeDate(a.Date)
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return articles, nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// normalizeDate truncates timestamp-like values to their date component.
// Unrecognized values pass through trimmed.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	if len(raw) > 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}
