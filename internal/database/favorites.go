package database

import (
	"context"
	"fmt"

	"brightside/internal/domain"

	"github.com/google/uuid"
)

// ToggleFavorite flips the (user, article) favorite pair and returns the
// new state. Store failures degrade to "not favorited".
func (d *Database) ToggleFavorite(ctx context.Context, userID, articleID uuid.UUID) bool {
	existsQuery := "select count(*) from favorites where user_id = ? and article_id = ?"

	var count int64
	err := d.db.QueryRowContext(ctx, existsQuery, userID.String(), articleID.String()).
		Scan(&count)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to check favorite",
			"error", err,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}

	if count > 0 {
		deleteQuery := "delete from favorites where user_id = ? and article_id = ?"
		if _, err = d.db.ExecContext(ctx, deleteQuery, userID.String(), articleID.String()); err != nil {
			d.log.ErrorContext(ctx, "Failed to remove favorite",
				"error", err,
				"userID", userID.String(),
				"articleID", articleID.String())
		}

		return false
	}

	insertQuery := "insert or ignore into favorites (user_id, article_id) values (?, ?)"
	if _, err = d.db.ExecContext(ctx, insertQuery, userID.String(), articleID.String()); err != nil {
		d.log.ErrorContext(ctx, "Failed to add favorite",
			"error", err,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}

	return true
}

func (d *Database) FavoriteIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	query := "select article_id from favorites where user_id = ?"

	rows, err := d.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer d.closeRows(ctx, rows, "FavoriteIDs")

	ids := make(map[uuid.UUID]struct{})
	for rows.Next() {
		var idStr string
		if err = rows.Scan(&idStr); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		id, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			continue
		}
		ids[id] = struct{}{}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return ids, nil
}

// FavoriteArticles lists the user's favorited articles, newest favorite
// first. Degrades to empty on failure.
func (d *Database) FavoriteArticles(ctx context.Context, userID uuid.UUID) []domain.Article {
	query := fmt.Sprintf(`select %s
	from articles as a
	join favorites as f on f.article_id = a.id
	where f.user_id = ?
	order by f.created_at desc, a.rowid desc`, articleColumns)

	rows, err := d.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to query favorite articles",
			"error", err,
			"userID", userID.String())

		return nil
	}
	defer d.closeRows(ctx, rows, "FavoriteArticles")

	articles, err := scanArticles(rows)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to scan favorite articles",
			"error", err,
			"userID", userID.String())

		return nil
	}

	return articles
}
