package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ToggleLike flips the user's like for an article and returns the new
// state. A standing dislike is removed first: the pair is mutually
// exclusive per (user, article).
func (d *Database) ToggleLike(ctx context.Context, userID, articleID uuid.UUID) bool {
	return d.toggleReaction(ctx, "likes", "dislikes", userID, articleID)
}

// ToggleDislike is the mirror of ToggleLike.
func (d *Database) ToggleDislike(ctx context.Context, userID, articleID uuid.UUID) bool {
	return d.toggleReaction(ctx, "dislikes", "likes", userID, articleID)
}

func (d *Database) toggleReaction(
	ctx context.Context,
	table string,
	opposite string,
	userID uuid.UUID,
	articleID uuid.UUID,
) bool {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to begin reaction transaction",
			"error", err,
			"table", table,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery := fmt.Sprintf(
		"delete from %s where user_id = ? and article_id = ?", opposite)
	if _, err = tx.ExecContext(ctx, clearQuery, userID.String(), articleID.String()); err != nil {
		d.log.ErrorContext(ctx, "Failed to clear opposite reaction",
			"error", err,
			"table", opposite,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}

	existsQuery := fmt.Sprintf(
		"select count(*) from %s where user_id = ? and article_id = ?", table)

	var count int64
	if err = tx.QueryRowContext(ctx, existsQuery, userID.String(), articleID.String()).
		Scan(&count); err != nil {
		d.log.ErrorContext(ctx, "Failed to check reaction",
			"error", err,
			"table", table,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}

	active := count == 0
	var toggleQuery string
	if active {
		toggleQuery = fmt.Sprintf(
			"insert or ignore into %s (user_id, article_id) values (?, ?)", table)
	} else {
		toggleQuery = fmt.Sprintf(
			"delete from %s where user_id = ? and article_id = ?", table)
	}

	if _, err = tx.ExecContext(ctx, toggleQuery, userID.String(), articleID.String()); err != nil {
		d.log.ErrorContext(ctx, "Failed to toggle reaction",
			"error", err,
			"table", table,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}

	if err = tx.Commit(); err != nil {
		d.log.ErrorContext(ctx, "Failed to commit reaction",
			"error", err,
			"table", table,
			"userID", userID.String(),
			"articleID", articleID.String())

		return false
	}

	return active
}
