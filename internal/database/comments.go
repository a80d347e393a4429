package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"brightside/internal/domain"

	"github.com/google/uuid"
)

func (d *Database) AddComment(
	ctx context.Context,
	articleID uuid.UUID,
	user *domain.User,
	text string,
) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("comment text is empty")
	}
	if user == nil {
		return nil, errors.New("user is required")
	}

	query := `insert into comments (article_id, user_id, text)
	values (?, ?, ?)
	returning id, created_at`

	var (
		id         int64
		createdRaw string
	)
	err := d.db.QueryRowContext(ctx, query, articleID.String(), user.ID.String(), text).
		Scan(&id, &createdRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return &domain.Comment{
		ID:        id,
		ArticleID: articleID,
		UserID:    user.ID,
		Username:  user.Username,
		Text:      text,
		CreatedAt: parseStoredTime(createdRaw),
	}, nil
}

func (d *Database) Comments(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	query := `select c.id, c.user_id, u.username, c.text, c.created_at
	from comments as c
	join users as u on u.id = c.user_id
	where c.article_id = ?
	order by c.created_at asc, c.id asc`

	rows, err := d.db.QueryContext(ctx, query, articleID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer d.closeRows(ctx, rows, "Comments")

	var comments []domain.Comment
	for rows.Next() {
		var (
			c          domain.Comment
			userIDStr  string
			createdRaw string
		)
		if err = rows.Scan(&c.ID, &userIDStr, &c.Username, &c.Text, &createdRaw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		c.ArticleID = articleID
		c.UserID, err = uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse user id: %w", err)
		}
		c.CreatedAt = parseStoredTime(createdRaw)

		comments = append(comments, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return comments, nil
}

// DeleteComment removes a comment only when the requester wrote it.
func (d *Database) DeleteComment(ctx context.Context, id int64, userID uuid.UUID) bool {
	query := "delete from comments where id = ? and user_id = ?"

	res, err := d.db.ExecContext(ctx, query, id, userID.String())
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to delete comment",
			"error", err,
			"commentID", id,
			"userID", userID.String())

		return false
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false
	}

	return affected > 0
}

func parseStoredTime(raw string) time.Time {
	layouts := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
