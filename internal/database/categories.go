package database

import (
	"context"
	"strings"

	"brightside/internal/domain"

	"github.com/google/uuid"
)

// Categories lists global rows plus the user's own. The caller falls back
// to domain.DefaultCategories on error, so errors propagate here.
func (d *Database) Categories(
	ctx context.Context,
	userID *uuid.UUID,
) ([]domain.Category, error) {
	query := `select id, label, value, user_id
	from categories
	where user_id is null or user_id = ?
	order by id`

	var userIDStr string
	if userID != nil {
		userIDStr = userID.String()
	}

	rows, err := d.db.QueryContext(ctx, query, userIDStr)
	if err != nil {
		return nil, err
	}
	defer d.closeRows(ctx, rows, "Categories")

	var categories []domain.Category
	for rows.Next() {
		var (
			c        domain.Category
			ownerStr *string
		)
		if err = rows.Scan(&c.ID, &c.Label, &c.Value, &ownerStr); err != nil {
			return nil, err
		}

		if ownerStr != nil {
			owner, parseErr := uuid.Parse(*ownerStr)
			if parseErr == nil {
				c.OwnerID = &owner
			}
		}

		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// AddCategory inserts a user-scoped category unless its label
// case-insensitively matches a default or an existing global-or-own row.
// Returns nil on duplicate and on any error: "not added" is never a
// crash for the caller.
func (d *Database) AddCategory(
	ctx context.Context,
	ownerID uuid.UUID,
	label string,
	value string,
) *domain.Category {
	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	if label == "" || value == "" {
		return nil
	}

	for _, def := range domain.DefaultCategories {
		if strings.EqualFold(def.Label, label) {
			return nil
		}
	}

	existsQuery := `select count(*) from categories
	where lower(label) = lower(?)
	and (user_id is null or user_id = ?)`

	var count int64
	err := d.db.QueryRowContext(ctx, existsQuery, label, ownerID.String()).Scan(&count)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to check category duplicates",
			"error", err,
			"label", label,
			"ownerID", ownerID.String())

		return nil
	}
	if count > 0 {
		return nil
	}

	insertQuery := `insert into categories (label, value, user_id)
	values (?, ?, ?)
	returning id`

	var id int64
	err = d.db.QueryRowContext(ctx, insertQuery, label, value, ownerID.String()).Scan(&id)
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to insert category",
			"error", err,
			"label", label,
			"ownerID", ownerID.String())

		return nil
	}

	owner := ownerID

	return &domain.Category{ID: id, Label: label, Value: value, OwnerID: &owner}
}

// DeleteCategory removes a row only when it belongs to the requester.
// Rows owned by someone else (or by nobody) silently stay.
func (d *Database) DeleteCategory(ctx context.Context, id int64, ownerID uuid.UUID) bool {
	query := "delete from categories where id = ? and user_id = ?"

	res, err := d.db.ExecContext(ctx, query, id, ownerID.String())
	if err != nil {
		d.log.ErrorContext(ctx, "Failed to delete category",
			"error", err,
			"categoryID", id,
			"ownerID", ownerID.String())

		return false
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false
	}

	return affected > 0
}
