package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brightside/internal/domain"
)

func (d *Database) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	query := "select id, text, author from quotes order by random() limit 1"

	var q domain.Quote
	err := d.db.QueryRowContext(ctx, query).Scan(&q.ID, &q.Text, &q.Author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return &q, nil
}

func (d *Database) RandomDeed(ctx context.Context) (*domain.Deed, error) {
	query := "select id, text from deeds order by random() limit 1"

	var deed domain.Deed
	err := d.db.QueryRowContext(ctx, query).Scan(&deed.ID, &deed.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return &deed, nil
}

func (d *Database) QuoteExists(ctx context.Context, text string) (bool, error) {
	return d.textExists(ctx, "quotes", text)
}

func (d *Database) DeedExists(ctx context.Context, text string) (bool, error) {
	return d.textExists(ctx, "deeds", text)
}

func (d *Database) textExists(ctx context.Context, table, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}

	query := fmt.Sprintf("select count(*) from %s where text = ?", table)

	var count int64
	if err := d.db.QueryRowContext(ctx, query, text).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to execute query: %w", err)
	}

	return count > 0, nil
}

func (d *Database) AddQuote(ctx context.Context, text, author string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("quote text is empty")
	}

	query := "insert or ignore into quotes (text, author) values (?, ?)"

	_, err := d.db.ExecContext(ctx, query, text, strings.TrimSpace(author))

	return err
}

func (d *Database) AddDeed(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("deed text is empty")
	}

	query := "insert or ignore into deeds (text) values (?)"

	_, err := d.db.ExecContext(ctx, query, text)

	return err
}

func (d *Database) QuoteCount(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, "select count(*) from quotes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return count, nil
}

func (d *Database) DeedCount(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.QueryRowContext(ctx, "select count(*) from deeds").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}
	return count, nil
}
