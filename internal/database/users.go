package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brightside/internal/domain"

	"github.com/google/uuid"
)

var ErrUsernameTaken = errors.New("username is taken")

func (d *Database) CreateUser(
	ctx context.Context,
	username string,
	avatarURL string,
	passwordHash string,
) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is empty")
	}

	id := uuid.New()

	query := "insert into users (id, username, avatar_url, password_hash) values (?, ?, ?, ?)"

	_, err := d.db.ExecContext(ctx, query, id.String(), username, avatarURL, passwordHash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	return &domain.User{ID: id, Username: username, AvatarURL: avatarURL}, nil
}

func (d *Database) UserByUsername(
	ctx context.Context,
	username string,
) (*domain.User, string, error) {
	username = strings.TrimSpace(username)

	query := "select id, username, avatar_url, password_hash from users where username = ?"

	var (
		u     domain.User
		idStr string
		hash  string
	)
	err := d.db.QueryRowContext(ctx, query, username).
		Scan(&idStr, &u.Username, &u.AvatarURL, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute query: %w", err)
	}

	u.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse user id: %w", err)
	}

	return &u, hash, nil
}

func (d *Database) UserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := "select id, username, avatar_url from users where id = ?"

	var (
		u     domain.User
		idStr string
	)
	err := d.db.QueryRowContext(ctx, query, id.String()).
		Scan(&idStr, &u.Username, &u.AvatarURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	u.ID = id

	return &u, nil
}

func (d *Database) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	query := "update users set avatar_url = ? where id = ?"

	_, err := d.db.ExecContext(ctx, query, strings.TrimSpace(avatarURL), id.String())

	return err
}
