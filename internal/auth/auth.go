package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"brightside/internal/database"
	"brightside/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service struct {
	db     *database.Database
	secret []byte
	ttl    time.Duration
	log    *slog.Logger
}

func New(db *database.Database, secret string, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		db:     db,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log,
	}
}

// Register creates the user row on first sign-in and returns a signed
// token.
func (s *Service) Register(
	ctx context.Context,
	username string,
	password string,
) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	avatarURL := fmt.Sprintf(
		"https://api.dicebear.com/9.x/initials/svg?seed=%s", username)

	user, err := s.db.CreateUser(ctx, username, avatarURL, string(hash))
	if err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *Service) Login(
	ctx context.Context,
	username string,
	password string,
) (*domain.User, string, error) {
	user, hash, err := s.db.UserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Verify resolves the user behind a bearer token. Sign-out is a client
// token discard; there is no server-side session row to clear.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}

func (s *Service) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// FriendlyMessage maps auth errors onto fixed user-readable templates by
// substring. The error wording and this mapping must change together.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid login credentials"):
		return "Nome utente o password errati."
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "taken"):
		return "Questo nome utente è già in uso."
	case strings.Contains(msg, "password"):
		return "La password deve avere almeno 6 caratteri."
	case strings.Contains(msg, "token"):
		return "Sessione scaduta, accedi di nuovo."
	default:
		return "Qualcosa è andato storto. Riprova."
	}
}
