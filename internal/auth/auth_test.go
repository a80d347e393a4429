package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"brightside/internal/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"), log)
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return New(db, "test-secret", time.Hour, log)
}

func TestRegisterLoginVerifyRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "mario", "sunshine")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.AvatarURL == "" {
		t.Fatalf("expected a generated avatar URL")
	}

	verified, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if verified != user.ID {
		t.Fatalf("token subject mismatch: %s vs %s", verified, user.ID)
	}

	loggedIn, loginToken, err := svc.Login(ctx, "mario", "sunshine")
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("expected the same user on login")
	}
	if loginToken == "" {
		t.Fatalf("expected a login token")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "mario", "sunshine"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, _, err := svc.Login(ctx, "mario", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Register(context.Background(), "mario", "abc")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "mario", "sunshine"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, _, err := svc.Register(ctx, "mario", "different")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestVerifyRejectsGarbageToken(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestFriendlyMessageMapping(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrInvalidCredentials, "Nome utente o password errati."},
		{ErrUsernameTaken, "Questo nome utente è già in uso."},
		{ErrWeakPassword, "La password deve avere almeno 6 caratteri."},
		{ErrInvalidToken, "Sessione scaduta, accedi di nuovo."},
		{errors.New("connection refused"), "Qualcosa è andato storto. Riprova."},
	}

	for _, tc := range cases {
		if got := FriendlyMessage(tc.err); got != tc.want {
			t.Fatalf("FriendlyMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
