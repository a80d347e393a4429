package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"brightside/internal/auth"
	"brightside/internal/database"
	"brightside/internal/domain"
	"brightside/internal/inspiration"
	"brightside/internal/news"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.New(context.Background(), filepath.Join(t.TempDir(), "test.sqlite"), log)
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	newsSvc := news.NewService(db, nil, nil, nil, nil, log)
	authSvc := auth.New(db, "test-secret", time.Hour, log)
	inspSvc := inspiration.New(db, nil, log)

	return New(newsSvc, authSvc, inspSvc, db, log)
}

func doJSON(
	t *testing.T,
	s *Server,
	method string,
	target string,
	body string,
	token string,
) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}

	return rec, payload
}

func registerTestUser(t *testing.T, s *Server, username string) string {
	t.Helper()

	rec, payload := doJSON(t, s, http.MethodPost, "/v1/auth/register",
		`{"username":"`+username+`","password":"sunshine"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %v", rec.Code, payload)
	}

	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("expected a token, got %v", payload)
	}

	return token
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	s := newTestServer(t)

	registerTestUser(t, s, "mario")

	rec, payload := doJSON(t, s, http.MethodPost, "/v1/auth/login",
		`{"username":"mario","password":"sunshine"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %v", rec.Code, payload)
	}

	rec, payload = doJSON(t, s, http.MethodPost, "/v1/auth/login",
		`{"username":"mario","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if payload["error"] != "Nome utente o password errati." {
		t.Fatalf("unexpected error message: %v", payload["error"])
	}
}

func TestCommentsWithMalformedIDIsNeutralNoOp(t *testing.T) {
	s := newTestServer(t)

	rec, payload := doJSON(t, s, http.MethodGet, "/v1/articles/not-a-uuid/comments", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	comments, ok := payload["comments"].([]any)
	if !ok || len(comments) != 0 {
		t.Fatalf("expected an empty comment list, got %v", payload)
	}
}

func TestNarrateWithMalformedIDIsNeutralNoOp(t *testing.T) {
	s := newTestServer(t)

	rec, payload := doJSON(t, s, http.MethodPost, "/v1/articles/xyz/audio", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["audioBase64"] != "" {
		t.Fatalf("expected empty audio, got %v", payload)
	}
}

func TestToggleFavoriteRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec, _ := doJSON(t, s, http.MethodPost, "/v1/articles/favorite",
		`{"title":"x","url":"https://example.com/a"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestToggleFavoritePersistsVolatileOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s, "anna")

	rec, payload := doJSON(t, s, http.MethodPost, "/v1/articles/favorite",
		`{"title":"Volatile","url":"https://example.com/v","category":"Scienza"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["favorite"] != true || payload["applied"] != true {
		t.Fatalf("expected an applied favorite, got %v", payload)
	}

	rec, payload = doJSON(t, s, http.MethodGet, "/v1/favorites", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	articles, ok := payload["articles"].([]any)
	if !ok || len(articles) != 1 {
		t.Fatalf("expected 1 favorite, got %v", payload)
	}
}

func TestCategoriesAlwaysIncludeDefaults(t *testing.T) {
	s := newTestServer(t)

	rec, payload := doJSON(t, s, http.MethodGet, "/v1/categories", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	categories, ok := payload["categories"].([]any)
	if !ok || len(categories) < len(domain.DefaultCategories) {
		t.Fatalf("expected at least the defaults, got %v", payload)
	}
}

func TestAddDuplicateCategoryReturnsNull(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s, "carla")

	rec, payload := doJSON(t, s, http.MethodPost, "/v1/categories",
		`{"label":"Viaggi","value":"belle storie di viaggio"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", rec.Code, payload)
	}

	rec, payload = doJSON(t, s, http.MethodPost, "/v1/categories",
		`{"label":"viaggi","value":"altro"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a duplicate, got %d", rec.Code)
	}
	if payload["category"] != nil {
		t.Fatalf("expected a null category, got %v", payload)
	}
}

func TestUpdateAvatarOverHTTP(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s, "luca")

	rec, payload := doJSON(t, s, http.MethodPut, "/v1/profile/avatar",
		`{"avatarUrl":"https://example.com/avatar.png"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", rec.Code, payload)
	}

	user, ok := payload["user"].(map[string]any)
	if !ok || user["avatarUrl"] != "https://example.com/avatar.png" {
		t.Fatalf("expected the new avatar, got %v", payload)
	}
}

func TestFetchNewsMarksFavoritesForAuthenticatedUser(t *testing.T) {
	s := newTestServer(t)
	token := registerTestUser(t, s, "paola")

	saved := s.db.SaveArticles(context.Background(), "Sport", []domain.Draft{
		{Title: "Prima", URL: "https://example.com/1"},
		{Title: "Seconda", URL: "https://example.com/2"},
	})
	if len(saved) != 2 {
		t.Fatalf("expected 2 saved articles, got %d", len(saved))
	}

	rec, _ := doJSON(t, s, http.MethodPost, "/v1/articles/favorite",
		`{"id":"`+saved[0].ID.String()+`","title":"Prima","url":"https://example.com/1"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("favorite toggle failed with status %d", rec.Code)
	}

	rec, payload := doJSON(t, s, http.MethodGet, "/v1/news?category=Sport", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	articles, ok := payload["articles"].([]any)
	if !ok || len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %v", payload)
	}

	flagged := 0
	for _, raw := range articles {
		item, _ := raw.(map[string]any)
		if item["isFavorite"] == true {
			flagged++
			if item["id"] != saved[0].ID.String() {
				t.Fatalf("wrong article flagged: %v", item["id"])
			}
		}
	}
	if flagged != 1 {
		t.Fatalf("expected exactly 1 flagged article, got %d", flagged)
	}
}

func TestFetchNewsWithoutGenerationYieldsNotice(t *testing.T) {
	s := newTestServer(t)

	rec, payload := doJSON(t, s, http.MethodGet, "/v1/news?category=Sport", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["notice"] != news.NoticeNoNews {
		t.Fatalf("unexpected notice: %v", payload["notice"])
	}
}
