package rest

import (
	"net/http"
	"strings"

	"brightside/internal/domain"

	"github.com/labstack/echo/v4"
)

// handleFetchNews serves /v1/news: search mode when "q" is set, category
// mode otherwise. A truthy "refresh" forces AI generation past the
// cache.
func (s *Server) handleFetchNews(c echo.Context) error {
	searchTerm := strings.TrimSpace(c.QueryParam("q"))
	label := strings.TrimSpace(c.QueryParam("category"))
	query := strings.TrimSpace(c.QueryParam("query"))

	if searchTerm != "" {
		label = searchTerm
		query = searchTerm
	}
	if query == "" {
		query = label
	}
	if label == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "category or q is required",
		})
	}

	forceAI := c.QueryParam("refresh") == "1" || c.QueryParam("refresh") == "true"

	result := s.news.FetchNews(c.Request().Context(), query, label, forceAI)
	s.markFavorites(c, result.Items)

	return c.JSON(http.StatusOK, result)
}

// markFavorites sets the per-user favorite flag on persisted items. Only
// meaningful for authenticated requests; a lookup failure leaves every
// flag unset.
func (s *Server) markFavorites(c echo.Context, items []domain.NewsItem) {
	userID, ok := currentUserID(c)
	if !ok || len(items) == 0 {
		return
	}

	ctx := c.Request().Context()

	favoriteIDs, err := s.db.FavoriteIDs(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to load favorite ids",
			"error", err,
			"userID", userID.String())

		return
	}

	for i := range items {
		id, persisted := items[i].ParseID()
		if !persisted {
			continue
		}
		_, items[i].IsFavorite = favoriteIDs[id]
	}
}

func (s *Server) handleListFavorites(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"articles": []any{}})
	}

	items := s.news.Favorites(c.Request().Context(), userID)
	for i := range items {
		items[i].IsFavorite = true
	}

	return c.JSON(http.StatusOK, map[string]any{"articles": items})
}
