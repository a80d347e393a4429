package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"brightside/internal/domain"
	"brightside/internal/news"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Toggle endpoints accept the whole item so a volatile article can be
// persisted just in time. A malformed reference yields the neutral
// inactive state, not an error: routine for freshly generated articles.

func (s *Server) handleToggleFavorite(c echo.Context) error {
	return s.handleToggle(c, s.news.ToggleFavorite, "favorite")
}

func (s *Server) handleToggleLike(c echo.Context) error {
	return s.handleToggle(c, s.news.ToggleLike, "active")
}

func (s *Server) handleToggleDislike(c echo.Context) error {
	return s.handleToggle(c, s.news.ToggleDislike, "active")
}

func (s *Server) handleToggle(
	c echo.Context,
	toggle func(ctx context.Context, userID uuid.UUID, item domain.NewsItem) (bool, bool),
	field string,
) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{field: false, "applied": false})
	}

	var item domain.NewsItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusOK, map[string]any{field: false, "applied": false})
	}

	state, applied := toggle(c.Request().Context(), userID, item)

	return c.JSON(http.StatusOK, map[string]any{field: state, "applied": applied})
}

func (s *Server) handleListComments(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]any{"comments": []any{}})
	}

	comments, err := s.news.Comments(c.Request().Context(), articleID)
	if err != nil {
		s.log.ErrorContext(c.Request().Context(), "Failed to list comments",
			"error", err,
			"articleID", articleID.String())

		return c.JSON(http.StatusOK, map[string]any{"comments": []any{}})
	}

	return c.JSON(http.StatusOK, map[string]any{"comments": toCommentResponses(comments)})
}

type addCommentRequest struct {
	Article domain.NewsItem `json:"article"`
	Text    string          `json:"text"`
}

func (s *Server) handleAddComment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}

	ctx := c.Request().Context()

	user, err := s.db.UserByID(ctx, userID)
	if err != nil || user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	comment, err := s.news.AddComment(ctx, user, req.Article, req.Text)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to add comment",
			"error", err,
			"userID", userID.String())

		return c.JSON(http.StatusOK, map[string]any{"comment": nil})
	}

	return c.JSON(http.StatusCreated, map[string]any{"comment": toCommentResponse(*comment)})
}

func (s *Server) handleDeleteComment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]bool{"deleted": false})
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]bool{"deleted": false})
	}

	deleted := s.news.DeleteComment(c.Request().Context(), commentID, userID)

	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}

func (s *Server) handleNarrate(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]string{"audioBase64": ""})
	}

	audio, err := s.news.Narrate(c.Request().Context(), articleID)
	if err != nil {
		if errors.Is(err, news.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "narration is unavailable",
			})
		}

		s.log.ErrorContext(c.Request().Context(), "Failed to narrate article",
			"error", err,
			"articleID", articleID.String())

		return c.JSON(http.StatusOK, map[string]string{"audioBase64": ""})
	}

	return c.JSON(http.StatusOK, map[string]string{"audioBase64": audio})
}

func (s *Server) handleIllustrate(c echo.Context) error {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusOK, map[string]string{"imageUrl": ""})
	}

	imageURL, err := s.news.Illustrate(c.Request().Context(), articleID)
	if err != nil {
		if errors.Is(err, news.ErrUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error": "illustration is unavailable",
			})
		}

		s.log.ErrorContext(c.Request().Context(), "Failed to illustrate article",
			"error", err,
			"articleID", articleID.String())

		return c.JSON(http.StatusOK, map[string]string{"imageUrl": ""})
	}

	return c.JSON(http.StatusOK, map[string]string{"imageUrl": imageURL})
}

type commentResponse struct {
	ID        int64  `json:"id"`
	ArticleID string `json:"articleId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		ArticleID: c.ArticleID.String(),
		UserID:    c.UserID.String(),
		Username:  c.Username,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}
