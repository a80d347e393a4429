package rest

import (
	"net/http"
	"strconv"

	"brightside/internal/domain"

	"github.com/labstack/echo/v4"
)

type categoryResponse struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	UserID string `json:"userId,omitempty"`
}

type addCategoryRequest struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// handleListCategories always answers: defaults plus whatever the store
// yields; a store failure degrades to defaults only.
func (s *Server) handleListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories := make([]domain.Category, 0, len(domain.DefaultCategories))
	categories = append(categories, domain.DefaultCategories...)

	if userID, ok := currentUserID(c); ok {
		stored, err := s.db.Categories(ctx, &userID)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to load categories, using defaults",
				"error", err,
				"userID", userID.String())
		} else {
			categories = append(categories, stored...)
		}
	} else {
		stored, err := s.db.Categories(ctx, nil)
		if err != nil {
			s.log.ErrorContext(ctx, "Failed to load categories, using defaults",
				"error", err)
		} else {
			categories = append(categories, stored...)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"categories": toCategoryResponses(categories),
	})
}

func (s *Server) handleAddCategory(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	var req addCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}

	category := s.db.AddCategory(c.Request().Context(), userID, req.Label, req.Value)
	if category == nil {
		// Duplicate or store failure: "not added", not a fault.
		return c.JSON(http.StatusOK, map[string]any{"category": nil})
	}

	resp := toCategoryResponses([]domain.Category{*category})

	return c.JSON(http.StatusCreated, map[string]any{"category": resp[0]})
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]bool{"deleted": false})
	}

	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusOK, map[string]bool{"deleted": false})
	}

	deleted := s.db.DeleteCategory(c.Request().Context(), categoryID, userID)

	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}

func toCategoryResponses(categories []domain.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp := categoryResponse{ID: cat.ID, Label: cat.Label, Value: cat.Value}
		if cat.OwnerID != nil {
			resp.UserID = cat.OwnerID.String()
		}
		out = append(out, resp)
	}
	return out
}
