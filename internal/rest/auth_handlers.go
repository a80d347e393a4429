package rest

import (
	"errors"
	"net/http"

	"brightside/internal/auth"
	"brightside/internal/domain"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": auth.FriendlyMessage(auth.ErrInvalidCredentials),
		})
	}

	user, token, err := s.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, auth.ErrUsernameTaken) {
			status = http.StatusConflict
		}

		return c.JSON(status, map[string]string{"error": auth.FriendlyMessage(err)})
	}

	return c.JSON(http.StatusCreated, authResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": auth.FriendlyMessage(auth.ErrInvalidCredentials),
		})
	}

	user, token, err := s.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": auth.FriendlyMessage(err),
		})
	}

	return c.JSON(http.StatusOK, authResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl"`
}

func (s *Server) handleUpdateAvatar(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request"})
	}

	ctx := c.Request().Context()

	if err := s.db.UpdateAvatar(ctx, userID, req.AvatarURL); err != nil {
		s.log.ErrorContext(ctx, "Failed to update avatar",
			"error", err,
			"userID", userID.String())

		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"})
	}

	user, err := s.db.UserByID(ctx, userID)
	if err != nil || user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}

	return c.JSON(http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}
