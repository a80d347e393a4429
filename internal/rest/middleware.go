package rest

import (
	"net/http"
	"strings"
	"time"

	"brightside/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "userID"

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		s.log.InfoContext(c.Request().Context(), "Request is handled",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"durationMs", time.Since(start).Milliseconds())

		return err
	}
}

// requireAuth rejects requests without a valid bearer token.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := s.bearerUserID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": auth.FriendlyMessage(auth.ErrInvalidToken),
			})
		}

		c.Set(userIDContextKey, userID)

		return next(c)
	}
}

// optionalAuth resolves the user when a token is present and lets the
// request through either way.
func (s *Server) optionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, ok := s.bearerUserID(c); ok {
			c.Set(userIDContextKey, userID)
		}

		return next(c)
	}
}

func (s *Server) bearerUserID(c echo.Context) (uuid.UUID, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return uuid.Nil, false
	}

	userID, err := s.auth.Verify(strings.TrimSpace(token))
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func currentUserID(c echo.Context) (uuid.UUID, bool) {
	v := c.Get(userIDContextKey)
	if v == nil {
		return uuid.Nil, false
	}

	userID, ok := v.(uuid.UUID)

	return userID, ok
}
