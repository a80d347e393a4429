// Package rest exposes the service over a JSON API.
package rest

import (
	"context"
	"log/slog"
	"net/http"

	"brightside/internal/auth"
	"brightside/internal/database"
	"brightside/internal/inspiration"
	"brightside/internal/news"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	echo        *echo.Echo
	news        *news.Service
	auth        *auth.Service
	inspiration *inspiration.Service
	db          *database.Database
	log         *slog.Logger
}

func New(
	newsSvc *news.Service,
	authSvc *auth.Service,
	inspSvc *inspiration.Service,
	db *database.Database,
	log *slog.Logger,
) *Server {
	s := &Server{
		echo:        echo.New(),
		news:        newsSvc,
		auth:        authSvc,
		inspiration: inspSvc,
		db:          db,
		log:         log,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLogger)

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/v1")

	v1.POST("/auth/register", s.handleRegister)
	v1.POST("/auth/login", s.handleLogin)
	v1.PUT("/profile/avatar", s.handleUpdateAvatar, s.requireAuth)

	v1.GET("/news", s.handleFetchNews, s.optionalAuth)

	v1.GET("/categories", s.handleListCategories, s.optionalAuth)
	v1.POST("/categories", s.handleAddCategory, s.requireAuth)
	v1.DELETE("/categories/:id", s.handleDeleteCategory, s.requireAuth)

	v1.GET("/favorites", s.handleListFavorites, s.requireAuth)
	v1.POST("/articles/favorite", s.handleToggleFavorite, s.requireAuth)
	v1.POST("/articles/like", s.handleToggleLike, s.requireAuth)
	v1.POST("/articles/dislike", s.handleToggleDislike, s.requireAuth)

	v1.GET("/articles/:id/comments", s.handleListComments)
	v1.POST("/articles/comments", s.handleAddComment, s.requireAuth)
	v1.DELETE("/comments/:id", s.handleDeleteComment, s.requireAuth)

	v1.POST("/articles/:id/audio", s.handleNarrate)
	v1.POST("/articles/:id/image", s.handleIllustrate)

	v1.GET("/inspiration", s.handleInspiration)

	return s
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
