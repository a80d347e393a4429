package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type quoteResponse struct {
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}

type deedResponse struct {
	Text string `json:"text"`
}

func (s *Server) handleInspiration(c echo.Context) error {
	quote, deed := s.inspiration.Daily(c.Request().Context())

	resp := map[string]any{"quote": nil, "deed": nil}
	if quote != nil {
		resp["quote"] = quoteResponse{Text: quote.Text, Author: quote.Author}
	}
	if deed != nil {
		resp["deed"] = deedResponse{Text: deed.Text}
	}

	return c.JSON(http.StatusOK, resp)
}
