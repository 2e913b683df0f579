package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/deppfellow/maska/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIUIPath is read on every request so doc edits show up without a
// restart.
const OpenAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the API reference UI, which loads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := os.ReadFile(OpenAPIUIPath)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(page)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
