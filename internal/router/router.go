// Package router builds the echo instance: global middleware, the error
// handler, the HTML renderer and every route group.
package router

import (
	"net/http"

	"github.com/deppfellow/maska/internal/handler"
	"github.com/deppfellow/maska/internal/middleware"
	"github.com/deppfellow/maska/internal/model"
	"github.com/deppfellow/maska/internal/server"
	"github.com/deppfellow/maska/internal/service"
	"github.com/deppfellow/maska/internal/view"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	router := echo.New()
	router.HideBanner = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id feeds tracing and the context logger,
	// and the transaction must exist before EnhanceTracing reads it.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerMemberPages(router, h)

	if services.Auth.Enabled() {
		registerMemberAPI(router, h, middlewares)
	} else {
		s.Logger.Warn().Msg("auth secret key not set, /api/v1/members is disabled")
	}

	return router, nil
}

func registerMemberPages(r *echo.Echo, h *handler.Handlers) {
	r.GET("/members", handler.HandleView(
		h.Member.Handler,
		h.Member.ListMembersPage,
		http.StatusOK,
		view.MembersIndex,
		&model.ListMembersPayload{},
	))
}
