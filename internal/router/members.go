package router

import (
	"net/http"

	"github.com/deppfellow/maska/internal/handler"
	"github.com/deppfellow/maska/internal/middleware"
	"github.com/deppfellow/maska/internal/model"
	"github.com/labstack/echo/v4"
)

// registerMemberAPI mounts the authenticated, rate-limited JSON API.
func registerMemberAPI(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := r.Group("/api/v1/members",
		m.RateLimit.Limit(middleware.APIRequestsPerSecond, middleware.APIBurst),
		m.Auth.RequireAuth,
		m.ContextEnhancer.EnhanceContext(),
	)

	api.GET("", handler.Handle(h.Member.Handler, h.Member.ListMembers, http.StatusOK, &model.ListMembersPayload{}))
	api.POST("", handler.Handle(h.Member.Handler, h.Member.CreateMember, http.StatusCreated, &model.CreateMemberPayload{}))
	api.GET("/:id", handler.Handle(h.Member.Handler, h.Member.GetMember, http.StatusOK, &model.GetMemberPayload{}))
	api.PUT("/:id", handler.Handle(h.Member.Handler, h.Member.UpdateMember, http.StatusOK, &model.UpdateMemberPayload{}))
	api.DELETE("/:id", handler.Handle(h.Member.Handler, h.Member.DeleteMember, http.StatusOK, &model.DeleteMemberPayload{}))
}
