// Package handler is the HTTP layer behind the router.
//
// Handlers bind and validate input through the validation package, call
// the service layer and write the response.
package handler

import (
	"github.com/deppfellow/maska/internal/server"
	"github.com/deppfellow/maska/internal/service"
)

// Handlers groups all HTTP handlers for the router.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Member  *MemberHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Member:  NewMemberHandler(s, services.Member),
	}
}
