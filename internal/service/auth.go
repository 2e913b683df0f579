package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/maska/internal/server"
)

// AuthService configures the Clerk SDK with the secret key from config.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	if s.Config.Auth.SecretKey != "" {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server: s,
	}
}

// Enabled reports whether the authenticated API can be served.
func (a *AuthService) Enabled() bool {
	return a.server.Config.Auth.SecretKey != ""
}
