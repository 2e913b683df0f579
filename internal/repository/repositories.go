package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/maska/internal/model"
	"github.com/deppfellow/maska/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Members Gateway[model.Member]
}

// NewRepositories picks the backend from the server: PostgreSQL when a pool
// is configured, process memory otherwise.
func NewRepositories(ctx context.Context, s *server.Server) (*Repositories, error) {
	if s.DB == nil {
		s.Logger.Warn().Msg("no database configured, members are kept in memory and lost on restart")

		members, err := NewMemoryGateway(MemberTable())
		if err != nil {
			return nil, err
		}
		return &Repositories{Members: members}, nil
	}

	members, err := NewPostgresGateway(s.DB.Pool, MemberTable())
	if err != nil {
		return nil, err
	}
	if err := members.VerifySchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to verify members schema: %w", err)
	}

	return &Repositories{Members: members}, nil
}
