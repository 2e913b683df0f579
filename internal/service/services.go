// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass it
// validated data, it calls the repositories.
package service

import (
	"github.com/deppfellow/maska/internal/lib/job"
	"github.com/deppfellow/maska/internal/repository"
	"github.com/deppfellow/maska/internal/server"
)

type Services struct {
	Auth   *AuthService
	Member *MemberService
	Job    *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)
	memberService := NewMemberService(repos.Members, s.Logger)

	return &Services{
		Job:    s.Job,
		Auth:   authService,
		Member: memberService,
	}, nil
}
