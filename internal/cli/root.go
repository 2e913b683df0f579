// Package cli holds the maska command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/deppfellow/maska/internal/config"
	"github.com/deppfellow/maska/internal/logger"
	"github.com/deppfellow/maska/internal/repository"
	"github.com/deppfellow/maska/internal/server"
	"github.com/deppfellow/maska/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. Without a subcommand it serves.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "maska",
		Short:         "Member registry",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), true)
		},
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newSeedCommand(),
	)

	return root
}

// app is everything a command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *zerolog.Logger
	server   *server.Server
	services *service.Services
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return nil, err
	}

	repos, err := repository.NewRepositories(ctx, srv)
	if err != nil {
		_ = srv.Shutdown(ctx)
		return nil, err
	}

	services, err := service.NewService(srv, repos)
	if err != nil {
		_ = srv.Shutdown(ctx)
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   &log,
		server:   srv,
		services: services,
	}, nil
}
