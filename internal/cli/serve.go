package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/maska/internal/database"
	"github.com/deppfellow/maska/internal/handler"
	"github.com/deppfellow/maska/internal/router"
	"github.com/spf13/cobra"
)

// ShutdownTimeout bounds the graceful drain after a signal.
const ShutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving (postgres only)")

	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	if migrate {
		if err := migrateIfPostgres(ctx); err != nil {
			return err
		}
	}

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	if job := a.server.Job; job != nil {
		job.InitHandlers(a.cfg, a.logger, a.services.Member)
		if err := job.Start(); err != nil {
			_ = a.server.Shutdown(ctx)
			return fmt.Errorf("start background jobs: %w", err)
		}
	}

	h := handler.NewHandlers(a.server, a.services)
	r, err := router.NewRouter(a.server, h, a.services)
	if err != nil {
		_ = a.server.Shutdown(ctx)
		return err
	}
	a.server.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- a.server.Start()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = a.server.Shutdown(context.Background())
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info().Msg("server stopped")
	return nil
}

func migrateIfPostgres(ctx context.Context) error {
	cfg, log, err := loadForMigrate()
	if err != nil {
		return err
	}
	if cfg.Database.IsMemory() {
		return nil
	}
	return database.Migrate(ctx, log, cfg)
}
