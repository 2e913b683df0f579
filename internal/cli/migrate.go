package cli

import (
	"errors"
	"fmt"

	"github.com/deppfellow/maska/internal/config"
	"github.com/deppfellow/maska/internal/database"
	"github.com/deppfellow/maska/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var errMemoryDriver = errors.New("migrations need database.driver=postgres")

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadForMigrate()
			if err != nil {
				return err
			}
			if cfg.Database.IsMemory() {
				return errMemoryDriver
			}
			return database.Migrate(cmd.Context(), log, cfg)
		},
	}
}

// loadForMigrate loads config and a plain logger; migrations run before
// the rest of the application exists.
func loadForMigrate() (*config.Config, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.NewLogger(cfg.Observability)
	return cfg, &log, nil
}
