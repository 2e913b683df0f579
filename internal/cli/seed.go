package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample members if missing and print every member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.server.Shutdown(ctx); err != nil {
					a.logger.Error().Err(err).Msg("shutdown failed")
				}
			}()

			inserted, err := a.services.Member.Seed(ctx)
			if err != nil {
				return err
			}

			members, err := a.services.Member.FindAll(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, m := range members {
				fmt.Fprintln(out, m.String())
			}
			a.logger.Info().
				Int("inserted", inserted).
				Int("total", len(members)).
				Msg("seed complete")

			return nil
		},
	}
}
