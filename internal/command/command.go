package command

import (
	commandHandler "arwikicats/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(NewCommand, commandHandler.NewMigrateHandler, commandHandler.NewStatsHandler)

type Command struct {
	migrateCommandHandler *commandHandler.MigrateHandler
	statsCommandHandler   *commandHandler.StatsHandler
}

// NewCommand .
func NewCommand(
	migrateCommandHandler *commandHandler.MigrateHandler,
	statsCommandHandler *commandHandler.StatsHandler,
) *Command {
	return &Command{
		migrateCommandHandler: migrateCommandHandler,
		statsCommandHandler:   statsCommandHandler,
	}
}

func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "print per-day request counts and status summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()

			return command.statsCommandHandler.Stats(cmd, args)
		},
	}
	statsCmd.Flags().StringP("table", "t", "logs", "logs or list_logs")
	statsCmd.Flags().Int("width", 60, "chart width")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "migrate",
			Short: "add and backfill date_only on existing log tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				command, cleanup, err := newCmd()
				if err != nil {
					return err
				}
				defer cleanup()

				return command.migrateCommandHandler.Migrate(cmd, args)
			},
		},
		statsCmd,
	)
}
