package cli

import (
	"github.com/spf13/cobra"

	"worktime-control/internal/errors"
)

// newSyncCommand builds the sync subcommand: pull employee assignments and
// holiday calendars from the ERP into the local store.
func newSyncCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull ERP employee assignments and holidays",
		Long: `Sync fetches the current employee office assignments and holiday
calendars from the ERP API and applies them to the local store. The run is
skipped when the ERP payload matches the hash of the last applied one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Syncer == nil {
				return errors.NewConfigurationError("WTC_ERP_BASE_URL", nil)
			}

			ctx, cancel := commandContext(app)
			defer cancel()

			result, err := app.Syncer.Sync(ctx)
			if err != nil {
				return err
			}
			if result.Skipped {
				cmd.Println("up to date, nothing applied")
				return nil
			}
			cmd.Printf("applied %d employees and %d holidays\n", result.Employees, result.Holidays)
			return nil
		},
	}
}
