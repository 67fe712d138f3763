// Package cli wires the work-time control commands into a cobra command
// tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worktime-control/internal/config"
	"worktime-control/internal/erp"
	"worktime-control/internal/office"
	"worktime-control/internal/report"
	"worktime-control/internal/services"
)

// App bundles the collaborators the commands operate on.
type App struct {
	Config   *config.Config
	Settings *config.SettingsStore
	Offices  *office.Context
	Track    services.TrackService
	Bulk     services.BulkProcessor
	Reports  *report.Builder
	Syncer   *erp.Syncer
	Logger   *zap.Logger
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with all subcommands attached.
func NewRootCommand(app *App) *RootCommand {
	root := &RootCommand{app: app}

	root.cmd = &cobra.Command{
		Use:   "wtc",
		Short: "Work-time record control for ERP-managed offices",
		Long: `Work-Time Control (wtc) guards time records against the settlement rules
of ERP-managed offices: closed settlement periods, the daily hour cap, and
the correction windows for back-dated records.

EXAMPLES:
  wtc check --user 7 --day 2024-03-18 --hours 6 --issue 42 \
      --comments "parser rework"                 # Dry-run a proposed record
  wtc check --save --user 7 --day 2024-03-20 --hours 8 --issue 42 \
      --comments "release prep"                  # Persist when admitted
  wtc apply --user 7 --day 2024-03-20 --file day.yml
                                                 # Apply a day's entries in one pass
  wtc report --user 7 --month 2024-03 --out march.xlsx
  wtc sync                                       # Pull ERP assignments and holidays

CONFIGURATION:
  Configuration comes from environment variables over built-in defaults.

  Local Database:
    WTC_DB_DIR                             Database directory (default: ~/.wtc)
    WTC_DB_FILENAME                        Database filename (default: wtc.db)
    WTC_DB_QUERY_TIMEOUT                   Query timeout (default: 10s)
    WTC_DB_WRITE_TIMEOUT                   Write timeout (default: 5s)

  ERP Integration:
    WTC_ERP_POSTGRES_DSN                   ERP Postgres DSN (empty: use local store)
    WTC_ERP_BASE_URL                       ERP API base URL (required for sync)
    WTC_ERP_API_TOKEN                      ERP API bearer token
    WTC_ERP_SYNC_TIMEOUT                   ERP request timeout (default: 30s)

  Settlement-Status Cache:
    WTC_REDIS_ADDR                         Redis address (empty: no caching)
    WTC_REDIS_PASSWORD                     Redis password
    WTC_REDIS_DB                           Redis database number (default: 0)
    WTC_REDIS_TTL                          Cache entry lifetime (default: 5m)

  Control Settings:
    WTC_SETTINGS_FILE                      Settings YAML (default: ~/.wtc/settings.yml)

  Logging:
    WTC_LOG_LEVEL                          Log level (default: info)
    WTC_LOG_FORMAT                         json or console (default: json)

  Application:
    WTC_APP_TIMEOUT                        Command timeout (default: 60s)

GETTING HELP:
  wtc [command] --help                     # Get help for any specific command`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.cmd.AddCommand(newCheckCommand(app))
	root.cmd.AddCommand(newApplyCommand(app))
	root.cmd.AddCommand(newReportCommand(app))
	root.cmd.AddCommand(newSyncCommand(app))

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// commandContext returns the context commands run under, bounded by the
// application timeout.
func commandContext(app *App) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), app.Config.Application.Timeout)
}
