package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"worktime-control/internal/errors"
	"worktime-control/internal/services"
)

type applyOptions struct {
	userID     int64
	actingUser int64
	day        string
	file       string
}

// applyRow is one proposed entry in the rows file. A zero id means a new
// entry; a persisted id with zero hours requests deletion.
type applyRow struct {
	ID       int64   `yaml:"id"`
	Issue    int64   `yaml:"issue"`
	Hours    float64 `yaml:"hours"`
	Comments string  `yaml:"comments"`
}

// newApplyCommand builds the apply subcommand: push a day's worth of proposed
// entries for one user through the admission gate in a single pass.
func newApplyCommand(app *App) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a day's worth of proposed entries for a user",
		Long: `Apply reads proposed entries from a YAML file and applies them to one
day of one user's timesheet. New rows without hours or comments are skipped,
persisted rows whose hours are blanked are deleted, and every save runs
through the admission rules. Each row is reported separately; a rejected
row does not block the others.

The rows file is a YAML list:

  - issue: 42
    hours: 4.5
    comments: "parser rework"
  - id: 17
    hours: 0          # blanked: delete record 17`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, app, opts)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.userID, "user", 0, "Record owner's user id")
	flags.Int64Var(&opts.actingUser, "acting-user", 0, "Acting user id (default: the owner)")
	flags.StringVar(&opts.day, "day", "", "Day the entries are applied to (YYYY-MM-DD)")
	flags.StringVar(&opts.file, "file", "", "YAML file with the proposed rows")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("day")
	cmd.MarkFlagRequired("file")

	return cmd
}

func runApply(cmd *cobra.Command, app *App, opts *applyOptions) error {
	ctx, cancel := commandContext(app)
	defer cancel()

	day, err := time.Parse("2006-01-02", opts.day)
	if err != nil {
		return errors.NewInvalidInputError("day", opts.day, "must be YYYY-MM-DD")
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return errors.NewInvalidInputError("file", opts.file, "rows file is not readable")
	}
	var fileRows []applyRow
	if err := yaml.Unmarshal(data, &fileRows); err != nil {
		return errors.NewInvalidInputError("file", opts.file, "rows file is not a YAML list")
	}

	rows := make([]services.BulkRow, len(fileRows))
	for i, row := range fileRows {
		rows[i] = services.BulkRow{
			ID:       row.ID,
			IssueID:  row.Issue,
			Hours:    row.Hours,
			Comments: row.Comments,
		}
	}

	actingUser := opts.actingUser
	if actingUser == 0 {
		actingUser = opts.userID
	}

	outcomes, err := app.Bulk.Apply(ctx, opts.userID, actingUser, day, rows)
	if err != nil {
		return err
	}

	rejected := 0
	for i, outcome := range outcomes {
		switch outcome.Action {
		case services.RowSaved:
			cmd.Printf("row %d: saved record %d\n", i+1, outcome.Record.ID)
		case services.RowDeleted:
			cmd.Printf("row %d: deleted record %d\n", i+1, outcome.Record.ID)
		case services.RowSkipped:
			cmd.Printf("row %d: skipped\n", i+1)
		case services.RowRejected:
			rejected++
			cmd.Printf("row %d: rejected\n", i+1)
			for _, violation := range outcome.Violations {
				cmd.Printf("  %s\n", violation)
			}
		}
	}

	app.Logger.Info("bulk apply finished",
		zap.Int64("user_id", opts.userID),
		zap.Int("row_count", len(outcomes)),
		zap.Int("rejected", rejected))
	return nil
}
