package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worktime-control/internal/errors"
	"worktime-control/internal/report"
)

type reportOptions struct {
	userID int64
	month  string
	out    string
}

// newReportCommand builds the report subcommand: a per-day monthly hour
// summary, printed as a table or exported as a spreadsheet.
func newReportCommand(app *App) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a user's tracked hours for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, app, opts)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.userID, "user", 0, "User id to report on")
	flags.StringVar(&opts.month, "month", "", "Month to report (YYYY-MM, default: current)")
	flags.StringVar(&opts.out, "out", "", "Write an XLSX workbook to this path")
	cmd.MarkFlagRequired("user")

	return cmd
}

func runReport(cmd *cobra.Command, app *App, opts *reportOptions) error {
	ctx, cancel := commandContext(app)
	defer cancel()

	month := time.Now()
	if opts.month != "" {
		parsed, err := time.Parse("2006-01", opts.month)
		if err != nil {
			return errors.NewInvalidInputError("month", opts.month, "must be YYYY-MM")
		}
		month = parsed
	}

	off, err := app.Offices.Resolve(ctx, opts.userID, app.Settings.Snapshot())
	if err != nil {
		return err
	}

	summary, err := app.Reports.Build(ctx, opts.userID, month, off)
	if err != nil {
		return err
	}

	if opts.out != "" {
		data, err := report.ExportXLSX(summary)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.out, data, 0644); err != nil {
			return errors.NewConfigurationError("report output file", err)
		}
		app.Logger.Info("report exported",
			zap.Int64("user_id", opts.userID),
			zap.String("path", opts.out))
		cmd.Printf("wrote %s\n", opts.out)
		return nil
	}

	cmd.Printf("%s user %d\n", summary.Month.Format("2006-01"), summary.UserID)
	for _, day := range summary.Days {
		marker := " "
		if !day.WorkingDay {
			marker = "-"
		}
		cmd.Printf("%s %s %6.2f (%d)\n", marker, day.Day.Format("2006-01-02"), day.Hours, day.Records)
	}
	cmd.Printf("total %.2f hours over %d working days\n", summary.TotalHours, summary.WorkingDays)
	return nil
}
