package cli

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"worktime-control/internal/domain"
	"worktime-control/internal/errors"
)

type checkOptions struct {
	userID     int64
	actingUser int64
	recordID   int64
	issueID    int64
	hours      float64
	comments   string
	day        string
	save       bool
}

// newCheckCommand builds the check subcommand: evaluate a proposed time
// record against the admission rules, optionally persisting it when admitted.
func newCheckCommand(app *App) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a proposed time record",
		Long: `Check runs a proposed time record through the schema checks and the
admission rules and prints every violation. With --save an admitted record
is persisted. With --record the change is applied to an existing record,
so hour-change and day-move rules see the stored values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, app, opts)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.userID, "user", 0, "Record owner's user id")
	flags.Int64Var(&opts.actingUser, "acting-user", 0, "Acting user id (default: the owner)")
	flags.Int64Var(&opts.recordID, "record", 0, "Existing record id to modify")
	flags.Int64Var(&opts.issueID, "issue", 0, "Issue id the hours are tracked against")
	flags.Float64Var(&opts.hours, "hours", 0, "Proposed hours")
	flags.StringVar(&opts.comments, "comments", "", "Record comments")
	flags.StringVar(&opts.day, "day", "", "Spent-on day (YYYY-MM-DD, empty for missing)")
	flags.BoolVar(&opts.save, "save", false, "Persist the record when admitted")
	cmd.MarkFlagRequired("user")

	return cmd
}

func runCheck(cmd *cobra.Command, app *App, opts *checkOptions) error {
	ctx, cancel := commandContext(app)
	defer cancel()

	var spentOn time.Time
	if opts.day != "" {
		parsed, err := time.Parse("2006-01-02", opts.day)
		if err != nil {
			return errors.NewInvalidInputError("day", opts.day, "must be YYYY-MM-DD")
		}
		spentOn = parsed
	}

	var record *domain.TimeRecord
	if opts.recordID != 0 {
		stored, err := app.Track.GetRecord(ctx, opts.recordID)
		if err != nil {
			return err
		}
		record = stored
		if opts.issueID != 0 {
			record.IssueID = opts.issueID
		}
		if opts.comments != "" {
			record.Comments = opts.comments
		}
		if cmd.Flags().Changed("hours") {
			record.Hours = opts.hours
		}
		if opts.day != "" {
			record.SpentOn = domain.DateOnly(spentOn)
		}
	} else {
		record = domain.NewTimeRecord(opts.userID, spentOn)
		record.IssueID = opts.issueID
		record.Hours = opts.hours
		record.Comments = opts.comments
	}

	actingUser := opts.actingUser
	if actingUser == 0 {
		actingUser = record.UserID
	}

	if opts.save {
		outcome, err := app.Track.SaveRecord(ctx, record, actingUser)
		if err != nil {
			return err
		}
		if !outcome.Violations.Empty() {
			printViolations(cmd, outcome.Violations)
			return nil
		}
		app.Logger.Info("time record saved",
			zap.Int64("record_id", outcome.Record.ID),
			zap.Int64("owner_id", outcome.Record.UserID))
		cmd.Printf("admitted: record %d saved\n", outcome.Record.ID)
		return nil
	}

	violations, err := app.Track.CheckRecord(ctx, record, actingUser)
	if err != nil {
		return err
	}
	if violations.Empty() {
		cmd.Println("admitted")
		return nil
	}
	printViolations(cmd, violations)
	return nil
}

func printViolations(cmd *cobra.Command, violations domain.Violations) {
	cmd.Printf("rejected: %d violation(s)\n", len(violations))
	for _, violation := range violations {
		cmd.Printf("  %s\n", violation)
	}
}
