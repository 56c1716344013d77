package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/cyclebench/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Scenario string
	Limit    int
}

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Runs []store.RunSummary `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with --db, newest first.

Examples:
  cyclebench history --db history.db
  cyclebench history --db history.db --scenario addi --limit 5 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "only list runs of this scenario")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = all)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Don't create a database just to report it empty
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase,
			fmt.Sprintf("database not found: %s", opts.Database), nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Scenario, opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN ID\tSCENARIO\tIMAGE\tTICKS\tPASSED\tFAILED\tVERDICT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.Scenario, r.Image, r.Ticks, r.Passed, r.Failed, r.Verdict)
	}
	return tw.Flush()
}
