package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/memmanage"
	"github.com/sarchlab/pagesim/stats"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <database>",
	Short: "Print the runs recorded in a database.",
	Long: "`report` reads a database written by `run --record` or " +
		"`compare --record` and prints the faults of every recorded policy, " +
		"along with the fault intervals rebuilt from the recorded faults.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, _ := cmd.Flags().GetString("run")

		return report(cmd.Context(), os.Stdout, args[0], runID)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("run", "", "Only print the run with this ID.")
}

func report(ctx context.Context, w io.Writer, filename, runID string) error {
	reader, err := datarecording.OpenReader(filename)
	if err != nil {
		return err
	}
	defer reader.Close()

	summaries, err := readSummaries(ctx, reader, runID)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		return fmt.Errorf("no run recorded in %s", filename)
	}

	for i, run := range groupByRun(summaries) {
		if i > 0 {
			fmt.Fprintln(w)
		}

		first := run[0]
		fmt.Fprintf(w, "Run %s, seed %s, from %.2f to %.2f\n",
			first.RunID, first.Seed, first.StartTime, first.EndTime)

		results := make([]memmanage.Result, 0, len(run))
		for _, s := range run {
			results = append(results, s.result())
		}

		printComparison(w, results)

		err := printRecordedFaults(ctx, w, reader, run)
		if err != nil {
			return err
		}
	}

	return nil
}

func readSummaries(
	ctx context.Context,
	reader *datarecording.Reader,
	runID string,
) ([]runSummary, error) {
	sel := datarecording.Selection{}
	if runID != "" {
		sel.Column = "RunID"
		sel.Value = runID
	}

	return datarecording.ReadTable[runSummary](ctx, reader, summaryTable, sel)
}

// groupByRun splits the summaries by run, keeping the order in which the
// runs were recorded.
func groupByRun(summaries []runSummary) [][]runSummary {
	var (
		runs  [][]runSummary
		index = make(map[string]int)
	)

	for _, s := range summaries {
		i, ok := index[s.RunID]
		if !ok {
			i = len(runs)
			index[s.RunID] = i
			runs = append(runs, nil)
		}

		runs[i] = append(runs[i], s)
	}

	return runs
}

// printRecordedFaults prints the fault intervals of the policies whose faults
// were recorded. Databases written without fault recording are skipped.
func printRecordedFaults(
	ctx context.Context,
	w io.Writer,
	reader *datarecording.Reader,
	run []runSummary,
) error {
	tables, err := reader.Tables(ctx)
	if err != nil {
		return err
	}

	if !slices.Contains(tables, memmanage.FaultIntervalTable) {
		return nil
	}

	for _, s := range run {
		faults, err := memmanage.ReadFaults(ctx, reader, s.Policy)
		if err != nil {
			return err
		}

		intervals := stats.NewSampleSet(s.Policy)
		for _, f := range faults {
			intervals.Put(f.Time, f.Interval)
		}

		sum := intervals.Summary()
		fmt.Fprintf(w, "%-8s %d recorded faults, interval mean %.2f, std dev %.2f\n",
			s.Policy, sum.Count, orZero(sum.Mean), orZero(sum.StdDev))
	}

	return nil
}
