package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/memmanage"
	"github.com/sarchlab/pagesim/sim/id"
	"github.com/sarchlab/pagesim/sim/timing"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run the reference processes under several replacement policies.",
	Long: "`compare` runs the four reference processes once per policy with " +
		"the same seeds, and prints the faults of every policy.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		policies, _ := cmd.Flags().GetString("policies")
		cfg.policies = splitPolicies(policies)

		return runComparison(cfg)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addCommonFlags(compareCmd)
	compareCmd.Flags().String("policies", "FIFO,CLOCK,LRU,COUNT",
		"Comma separated replacement policies to compare.")
}

func runComparison(cfg runConfig) error {
	if len(cfg.policies) == 0 {
		return fmt.Errorf("no policy to compare")
	}

	policies := make([]replacement.Policy, 0, len(cfg.policies))
	for _, name := range cfg.policies {
		p, err := replacement.Parse(name)
		if err != nil {
			return err
		}

		policies = append(policies, p)
	}

	var recorder datarecording.DataRecorder
	if cfg.record {
		recorder = datarecording.New(cfg.output)
		defer recorder.Close()

		recorder.CreateTable(summaryTable, runSummary{})
	}

	runID := id.GenerateRunID()
	results := make([]memmanage.Result, 0, len(policies))

	for _, p := range policies {
		e := experiment{
			cfg:      cfg,
			runID:    runID,
			policy:   p,
			engine:   timing.NewSerialEngine(),
			recorder: recorder,
			out:      os.Stdout,
		}
		e.setLogs(cfg)

		r, err := e.run()
		if err != nil {
			return err
		}

		results = append(results, r)

		fmt.Println()
	}

	printComparison(os.Stdout, results)

	return nil
}

func printComparison(w io.Writer, results []memmanage.Result) {
	fmt.Fprintf(w, "%-8s %10s %12s %10s\n", "Policy", "Faults", "Accesses", "Per 1000")

	for _, r := range results {
		fmt.Fprintf(w, "%-8s %10d %12d %10d\n",
			r.Policy, r.Faults, r.Accesses, r.FaultsPer1000)
	}
}
