package cmd

import (
	"fmt"
	"os"

	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/memmanage"
	"github.com/sarchlab/pagesim/sim/id"
	"github.com/sarchlab/pagesim/sim/timing"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reference processes under one replacement policy.",
	Long: "`run --policy LRU` runs the four reference processes with the " +
		"given policy and prints the number of page faults.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		policyName, err := stringSetting(cmd, "policy", envPolicy)
		if err != nil {
			return err
		}

		cfg.policies = []string{policyName}

		cfg.monitor, _ = cmd.Flags().GetBool("monitor")
		cfg.openBrowser, _ = cmd.Flags().GetBool("open-browser")

		cfg.monitorPort, err = intSetting(cmd, "monitor-port", envMonitorPort)
		if err != nil {
			return err
		}

		return runSingle(cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addCommonFlags(runCmd)
	runCmd.Flags().String("policy", defaultPolicy,
		"Replacement policy: FIFO, LRU, CLOCK or COUNT ($"+envPolicy+").")
	runCmd.Flags().Bool("monitor", false,
		"Serve the monitoring API while the simulation runs.")
	runCmd.Flags().Int("monitor-port", 0,
		"Port of the monitoring server; 0 picks a free one ($"+envMonitorPort+").")
	runCmd.Flags().Bool("open-browser", false,
		"Open the monitoring server in the default browser.")
}

func runSingle(cfg runConfig) error {
	policy, err := replacement.Parse(cfg.policies[0])
	if err != nil {
		return err
	}

	if cfg.openBrowser && !cfg.monitor {
		return fmt.Errorf("--open-browser requires --monitor")
	}

	e := experiment{
		cfg:    cfg,
		runID:  id.GenerateRunID(),
		policy: policy,
		out:    os.Stdout,
	}
	e.setLogs(cfg)

	if !cfg.record && !cfg.monitor {
		e.engine = timing.NewSerialEngine()
		_, err = e.run()

		return err
	}

	s := buildSimulation(cfg)
	defer s.Terminate()

	e.runID = s.ID()
	e.engine = s.GetEngine()
	e.monitor = s.GetMonitor()
	e.register = func(m *memmanage.Model) { s.RegisterModel(m) }

	if cfg.record {
		e.recorder = s.GetDataRecorder()
		e.recorder.CreateTable(summaryTable, runSummary{})
	}

	if cfg.openBrowser {
		if err := e.monitor.OpenInBrowser(); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open the browser: %v\n", err)
		}
	}

	_, err = e.run()

	return err
}

func buildSimulation(cfg runConfig) *simulation.Simulation {
	b := simulation.MakeBuilder()

	if cfg.record {
		b = b.WithRecording().WithOutputFileName(cfg.output)
	}

	if cfg.monitor {
		b = b.WithMonitorPort(cfg.monitorPort)
	} else {
		b = b.WithoutMonitoring()
	}

	return b.Build()
}

func (e *experiment) setLogs(cfg runConfig) {
	if cfg.logEvents {
		e.eventLog = os.Stdout
	}

	if cfg.verbose {
		e.faultLog = os.Stdout
	}

	if cfg.dump {
		e.stateDump = os.Stdout
	}
}
