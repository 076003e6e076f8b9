package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Environment variables that give the defaults of the flags.
const (
	envPolicy      = "PAGESIM_POLICY"
	envStartTime   = "PAGESIM_START_TIME"
	envEndTime     = "PAGESIM_END_TIME"
	envSeed        = "PAGESIM_SEED"
	envMonitorPort = "PAGESIM_MONITOR_PORT"
)

const (
	defaultPolicy  = "LRU"
	defaultEndTime = 5000000.0
	defaultSeed    = 1
)

type runConfig struct {
	policies    []string
	startTime   float64
	endTime     float64
	seed        uint64
	monitor     bool
	monitorPort int
	openBrowser bool
	record      bool
	output      string
	logEvents   bool
	verbose     bool
	dump        bool
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("start-time", 0,
		"Simulated time at which the run starts ($"+envStartTime+").")
	cmd.Flags().Float64("end-time", defaultEndTime,
		"Simulated time after which no event is handled ($"+envEndTime+").")
	cmd.Flags().Uint64("seed", defaultSeed,
		"Master seed from which all random streams are derived ($"+envSeed+").")
	cmd.Flags().Bool("record", false,
		"Record fault intervals and run summaries into a SQLite database.")
	cmd.Flags().String("output", "",
		"Name of the database, without the .sqlite3 suffix.")
	cmd.Flags().Bool("log-events", false, "Print every event.")
	cmd.Flags().Bool("verbose", false, "Print every page fault and eviction.")
	cmd.Flags().Bool("dump", false,
		"Print the state of every process at the end of the run.")
}

func loadConfig(cmd *cobra.Command) (runConfig, error) {
	var (
		c   runConfig
		err error
	)

	c.startTime, err = floatSetting(cmd, "start-time", envStartTime)
	if err != nil {
		return c, err
	}

	c.endTime, err = floatSetting(cmd, "end-time", envEndTime)
	if err != nil {
		return c, err
	}

	c.seed, err = seedSetting(cmd)
	if err != nil {
		return c, err
	}

	c.record, _ = cmd.Flags().GetBool("record")
	c.output, _ = cmd.Flags().GetString("output")
	c.logEvents, _ = cmd.Flags().GetBool("log-events")
	c.verbose, _ = cmd.Flags().GetBool("verbose")
	c.dump, _ = cmd.Flags().GetBool("dump")

	if c.output != "" && !c.record {
		return c, fmt.Errorf("--output requires --record")
	}

	return c, nil
}

// envOverride returns the value of the environment variable when the flag
// is not given on the command line.
func envOverride(cmd *cobra.Command, flag, env string) (string, bool) {
	if cmd.Flags().Changed(flag) {
		return "", false
	}

	value, found := os.LookupEnv(env)
	if !found || strings.TrimSpace(value) == "" {
		return "", false
	}

	return strings.TrimSpace(value), true
}

func floatSetting(cmd *cobra.Command, flag, env string) (float64, error) {
	if value, ok := envOverride(cmd, flag, env); ok {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s: %w", env, err)
		}

		return v, nil
	}

	return cmd.Flags().GetFloat64(flag)
}

func seedSetting(cmd *cobra.Command) (uint64, error) {
	if value, ok := envOverride(cmd, "seed", envSeed); ok {
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parsing %s: %w", envSeed, err)
		}

		return v, nil
	}

	return cmd.Flags().GetUint64("seed")
}

func stringSetting(cmd *cobra.Command, flag, env string) (string, error) {
	if value, ok := envOverride(cmd, flag, env); ok {
		return value, nil
	}

	return cmd.Flags().GetString(flag)
}

func intSetting(cmd *cobra.Command, flag, env string) (int, error) {
	if value, ok := envOverride(cmd, flag, env); ok {
		v, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("parsing %s: %w", env, err)
		}

		return v, nil
	}

	return cmd.Flags().GetInt(flag)
}

func splitPolicies(s string) []string {
	var names []string

	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}

	return names
}
