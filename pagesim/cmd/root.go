// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "pagesim simulates processes competing for physical frames.",
	Long: `pagesim simulates a machine whose processes compete for a fixed ` +
		`set of physical frames, and counts the page faults caused by the ` +
		`FIFO, LRU, CLOCK and COUNT replacement policies. Defaults can be ` +
		`set in a .env file or with PAGESIM_* environment variables.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It loads the .env file of the working directory, if any.
func Execute() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Cannot load .env: %v\n", err)
		atexit.Exit(1)
	}

	err = rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
