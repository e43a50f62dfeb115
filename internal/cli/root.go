package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "readqc",
	Short: "readqc — run FastQC and query its reports",
	Long: `readqc runs the FastQC read-quality tool over sequencing read files and
parses the fastqc_data.txt reports it produces into typed, queryable results.

Parsed scans are recorded in ~/.readqc/readqc.db (SQLite) so per-module
statuses can be gated, tracked, and aggregated across runs.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}
