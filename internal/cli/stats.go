package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/readqc/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-module status rates across all recorded scans",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, cleanup, err := openDB(cfg.ReadQC.DBPath)
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := analytics.QueryModuleStats(d)
		if err != nil {
			return err
		}
		flaky, err := analytics.QueryFlakyModules(d)
		if err != nil {
			return err
		}

		if format == "json" {
			out := struct {
				Modules []analytics.ModuleStats `json:"modules"`
				Flaky   []analytics.FlakyModule `json:"flaky,omitempty"`
			}{Modules: stats, Flaky: flaky}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		w := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(w, "No scans recorded yet.")
			return nil
		}

		fmt.Fprintf(w, "%-35s %-6s %-6s %-6s %-6s %s\n", "MODULE", "SCANS", "PASS", "WARN", "FAIL", "PASS%")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 72))
		for _, s := range stats {
			fmt.Fprintf(w, "%-35s %-6d %-6d %-6d %-6d %.1f\n",
				s.Module, s.Scans, s.Pass, s.Warn, s.Fail, s.PassRate)
		}

		if len(flaky) > 0 {
			fmt.Fprintln(w, "\nModules with varying status:")
			for _, f := range flaky {
				fmt.Fprintf(w, "  %s — %d statuses over %d scans\n", f.Module, f.Variants, f.Scans)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("format", "text", "Output format: text or json")
}
