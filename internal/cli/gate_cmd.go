package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/readqc/internal/gate"
	"github.com/lucasnoah/readqc/internal/report"
)

var gateCmd = &cobra.Command{
	Use:   "gate [fastqc_data.txt]",
	Short: "Apply the status gate to an existing FastQC data report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		res, err := report.ParseFile(args[0])
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		result := gate.Evaluate(res, gate.Policy{
			FailOn:          cfg.ReadQC.Gate.FailOn,
			RequiredModules: cfg.ReadQC.Gate.RequiredModules,
		})

		if format == "json" {
			jsonStr, err := result.JSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), jsonStr)
		} else {
			printGate(cmd, result)
		}

		if !result.Passed {
			cmd.SilenceUsage = true
			return fmt.Errorf("gate failed: %d module(s) failed", len(result.RemainingFailures))
		}
		return nil
	},
}

func printGate(cmd *cobra.Command, result *gate.Result) {
	w := cmd.OutOrStdout()
	for _, m := range result.Modules {
		icon := "PASS"
		if !m.Passed {
			icon = "FAIL"
		}
		fmt.Fprintf(w, "[%s] %s — %s\n", icon, m.Module, m.Status)
	}
	for name, f := range result.RemainingFailures {
		if f.Status == "" {
			fmt.Fprintf(w, "[FAIL] %s — %s\n", name, f.Reason)
		}
	}
	if result.Passed {
		fmt.Fprintln(w, "\nGate PASSED")
	} else {
		fmt.Fprintln(w, "\nGate FAILED")
	}
}

func init() {
	gateCmd.Flags().String("format", "text", "Output format: text or json")
}
