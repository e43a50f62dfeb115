package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/readqc/internal/render"
	"github.com/lucasnoah/readqc/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse [fastqc_data.txt]",
	Short: "Parse an existing FastQC data report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		formatter := render.ByName(format)
		if formatter == nil {
			return fmt.Errorf("unknown format %q (want text, json, or markdown)", format)
		}

		res, err := report.ParseFile(args[0])
		if err != nil {
			cmd.SilenceUsage = true
			return err
		}

		return formatter.Format(res, cmd.OutOrStdout())
	},
}

func init() {
	parseCmd.Flags().String("format", "text", "Output format: text, json, or markdown")
}
