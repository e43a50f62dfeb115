package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/readqc/internal/fastqc"
	"github.com/lucasnoah/readqc/internal/gate"
)

var runCmd = &cobra.Command{
	Use:   "run [reads...]",
	Short: "Run FastQC over read files, parse the reports, and gate the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir == "" {
			outDir = cfg.ReadQC.FastQC.OutDir
		}
		threads, _ := cmd.Flags().GetInt("threads")
		if threads == 0 {
			threads = cfg.ReadQC.FastQC.Threads
		}

		analysis := fastqc.NewAnalysis(args,
			fastqc.WithBinary(cfg.ReadQC.FastQC.Binary),
			fastqc.WithOutDir(outDir),
			fastqc.WithThreads(threads),
		)

		cmd.SilenceUsage = true
		results, err := analysis.Results(cmd.Context())
		if err != nil {
			return err
		}

		d, cleanup, err := openDB(cfg.ReadQC.DBPath)
		if err != nil {
			return err
		}
		defer cleanup()

		policy := gate.Policy{
			FailOn:          cfg.ReadQC.Gate.FailOn,
			RequiredModules: cfg.ReadQC.Gate.RequiredModules,
		}

		w := cmd.OutOrStdout()
		failed := 0
		for _, path := range analysis.ReadPaths() {
			res := results[path]
			verdict := gate.Evaluate(res, policy)

			if _, err := d.LogScan(path, analysis.ReportPath(path), res, &verdict.Passed); err != nil {
				return fmt.Errorf("log scan for %s: %w", path, err)
			}

			icon := "PASS"
			if !verdict.Passed {
				icon = "FAIL"
				failed++
			}
			fmt.Fprintf(w, "[%s] %s — %d modules, %d failing\n",
				icon, path, res.Len(), len(verdict.RemainingFailures))
			for name, f := range verdict.RemainingFailures {
				fmt.Fprintf(w, "       %s: %s\n", name, f.Reason)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d read files failed the gate", failed, len(args))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().String("out-dir", "", "Directory for FastQC output (overrides config)")
	runCmd.Flags().Int("threads", 0, "FastQC thread count (overrides config)")
}
