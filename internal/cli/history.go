package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/readqc/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history [input]",
	Short: "Show recorded scans, optionally filtered by input file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		showModules, _ := cmd.Flags().GetBool("modules")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, cleanup, err := openDB(cfg.ReadQC.DBPath)
		if err != nil {
			return err
		}
		defer cleanup()

		scans, err := d.ScanHistory(input)
		if err != nil {
			return fmt.Errorf("get scan history: %w", err)
		}
		if len(scans) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No scans found.")
			return nil
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-6s %-40s %-8s %-6s %s\n", "ID", "INPUT", "MODULES", "GATE", "TIMESTAMP")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 80))
		for _, s := range scans {
			gateStr := "-"
			if s.GatePassed != nil {
				gateStr = "FAIL"
				if *s.GatePassed {
					gateStr = "PASS"
				}
			}
			fmt.Fprintf(w, "%-6d %-40s %-8d %-6s %s\n", s.ID, s.InputPath, s.ModuleCount, gateStr, s.Timestamp)

			if showModules {
				mods, err := d.ModulesForScan(s.ID)
				if err != nil {
					return fmt.Errorf("get modules for scan %d: %w", s.ID, err)
				}
				for _, m := range mods {
					fmt.Fprintf(w, "       [%s] %s — %s\n", strings.ToUpper(string(m.Status)), m.Name, m.Summary)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("modules", false, "Show per-module statuses for each scan")
}

// openDB opens and migrates the scan database, returning it with a cleanup
// func. An empty path falls back to the default location.
func openDB(path string) (*db.DB, func(), error) {
	if path == "" {
		var err error
		path, err = db.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}
