package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polybot/config"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the profit report from the saved snapshot",
	Long: `Load the profit-history snapshot and render the summary: overall win
rate and P&L, top wallets and tokens, recent daily totals, and the
failure-reason breakdown. Read-only; nothing is written back.

Examples:
  polybot report
  polybot report -f config.yaml`,
	RunE: runReport,
}

var reportConfigPath string

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportConfigPath, "config", "f", "", "path to config file (defaults apply when omitted)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if reportConfigPath != "" {
		loaded, err := config.LoadFromFile(reportConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	lg := openLedger(cfg, nil)
	lg.DisplaySummary(os.Stdout)
	return nil
}
