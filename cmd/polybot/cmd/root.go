package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polybot",
	Short: "A wallet-following copy-trade bot with a durable profit ledger",
	Long: `Polybot follows high-performing wallets on a prediction-market venue,
mirrors their trades at a configurable scale, and keeps a durable ledger
of every attempt with full profit/loss accounting.

It provides tools for:
  - Following leaderboard or hand-picked source wallets
  - Copy-trade sizing with ratio scaling and amount limits
  - FIFO buy/sell matching with realized P&L
  - Rolling per-wallet, per-token, per-day and failure-reason aggregates
  - Crash-safe JSON snapshots plus an optional CSV/SQLite trade journal`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
