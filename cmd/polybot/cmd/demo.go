package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"polybot/config"
	"polybot/follower"
	"polybot/ledger"
	"polybot/venue"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted copy-trading session against the paper venue",
	Long: `Seed the paper venue with two leaderboard wallets and a handful of
trades, follow them for a few poll cycles, and print the resulting
profit report.

Demonstrates the full flow:
  1. Leaderboard loading and profile filtering
  2. Copy-trade sizing (ratio, min/max)
  3. FIFO matching and realized P&L
  4. Snapshot persistence under a temp directory`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	dataDir, err := os.MkdirTemp("", "polybot-demo-")
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.Ledger.DataDir = dataDir
	cfg.Follow.AutoFollow = true
	cfg.Follow.FollowRatio = 0.5
	cfg.Follow.MinAmount = 1
	cfg.TopTradersCount = 2
	cfg.TargetWallets = nil

	paper := venue.NewPaper()
	paper.AddTrader(
		venue.Trader{Address: "0xaaa1", Name: "alpha"},
		venue.WalletProfile{Address: "0xaaa1", SmartScore: 91, WinRate: 68, TotalPnL: 15400},
	)
	paper.AddTrader(
		venue.Trader{Address: "0xbbb2", Name: "beta"},
		venue.WalletProfile{Address: "0xbbb2", SmartScore: 84, WinRate: 61, TotalPnL: 8200},
	)

	lg := ledger.New(ledger.Options{DataDir: dataDir})
	fl := follower.New(paper, lg, cfg)

	ctx := context.Background()
	if err := fl.Initialize(ctx); err != nil {
		return err
	}

	// Zero timestamps: the paper venue treats them as fresh and the ledger
	// stamps them at ingestion, so every scripted trade lands on this poll.
	script := []venue.Trade{
		{Wallet: "0xaaa1", TokenAddress: "0xt-yes", TokenName: "ELECTION-YES", Side: "BUY", Amount: 200, Price: 0.40},
		{Wallet: "0xaaa1", TokenAddress: "0xt-yes", TokenName: "ELECTION-YES", Side: "SELL", Amount: 220, Price: 0.52},
		{Wallet: "0xbbb2", TokenAddress: "0xt-no", TokenName: "ELECTION-NO", Side: "BUY", Amount: 150, Price: 0.55},
		{Wallet: "0xbbb2", TokenAddress: "0xt-no", TokenName: "ELECTION-NO", Side: "SELL", Amount: 120, Price: 0.41},
	}
	for _, tr := range script {
		paper.PushTrade(tr)
	}

	fl.PollOnce(ctx)

	s := fl.Stats()
	fmt.Printf("demo session: detected=%d executed=%d skipped=%d\n",
		s.TradesDetected, s.TradesExecuted, s.TradesSkipped)

	if err := lg.Destroy(); err != nil {
		return err
	}
	lg.DisplaySummary(os.Stdout)

	fmt.Printf("snapshot written under %s\n", dataDir)
	return nil
}
