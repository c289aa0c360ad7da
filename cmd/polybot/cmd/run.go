package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"polybot/config"
	"polybot/follower"
	"polybot/journal"
	"polybot/ledger"
	"polybot/venue"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Follow wallets and record copy trades until interrupted",
	Long: `Start the wallet follower with settings from a configuration file.

The follower builds its watch list from the venue leaderboard and the
configured target wallets, then polls for new trades and records every
copy attempt in the profit ledger. Ctrl-C stops the follower, flushes a
final snapshot, and prints the report.

This build ships with the paper venue only, so follow.dry_run must stay
enabled; live order routing is a separate concern. Paper fills simulate
execution; set venue.simulate_fills: false to have every order refused
and recorded as a dry-run failure instead.

Example:
  polybot run -f config.yaml`,
	RunE: runRun,
}

var (
	runConfigPath     string
	runReportInterval time.Duration
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().DurationVar(&runReportInterval, "report-interval", 5*time.Minute, "how often to print the profit report")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.Follow.DryRun {
		return fmt.Errorf("live trading is not wired in this build; set follow.dry_run: true")
	}

	j, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	lg := openLedger(cfg, j)

	fl := follower.New(newPaperVenue(cfg), lg, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := fl.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize follower: %w", err)
	}
	if err := fl.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("polybot running, watching %d wallets (Ctrl-C to stop)\n", len(fl.Watching()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	reportTicker := time.NewTicker(runReportInterval)
	defer reportTicker.Stop()

	for {
		select {
		case <-reportTicker.C:
			lg.DisplaySummary(os.Stdout)
		case <-sigCh:
			fmt.Println("\nshutting down...")
			fl.Stop()
			cancel()
			if err := lg.Destroy(); err != nil {
				fmt.Fprintf(os.Stderr, "final snapshot failed: %v\n", err)
			}
			lg.DisplaySummary(os.Stdout)
			return nil
		}
	}
}

// newPaperVenue builds the paper venue in the configured fill mode:
// simulated fills, or refuse-everything so each order is recorded as a
// dry-run failure.
func newPaperVenue(cfg *config.Config) *venue.Paper {
	p := venue.NewPaper()
	p.NoOp = !cfg.Venue.SimulateFills
	return p
}

// openJournal builds the optional trade-mirror sink from config. A nil
// journal disables mirroring.
func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return nil, nil
	}
}

func openLedger(cfg *config.Config, j journal.Journal) *ledger.Ledger {
	interval, _ := cfg.Ledger.ParseAutoSaveInterval()
	return ledger.New(ledger.Options{
		DataDir:          cfg.Ledger.DataDir,
		AutoSaveInterval: interval,
		Journal:          j,
	})
}
