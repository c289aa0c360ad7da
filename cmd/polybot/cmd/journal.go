package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"polybot/config"
	"polybot/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the SQLite trade journal",
	Long: `Query and display journaled trade records from the SQLite mirror.

Subcommands:
  trade  - Get one journaled trade by ID
  today  - List trades journaled today
  day    - List trades journaled on a specific day
  wallet - List trades copied from one source wallet

Examples:
  polybot journal -f config.yaml trade 01J8...
  polybot journal -f config.yaml today
  polybot journal -f config.yaml day 2026-08-27
  polybot journal -f config.yaml wallet 0xabc`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get one journaled trade by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades journaled today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades journaled on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalWalletCmd = &cobra.Command{
	Use:   "wallet <address>",
	Short: "List trades copied from one source wallet",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalWallet,
}

var journalConfigPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalWalletCmd)

	journalCmd.PersistentFlags().StringVarP(&journalConfigPath, "config", "f", "", "path to config file (required)")
	journalCmd.MarkPersistentFlagRequired("config")
}

func openSQLiteJournal() (*journal.SQLite, error) {
	cfg, err := config.LoadFromFile(journalConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Journal.Type != "sqlite" {
		return nil, fmt.Errorf("journal queries need journal.type: sqlite")
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	e, err := j.GetTrade(args[0])
	if err != nil {
		return err
	}
	printEntries([]journal.Entry{e})
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	start := time.Now().UTC().Truncate(24 * time.Hour)
	return listJournalDay(start)
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	start, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return fmt.Errorf("parse day %q: %w", args[0], err)
	}
	return listJournalDay(start)
}

func listJournalDay(start time.Time) error {
	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.ListTradesBetween(start, start.Add(24*time.Hour))
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runJournalWallet(cmd *cobra.Command, args []string) error {
	j, err := openSQLiteJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.ListTradesByWallet(args[0])
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func printEntries(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Println("no journaled trades")
		return
	}
	for _, e := range entries {
		profit := "-"
		if e.Profit != nil {
			profit = fmt.Sprintf("$%.2f", *e.Profit)
		}
		fmt.Printf("%s  %s  %-4s %-10s amount=$%.2f price=%.4f profit=%s status=%s",
			e.Timestamp.Format(time.RFC3339), e.TradeID, e.Side, e.TokenName, e.Amount, e.Price, profit, e.Status)
		if e.ErrorReason != "" {
			fmt.Printf(" reason=%s", e.ErrorReason)
		}
		fmt.Println()
	}
	fmt.Printf("%d trades\n", len(entries))
}
