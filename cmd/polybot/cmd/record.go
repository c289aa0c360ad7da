package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"polybot/config"
	"polybot/ledger"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record one manual trade event in the ledger",
	Long: `Append a single trade event to the profit ledger, for manual-mode
bookkeeping or for backfilling trades observed elsewhere. Sells are
matched against the oldest open buy for the same wallet and token.

Examples:
  polybot record --wallet 0xabc --token 0xdef --side BUY --amount 100 --price 0.45
  polybot record --wallet 0xabc --token 0xdef --side SELL --amount 110 --price 0.52
  polybot record --wallet 0xabc --token 0xdef --side BUY --amount 50 --failed --error "insufficient balance"`,
	RunE: runRecord,
}

var (
	recordConfigPath string
	recordWallet     string
	recordToken      string
	recordTokenName  string
	recordSide       string
	recordAmount     float64
	recordPrice      float64
	recordCondition  string
	recordFailed     bool
	recordError      string
)

func init() {
	rootCmd.AddCommand(recordCmd)

	recordCmd.Flags().StringVarP(&recordConfigPath, "config", "f", "", "path to config file (defaults apply when omitted)")
	recordCmd.Flags().StringVar(&recordWallet, "wallet", "", "source wallet address (required)")
	recordCmd.Flags().StringVar(&recordToken, "token", "", "token address (required)")
	recordCmd.Flags().StringVar(&recordTokenName, "name", "", "token display name")
	recordCmd.Flags().StringVar(&recordSide, "side", "", "BUY or SELL (required)")
	recordCmd.Flags().Float64Var(&recordAmount, "amount", 0, "notional amount in dollars")
	recordCmd.Flags().Float64Var(&recordPrice, "price", 0, "unit price (0 when unknown)")
	recordCmd.Flags().StringVar(&recordCondition, "condition", "", "venue condition id")
	recordCmd.Flags().BoolVar(&recordFailed, "failed", false, "record a failed order attempt")
	recordCmd.Flags().StringVar(&recordError, "error", "", "error message for a failed attempt")
	recordCmd.MarkFlagRequired("wallet")
	recordCmd.MarkFlagRequired("token")
	recordCmd.MarkFlagRequired("side")
}

func runRecord(cmd *cobra.Command, args []string) error {
	if recordSide != "BUY" && recordSide != "SELL" {
		return fmt.Errorf("side must be BUY or SELL")
	}

	cfg := config.Default()
	if recordConfigPath != "" {
		loaded, err := config.LoadFromFile(recordConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	lg := openLedger(cfg, nil)

	input := ledger.TradeInput{
		WalletAddress: recordWallet,
		TokenAddress:  recordToken,
		TokenName:     recordTokenName,
		Side:          ledger.Side(recordSide),
		Amount:        recordAmount,
		Price:         recordPrice,
		Timestamp:     time.Now(),
		ConditionID:   recordCondition,
	}
	if recordFailed {
		input.Status = ledger.StatusFailed
		input.Error = recordError
	}

	rec := lg.RecordTrade(input)
	if err := lg.Destroy(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	fmt.Printf("recorded %s %s %s status=%s", rec.ID, rec.Side, rec.TokenAddress, rec.Status)
	if rec.Profit != nil {
		fmt.Printf(" profit=$%.2f (%.2f%%)", *rec.Profit, *rec.ProfitPercent)
	}
	if rec.Status == ledger.StatusFailed {
		fmt.Printf(" reason=%s", rec.ErrorReason)
	}
	fmt.Println()
	return nil
}
