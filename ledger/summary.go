package ledger

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// Summary is the derived snapshot of overall performance. Deriving it never
// mutates ledger state, so two calls with no intervening RecordTrade return
// identical values (runtime fields aside).
type Summary struct {
	TotalTrades     int `json:"totalTrades"`
	WinningTrades   int `json:"winningTrades"`
	LosingTrades    int `json:"losingTrades"`
	BreakevenTrades int `json:"breakevenTrades"`
	FailedTrades    int `json:"failedTrades"`

	TotalProfit float64 `json:"totalProfit"`
	TotalLoss   float64 `json:"totalLoss"`
	NetProfit   float64 `json:"netProfit"`

	WinRate   float64 `json:"winRate"`
	AvgProfit float64 `json:"avgProfit"`
	AvgLoss   float64 `json:"avgLoss"`

	// ProfitFactor is +Inf when there are profits and no losses.
	ProfitFactor float64 `json:"profitFactor"`

	RuntimeMinutes float64 `json:"runtimeMinutes"`
	TradesPerHour  float64 `json:"tradesPerHour"`
}

// WalletStanding pairs a wallet address with its rolling stats for ranked
// report output.
type WalletStanding struct {
	Address string
	Stats   WalletStats
}

// TokenStanding pairs a token address with its rolling stats.
type TokenStanding struct {
	Address string
	Stats   TokenStats
}

// FailureCount is one row of the failure-reason breakdown.
type FailureCount struct {
	Reason string
	Count  int
}

// Summary derives the current performance summary. All ratio fields are
// guarded: zero denominators yield zero (or the +Inf profit-factor
// sentinel) instead of NaN.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Summary{
		TotalTrades:     l.totalTrades,
		WinningTrades:   l.winningTrades,
		LosingTrades:    l.losingTrades,
		BreakevenTrades: l.breakevenTrades,
		FailedTrades:    l.failedTrades,
		TotalProfit:     l.totalProfit,
		TotalLoss:       l.totalLoss,
		NetProfit:       l.netProfit,
	}

	if closed := l.winningTrades + l.losingTrades; closed > 0 {
		s.WinRate = float64(l.winningTrades) / float64(closed) * 100
	}
	if l.winningTrades > 0 {
		s.AvgProfit = l.totalProfit / float64(l.winningTrades)
	}
	if l.losingTrades > 0 {
		s.AvgLoss = l.totalLoss / float64(l.losingTrades)
	}

	switch {
	case l.totalLoss > 0:
		s.ProfitFactor = l.totalProfit / l.totalLoss
	case l.totalProfit > 0:
		s.ProfitFactor = math.Inf(1)
	}

	s.RuntimeMinutes = math.Floor(time.Since(l.startTime).Minutes())
	if s.RuntimeMinutes > 0 {
		s.TradesPerHour = float64(l.totalTrades) / s.RuntimeMinutes * 60
	}

	return s
}

// TopWallets returns up to n wallets ranked by net profit, descending.
// Ties are broken by address so report output is deterministic across runs.
func (l *Ledger) TopWallets(n int) []WalletStanding {
	l.mu.Lock()
	out := make([]WalletStanding, 0, len(l.walletStats))
	for addr, ws := range l.walletStats {
		out = append(out, WalletStanding{Address: addr, Stats: *ws})
	}
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stats.NetProfit != out[j].Stats.NetProfit {
			return out[i].Stats.NetProfit > out[j].Stats.NetProfit
		}
		return out[i].Address < out[j].Address
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TopTokens returns up to n tokens ranked by total profit, descending.
func (l *Ledger) TopTokens(n int) []TokenStanding {
	l.mu.Lock()
	out := make([]TokenStanding, 0, len(l.tokenStats))
	for addr, ts := range l.tokenStats {
		out = append(out, TokenStanding{Address: addr, Stats: *ts})
	}
	l.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stats.TotalProfit != out[j].Stats.TotalProfit {
			return out[i].Stats.TotalProfit > out[j].Stats.TotalProfit
		}
		return out[i].Address < out[j].Address
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RecentDays returns up to n daily aggregates, most recent first. The
// YYYY-MM-DD keys sort lexicographically in date order.
func (l *Ledger) RecentDays(n int) []DailyStats {
	l.mu.Lock()
	out := make([]DailyStats, 0, len(l.dailyStats))
	for _, ds := range l.dailyStats {
		out = append(out, *ds)
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// FailureBreakdown returns all failure reasons sorted by descending count,
// ties by reason name.
func (l *Ledger) FailureBreakdown() []FailureCount {
	l.mu.Lock()
	out := make([]FailureCount, 0, len(l.failureReasons))
	for reason, count := range l.failureReasons {
		out = append(out, FailureCount{Reason: reason, Count: count})
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// DisplaySummary renders the human-readable report: overall stats, the top
// five wallets and tokens, the last seven days, and the failure breakdown.
func (l *Ledger) DisplaySummary(w io.Writer) {
	s := l.Summary()

	fmt.Fprintf(w, "\n==== Profit Report ====\n\n")

	fmt.Fprintf(w, "Overall:\n")
	fmt.Fprintf(w, "  Total trades:    %d\n", s.TotalTrades)
	fmt.Fprintf(w, "  Winning trades:  %d (%.2f%%)\n", s.WinningTrades, s.WinRate)
	fmt.Fprintf(w, "  Losing trades:   %d\n", s.LosingTrades)
	fmt.Fprintf(w, "  Breakeven:       %d\n", s.BreakevenTrades)
	fmt.Fprintf(w, "  Failed:          %d\n\n", s.FailedTrades)

	fmt.Fprintf(w, "P&L:\n")
	fmt.Fprintf(w, "  Total profit:    $%.2f\n", s.TotalProfit)
	fmt.Fprintf(w, "  Total loss:      $%.2f\n", s.TotalLoss)
	fmt.Fprintf(w, "  Net profit:      $%.2f\n", s.NetProfit)
	fmt.Fprintf(w, "  Avg profit:      $%.2f\n", s.AvgProfit)
	fmt.Fprintf(w, "  Avg loss:        $%.2f\n", s.AvgLoss)
	fmt.Fprintf(w, "  Profit factor:   %s\n\n", formatFactor(s.ProfitFactor))

	fmt.Fprintf(w, "Throughput:\n")
	fmt.Fprintf(w, "  Runtime:         %.0f min\n", s.RuntimeMinutes)
	fmt.Fprintf(w, "  Trades per hour: %.2f\n\n", s.TradesPerHour)

	if wallets := l.TopWallets(5); len(wallets) > 0 {
		fmt.Fprintf(w, "Top wallets by net profit:\n")
		for i, ws := range wallets {
			fmt.Fprintf(w, "  %d. %s  trades=%d  net=$%.2f\n",
				i+1, shortAddr(ws.Address), ws.Stats.TotalTrades, ws.Stats.NetProfit)
		}
		fmt.Fprintln(w)
	}

	if tokens := l.TopTokens(5); len(tokens) > 0 {
		fmt.Fprintf(w, "Top tokens by total profit:\n")
		for i, ts := range tokens {
			name := ts.Stats.TokenName
			if name == "" {
				name = shortAddr(ts.Address)
			}
			fmt.Fprintf(w, "  %d. %s  trades=%d  profit=$%.2f\n",
				i+1, name, ts.Stats.TotalTrades, ts.Stats.TotalProfit)
		}
		fmt.Fprintln(w)
	}

	if days := l.RecentDays(7); len(days) > 0 {
		fmt.Fprintf(w, "Last days:\n")
		for _, d := range days {
			fmt.Fprintf(w, "  %s  trades=%d  net=$%.2f\n", d.Date, d.TotalTrades, d.NetProfit)
		}
		fmt.Fprintln(w)
	}

	if failures := l.FailureBreakdown(); len(failures) > 0 {
		fmt.Fprintf(w, "Failure reasons:\n")
		for _, fc := range failures {
			fmt.Fprintf(w, "  %-22s %d\n", fc.Reason, fc.Count)
		}
		fmt.Fprintln(w)
	}
}

func formatFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", pf)
}

func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:10] + "..."
}
