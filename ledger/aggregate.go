package ledger

import "time"

// WalletStats is the rolling per-wallet view. Created lazily on the first
// trade touching the wallet, never deleted.
type WalletStats struct {
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
	TotalProfit   float64 `json:"totalProfit"`
	TotalLoss     float64 `json:"totalLoss"`
	NetProfit     float64 `json:"netProfit"`
}

// TokenStats is the rolling per-token view. WinningTrades is tracked here
// explicitly so AvgProfit always has a defined denominator.
type TokenStats struct {
	TokenName     string  `json:"tokenName"`
	TotalTrades   int     `json:"totalTrades"`
	TotalVolume   float64 `json:"totalVolume"`
	TotalProfit   float64 `json:"totalProfit"`
	WinningTrades int     `json:"winningTrades"`
	AvgProfit     float64 `json:"avgProfit"`
}

// DailyStats is keyed by UTC calendar day, YYYY-MM-DD.
type DailyStats struct {
	Date        string  `json:"date"`
	TotalTrades int     `json:"totalTrades"`
	TotalProfit float64 `json:"totalProfit"`
	TotalLoss   float64 `json:"totalLoss"`
	NetProfit   float64 `json:"netProfit"`
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// updateGlobalTotals applies a realized profit to the overall counters.
// Exactly one of the win/loss/breakeven counters moves, on strict sign.
func (l *Ledger) updateGlobalTotals(profit float64) {
	l.netProfit += profit

	switch {
	case profit > 0:
		l.winningTrades++
		l.totalProfit += profit
	case profit < 0:
		l.losingTrades++
		l.totalLoss += -profit
	default:
		l.breakevenTrades++
	}
}

func (l *Ledger) updateWalletStats(rec *TradeRecord) {
	ws, ok := l.walletStats[rec.WalletAddress]
	if !ok {
		ws = &WalletStats{}
		l.walletStats[rec.WalletAddress] = ws
	}

	ws.TotalTrades++

	if rec.Profit == nil {
		return
	}
	p := *rec.Profit
	ws.NetProfit += p
	if p > 0 {
		ws.WinningTrades++
		ws.TotalProfit += p
	} else if p < 0 {
		ws.LosingTrades++
		ws.TotalLoss += -p
	}
}

func (l *Ledger) updateTokenStats(rec *TradeRecord) {
	ts, ok := l.tokenStats[rec.TokenAddress]
	if !ok {
		name := rec.TokenName
		if name == "" {
			name = rec.TokenAddress
		}
		ts = &TokenStats{TokenName: name}
		l.tokenStats[rec.TokenAddress] = ts
	}

	ts.TotalTrades++
	ts.TotalVolume += rec.Amount

	if rec.Profit == nil {
		return
	}
	ts.TotalProfit += *rec.Profit
	if *rec.Profit > 0 {
		ts.WinningTrades++
	}
	if ts.WinningTrades > 0 {
		ts.AvgProfit = ts.TotalProfit / float64(ts.WinningTrades)
	}
}

func (l *Ledger) updateDailyStats(rec *TradeRecord) {
	key := dayKey(rec.Timestamp)

	ds, ok := l.dailyStats[key]
	if !ok {
		ds = &DailyStats{Date: key}
		l.dailyStats[key] = ds
	}

	ds.TotalTrades++

	if rec.Profit == nil {
		return
	}
	p := *rec.Profit
	ds.NetProfit += p
	if p > 0 {
		ds.TotalProfit += p
	} else {
		ds.TotalLoss += -p
	}
}
