package ledger

// matchSell pairs an incoming sell with the oldest open buy for the same
// wallet and token (and condition id, when the sell carries one), then
// realizes profit on the sell leg. Caller holds l.mu.
//
// A sell with no open buy stays OPEN forever: matching only ever looks for
// open buys, so a later buy will not claim it. The upstream system behaved
// the same way, treating such a sell as the close of a position opened
// before tracking began, and the ledger preserves that rather than guessing
// at a retry rule.
func (l *Ledger) matchSell(sell *TradeRecord) {
	buy := l.findOpenBuy(sell)
	if buy == nil {
		return
	}

	profit := realizedProfit(buy, sell)

	pct := 0.0
	if notional := buy.Amount * buy.Price; notional > 0 {
		pct = profit / notional * 100
	}

	sell.Profit = &profit
	sell.ProfitPercent = &pct
	sell.Status = StatusClosed
	buy.Status = StatusClosed

	l.updateGlobalTotals(profit)
}

// findOpenBuy scans the log FIFO-style: among all open buys for the sell's
// bucket, the one with the smallest timestamp wins.
func (l *Ledger) findOpenBuy(sell *TradeRecord) *TradeRecord {
	var oldest *TradeRecord
	for _, rec := range l.records {
		if rec.Side != Buy || rec.Status != StatusOpen {
			continue
		}
		if rec.WalletAddress != sell.WalletAddress || rec.TokenAddress != sell.TokenAddress {
			continue
		}
		if sell.ConditionID != "" && rec.ConditionID != sell.ConditionID {
			continue
		}
		if oldest == nil || rec.Timestamp.Before(oldest.Timestamp) {
			oldest = rec
		}
	}
	return oldest
}

// realizedProfit computes notional profit when both legs carry a real
// price, and falls back to the plain amount difference when either price is
// unknown.
func realizedProfit(buy, sell *TradeRecord) float64 {
	if buy.Price > 0 && sell.Price > 0 {
		return sell.Amount*sell.Price - buy.Amount*buy.Price
	}
	return sell.Amount - buy.Amount
}
