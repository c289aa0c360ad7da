package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	// Long autosave interval keeps the debounce timer from firing during
	// the test; the temp dir isolates snapshots.
	return New(Options{
		DataDir:          t.TempDir(),
		AutoSaveInterval: time.Hour,
	})
}

func buy(wallet, token string, amount, price float64, ts time.Time) TradeInput {
	return TradeInput{
		WalletAddress: wallet,
		TokenAddress:  token,
		Side:          Buy,
		Amount:        amount,
		Price:         price,
		Timestamp:     ts,
	}
}

func sell(wallet, token string, amount, price float64, ts time.Time) TradeInput {
	in := buy(wallet, token, amount, price, ts)
	in.Side = Sell
	return in
}

var t0 = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func TestRecordTradeDefaults(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	rec := l.RecordTrade(TradeInput{
		WalletAddress: "0xw",
		TokenAddress:  "0xt",
		Side:          Buy,
	})

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, StatusOpen, rec.Status)
	assert.Zero(t, rec.Amount)
	assert.Zero(t, rec.Price)
	assert.WithinDuration(t, time.Now(), rec.Timestamp, 5*time.Second)
	assert.Nil(t, rec.Profit)

	assert.Equal(t, 1, l.Summary().TotalTrades)
}

func TestFIFOMatching(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	first := l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0))
	second := l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0.Add(time.Minute)))
	closing := l.RecordTrade(sell("0xw", "0xt", 110, 1.0, t0.Add(2*time.Minute)))

	assert.Equal(t, StatusClosed, first.Status)
	assert.Equal(t, StatusOpen, second.Status)
	assert.Equal(t, StatusClosed, closing.Status)

	// The buy leg closes without profit; the sell leg realizes it.
	assert.Nil(t, first.Profit)
	require.NotNil(t, closing.Profit)
	assert.InDelta(t, 10.0, *closing.Profit, 1e-9)
}

func TestProfitComputation(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0))
	closing := l.RecordTrade(sell("0xw", "0xt", 110, 1.0, t0.Add(time.Minute)))

	require.NotNil(t, closing.Profit)
	assert.InDelta(t, 10.0, *closing.Profit, 1e-9)
	require.NotNil(t, closing.ProfitPercent)
	assert.InDelta(t, 10.0, *closing.ProfitPercent, 1e-9)
}

func TestFallbackProfitWithoutPrices(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	l.RecordTrade(buy("0xw", "0xt", 100, 0, t0))
	closing := l.RecordTrade(sell("0xw", "0xt", 120, 0, t0.Add(time.Minute)))

	require.NotNil(t, closing.Profit)
	assert.InDelta(t, 20.0, *closing.Profit, 1e-9)

	// Zero buy notional: percent is guarded to zero, not NaN.
	require.NotNil(t, closing.ProfitPercent)
	assert.Zero(t, *closing.ProfitPercent)
}

func TestConditionIDScopesMatching(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	other := l.RecordTrade(TradeInput{
		WalletAddress: "0xw", TokenAddress: "0xt", Side: Buy,
		Amount: 100, Price: 1.0, Timestamp: t0, ConditionID: "cond-a",
	})
	target := l.RecordTrade(TradeInput{
		WalletAddress: "0xw", TokenAddress: "0xt", Side: Buy,
		Amount: 100, Price: 1.0, Timestamp: t0.Add(time.Minute), ConditionID: "cond-b",
	})

	closing := l.RecordTrade(TradeInput{
		WalletAddress: "0xw", TokenAddress: "0xt", Side: Sell,
		Amount: 105, Price: 1.0, Timestamp: t0.Add(2 * time.Minute), ConditionID: "cond-b",
	})

	// The older buy has the wrong condition id and must stay open even
	// though it is first in FIFO order.
	assert.Equal(t, StatusOpen, other.Status)
	assert.Equal(t, StatusClosed, target.Status)
	assert.Equal(t, StatusClosed, closing.Status)
}

func TestUnmatchedSellStaysOpen(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	orphan := l.RecordTrade(sell("0xw", "0xt", 50, 1.0, t0))

	assert.Equal(t, StatusOpen, orphan.Status)
	assert.Nil(t, orphan.Profit)

	s := l.Summary()
	assert.Equal(t, 1, s.TotalTrades)
	assert.Zero(t, s.WinningTrades)
	assert.Zero(t, s.LosingTrades)
	assert.Zero(t, s.NetProfit)

	// An orphan sell is permanent: a later buy never claims it.
	l.RecordTrade(buy("0xw", "0xt", 40, 1.0, t0.Add(time.Minute)))
	assert.Equal(t, StatusOpen, orphan.Status)
}

func TestFailedTradeExclusion(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	rec := l.RecordTrade(TradeInput{
		WalletAddress: "0xw",
		TokenAddress:  "0xt",
		Side:          Buy,
		Amount:        25,
		Status:        StatusFailed,
		Error:         "insufficient balance for order",
	})

	assert.Equal(t, StatusFailed, rec.Status)
	assert.Equal(t, ReasonInsufficientBalance, rec.ErrorReason)
	assert.Nil(t, rec.Profit)

	s := l.Summary()
	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinningTrades)
	assert.Zero(t, s.LosingTrades)
	assert.Zero(t, s.NetProfit)
	assert.Equal(t, 1, s.FailedTrades)

	assert.Equal(t, map[string]int{ReasonInsufficientBalance: 1}, l.FailureReasons())
}

func TestFailedTradeDefaultsToUnknownError(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	rec := l.RecordTrade(TradeInput{
		WalletAddress: "0xw",
		Side:          Buy,
		Status:        StatusFailed,
	})

	assert.Equal(t, "unknown error", rec.Error)
	assert.Equal(t, ReasonOther, rec.ErrorReason)
}

func TestWalletAggregates(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0))
	l.RecordTrade(sell("0xw", "0xt", 110, 1.0, t0.Add(time.Minute)))
	l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0.Add(2*time.Minute)))
	l.RecordTrade(sell("0xw", "0xt", 80, 1.0, t0.Add(3*time.Minute)))

	wallets := l.TopWallets(5)
	require.Len(t, wallets, 1)

	ws := wallets[0].Stats
	assert.Equal(t, 4, ws.TotalTrades)
	assert.Equal(t, 1, ws.WinningTrades)
	assert.Equal(t, 1, ws.LosingTrades)
	assert.InDelta(t, 10.0, ws.TotalProfit, 1e-9)
	assert.InDelta(t, 20.0, ws.TotalLoss, 1e-9)
	assert.InDelta(t, -10.0, ws.NetProfit, 1e-9)
}

func TestTokenAggregates(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	in := buy("0xw", "0xt", 100, 1.0, t0)
	in.TokenName = "ELECTION-YES"
	l.RecordTrade(in)
	l.RecordTrade(sell("0xw", "0xt", 110, 1.0, t0.Add(time.Minute)))
	l.RecordTrade(buy("0xw", "0xt", 50, 1.0, t0.Add(2*time.Minute)))
	l.RecordTrade(sell("0xw", "0xt", 70, 1.0, t0.Add(3*time.Minute)))

	tokens := l.TopTokens(5)
	require.Len(t, tokens, 1)

	ts := tokens[0].Stats
	assert.Equal(t, "ELECTION-YES", ts.TokenName)
	assert.Equal(t, 4, ts.TotalTrades)
	assert.InDelta(t, 330.0, ts.TotalVolume, 1e-9)
	assert.Equal(t, 2, ts.WinningTrades)
	assert.InDelta(t, 30.0, ts.TotalProfit, 1e-9)
	assert.InDelta(t, 15.0, ts.AvgProfit, 1e-9)
}

func TestDailyAggregatesUseUTCDay(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	// 23:30 UTC and 00:30 UTC the next day land in different buckets even
	// when the wall clock of some zone would call them the same evening.
	late := time.Date(2026, 8, 1, 23, 30, 0, 0, time.UTC)
	early := time.Date(2026, 8, 2, 0, 30, 0, 0, time.UTC)

	l.RecordTrade(buy("0xw", "0xt", 100, 1.0, late))
	l.RecordTrade(sell("0xw", "0xt", 110, 1.0, early))

	days := l.RecentDays(7)
	require.Len(t, days, 2)
	assert.Equal(t, "2026-08-02", days[0].Date)
	assert.Equal(t, "2026-08-01", days[1].Date)
	assert.InDelta(t, 10.0, days[0].NetProfit, 1e-9)
	assert.Zero(t, days[1].NetProfit)
}

func TestBreakevenCountsNeitherWinNorLoss(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0))
	l.RecordTrade(sell("0xw", "0xt", 100, 1.0, t0.Add(time.Minute)))

	s := l.Summary()
	assert.Zero(t, s.WinningTrades)
	assert.Zero(t, s.LosingTrades)
	assert.Equal(t, 1, s.BreakevenTrades)
	assert.Zero(t, s.NetProfit)
}

func TestRecordsSharedByReference(t *testing.T) {
	t.Parallel()

	l := newTestLedger(t)

	l.RecordTrade(buy("0xw", "0xt", 100, 1.0, t0))
	before := l.Records()
	l.RecordTrade(sell("0xw", "0xt", 110, 1.0, t0.Add(time.Minute)))

	// The matcher mutated the same record the earlier Records() call
	// returned; the store never copies.
	assert.Equal(t, StatusClosed, before[0].Status)
}
