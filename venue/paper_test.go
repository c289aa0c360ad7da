package venue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperTopTraders(t *testing.T) {
	t.Parallel()

	p := NewPaper()
	p.AddTrader(Trader{Address: "0xaaa1"}, WalletProfile{Address: "0xaaa1", SmartScore: 91})
	p.AddTrader(Trader{Address: "0xbbb2"}, WalletProfile{Address: "0xbbb2", SmartScore: 84})

	traders, err := p.GetTopTraders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, traders, 1)
	assert.Equal(t, "0xaaa1", traders[0].Address)

	traders, err = p.GetTopTraders(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, traders, 2)
}

func TestPaperWalletProfile(t *testing.T) {
	t.Parallel()

	p := NewPaper()
	p.SetProfile(WalletProfile{Address: "0xaaa1", WinRate: 68})

	profile, err := p.GetWalletProfile(context.Background(), "0xaaa1")
	require.NoError(t, err)
	assert.InDelta(t, 68.0, profile.WinRate, 1e-9)

	_, err = p.GetWalletProfile(context.Background(), "0xmissing")
	assert.Error(t, err)
}

func TestPaperRecentTradesDrains(t *testing.T) {
	t.Parallel()

	p := NewPaper()
	p.PushTrade(Trade{Wallet: "0xaaa1", TokenAddress: "0xtok", Side: "BUY", Amount: 100})

	trades, err := p.RecentTrades(context.Background(), "0xaaa1", time.Time{})
	require.NoError(t, err)
	assert.Len(t, trades, 1)

	trades, err = p.RecentTrades(context.Background(), "0xaaa1", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestPaperRecentTradesSinceFilter(t *testing.T) {
	t.Parallel()

	p := NewPaper()
	now := time.Now()
	p.PushTrade(Trade{Wallet: "0xaaa1", Timestamp: now.Add(-time.Hour)})
	p.PushTrade(Trade{Wallet: "0xaaa1", Timestamp: now})
	p.PushTrade(Trade{Wallet: "0xaaa1"}) // zero timestamp is always fresh

	trades, err := p.RecentTrades(context.Background(), "0xaaa1", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, trades, 2)
}

func TestPaperPlaceOrder(t *testing.T) {
	t.Parallel()

	p := NewPaper()
	fill, err := p.PlaceOrder(context.Background(), OrderRequest{
		TokenAddress: "0xtok", Side: "BUY", Amount: 50, Price: 0.4,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, fill.OrderID)
	assert.InDelta(t, 50.0, fill.Amount, 1e-9)
	require.Len(t, p.Fills(), 1)
}

func TestPaperNoOpRefusesOrders(t *testing.T) {
	t.Parallel()

	p := NewPaper()
	p.NoOp = true

	_, err := p.PlaceOrder(context.Background(), OrderRequest{Amount: 50})
	assert.ErrorIs(t, err, ErrDryRun)
	assert.Empty(t, p.Fills())
}
