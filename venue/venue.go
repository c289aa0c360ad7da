package venue

import (
	"context"
	"time"
)

// Client is the narrow boundary to the external trading venue. The core
// never talks to the venue directly; the follower consumes this interface
// and feeds the resulting events into the ledger.
type Client interface {
	GetTopTraders(ctx context.Context, n int) ([]Trader, error)
	GetWalletProfile(ctx context.Context, address string) (WalletProfile, error)
	// RecentTrades returns trades the wallet executed after since, oldest
	// first.
	RecentTrades(ctx context.Context, wallet string, since time.Time) ([]Trade, error)
	// PlaceOrder submits a copy order. A returned error means the attempt
	// never executed; the caller records it as a failed trade.
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderFill, error)
}

// Trader is one leaderboard entry.
type Trader struct {
	Address string
	Name    string
}

// WalletProfile is the analytics view of a wallet used for follow filters.
type WalletProfile struct {
	Address    string
	SmartScore float64 // 0..100
	WinRate    float64 // percent, 0..100
	TotalPnL   float64
}

// Trade is one observed trade by a followed wallet.
type Trade struct {
	Wallet       string
	TokenAddress string
	TokenName    string
	Side         string // "BUY" or "SELL"
	Amount       float64
	Price        float64
	Timestamp    time.Time
	ConditionID  string
	MarketID     string
}

type OrderRequest struct {
	TokenAddress string
	TokenName    string
	Side         string
	Amount       float64
	Price        float64
	ConditionID  string
	MarketID     string
}

type OrderFill struct {
	OrderID string
	Amount  float64
	Price   float64
}
