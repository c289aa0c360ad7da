package ledger

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

type Status string

const (
	// StatusOpen marks an unmatched buy (or an orphan sell, see match.go).
	StatusOpen Status = "OPEN"
	// StatusClosed marks both legs of a matched buy/sell pair.
	StatusClosed Status = "CLOSED"
	// StatusFailed marks an order attempt that never executed.
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// TradeRecord is one entry in the append-only trade log. Once finalized only
// Status, Profit and ProfitPercent may change, and only when the matcher
// closes the record. The store and the matcher share the same record by
// pointer; nothing copies it.
type TradeRecord struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	TokenAddress  string    `json:"tokenAddress"`
	TokenName     string    `json:"tokenName,omitempty"`
	Side          Side      `json:"side"`
	Amount        float64   `json:"amount"`
	Price         float64   `json:"price"`
	Timestamp     time.Time `json:"timestamp"`
	ConditionID   string    `json:"conditionId,omitempty"`
	MarketID      string    `json:"marketId,omitempty"`
	OrderID       string    `json:"orderId,omitempty"`
	Status        Status    `json:"status"`

	// Profit is set on the realizing sell leg only. The matched buy closes
	// with a nil profit: it is the source leg, not the realizing one.
	Profit        *float64 `json:"profit"`
	ProfitPercent *float64 `json:"profitPercent"`

	Error       string `json:"error,omitempty"`
	ErrorReason string `json:"errorReason,omitempty"`

	// Extra carries forward-compatible fields the venue may attach to an
	// event. The ledger never interprets them.
	Extra map[string]string `json:"extra,omitempty"`
}

// TradeInput is the sole mutation entry point's argument. Missing numeric
// fields count as zero and a zero Timestamp means "now"; RecordTrade never
// rejects an input.
type TradeInput struct {
	WalletAddress string
	TokenAddress  string
	TokenName     string
	Side          Side
	Amount        float64
	Price         float64
	Timestamp     time.Time
	ConditionID   string
	MarketID      string
	OrderID       string

	// Status defaults to OPEN. Callers set StatusFailed for order attempts
	// that never executed; Error/ErrorReason are only read on that path.
	Status      Status
	Error       string
	ErrorReason string

	Extra map[string]string
}
