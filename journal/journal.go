// journal/journal.go
package journal

import "time"

// Entry is one finalized ledger record flattened for durable analytical
// storage. Only terminal records reach the journal: realizing sells (with
// profit) and failed order attempts (with a reason).
type Entry struct {
	TradeID     string
	Wallet      string
	Token       string
	TokenName   string
	Side        string
	Amount      float64
	Price       float64
	Timestamp   time.Time
	Status      string
	Profit      *float64
	ErrorReason string
}

type Journal interface {
	RecordTrade(Entry) error
	Close() error
}
