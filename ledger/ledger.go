package ledger

import (
	"log"
	"sync"
	"time"

	"polybot/internal/id"
	"polybot/journal"
)

const snapshotFile = "profit-history.json"

// DefaultAutoSaveInterval is how long a quiet period must last before the
// debounced snapshot write fires.
const DefaultAutoSaveInterval = 60 * time.Second

// Options configures a Ledger. The zero value is usable: snapshots go to
// ./data and autosave debounces at DefaultAutoSaveInterval.
type Options struct {
	// DataDir holds the snapshot file. One ledger instance owns the
	// directory exclusively for the life of the process.
	DataDir string

	AutoSaveInterval time.Duration

	// Journal, when set, receives every finalized realizing sell and every
	// failed record. Journal errors are logged, never fatal, and the
	// ledger does not close the journal; the owner does.
	Journal journal.Journal
}

// Ledger is the authoritative in-memory trade log plus its rolling
// aggregates. A single mutex guards the record store and all four aggregate
// views, because a sell's matching step reads and writes the store and must
// not race a concurrent insert for the same wallet/token key.
type Ledger struct {
	mu sync.Mutex

	records []*TradeRecord

	totalTrades     int
	winningTrades   int
	losingTrades    int
	breakevenTrades int
	failedTrades    int

	totalProfit float64
	totalLoss   float64
	netProfit   float64

	walletStats    map[string]*WalletStats
	tokenStats     map[string]*TokenStats
	dailyStats     map[string]*DailyStats
	failureReasons map[string]int

	startTime time.Time

	journal journal.Journal

	dataDir      string
	autoSaveIval time.Duration

	// saveMu serializes snapshot writes so a save requested while another
	// is in flight queues behind it instead of racing the same file.
	saveMu    sync.Mutex
	timerMu   sync.Mutex
	saveTimer *time.Timer
	destroyed bool
}

// New constructs a ledger and hydrates it from a prior snapshot when one
// exists. A missing snapshot is a normal first run; a malformed one is
// logged and discarded. New never fails.
func New(opts Options) *Ledger {
	if opts.DataDir == "" {
		opts.DataDir = "data"
	}
	if opts.AutoSaveInterval <= 0 {
		opts.AutoSaveInterval = DefaultAutoSaveInterval
	}

	l := &Ledger{
		walletStats:    make(map[string]*WalletStats),
		tokenStats:     make(map[string]*TokenStats),
		dailyStats:     make(map[string]*DailyStats),
		failureReasons: make(map[string]int),
		startTime:      time.Now(),
		journal:        opts.Journal,
		dataDir:        opts.DataDir,
		autoSaveIval:   opts.AutoSaveInterval,
	}

	l.loadSnapshot()

	return l
}

// RecordTrade appends exactly one record to the log and returns it
// finalized. Failed inputs are retained for failure analytics but stay out
// of the win-rate denominators; everything else counts toward TotalTrades,
// runs the matcher when it is a sell, and updates all four aggregate views.
func (l *Ledger) RecordTrade(in TradeInput) *TradeRecord {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	rec := &TradeRecord{
		ID:            id.New(),
		WalletAddress: in.WalletAddress,
		TokenAddress:  in.TokenAddress,
		TokenName:     in.TokenName,
		Side:          in.Side,
		Amount:        in.Amount,
		Price:         in.Price,
		Timestamp:     ts,
		ConditionID:   in.ConditionID,
		MarketID:      in.MarketID,
		OrderID:       in.OrderID,
		Status:        StatusOpen,
		Extra:         in.Extra,
	}

	if in.Status == StatusFailed {
		msg := in.Error
		if msg == "" {
			msg = "unknown error"
		}
		reason := in.ErrorReason
		if reason == "" {
			reason = CategorizeError(msg)
		}
		rec.Status = StatusFailed
		rec.Error = msg
		rec.ErrorReason = reason

		l.mu.Lock()
		l.records = append(l.records, rec)
		l.failedTrades++
		l.failureReasons[reason]++
		l.mu.Unlock()

		l.mirror(rec)
		return rec
	}

	l.mu.Lock()
	if rec.Side == Sell {
		l.matchSell(rec)
	}

	l.records = append(l.records, rec)
	l.totalTrades++

	l.updateWalletStats(rec)
	if rec.TokenAddress != "" {
		l.updateTokenStats(rec)
	}
	l.updateDailyStats(rec)
	l.mu.Unlock()

	if rec.Status == StatusClosed {
		l.mirror(rec)
	}

	l.scheduleAutoSave()

	return rec
}

// mirror forwards a terminal record to the optional journal sink.
func (l *Ledger) mirror(rec *TradeRecord) {
	if l.journal == nil {
		return
	}
	if err := l.journal.RecordTrade(journalEntry(rec)); err != nil {
		log.Printf("ledger: journal write failed: %v", err)
	}
}

func journalEntry(rec *TradeRecord) journal.Entry {
	return journal.Entry{
		TradeID:     rec.ID,
		Wallet:      rec.WalletAddress,
		Token:       rec.TokenAddress,
		TokenName:   rec.TokenName,
		Side:        string(rec.Side),
		Amount:      rec.Amount,
		Price:       rec.Price,
		Timestamp:   rec.Timestamp,
		Status:      string(rec.Status),
		Profit:      rec.Profit,
		ErrorReason: rec.ErrorReason,
	}
}

// Records returns a copy of the log slice. The records themselves are
// shared, matching the store/matcher aliasing contract; callers must treat
// them as read-only.
func (l *Ledger) Records() []*TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*TradeRecord, len(l.records))
	copy(out, l.records)
	return out
}

// FailureReasons returns a copy of the failure-reason counts.
func (l *Ledger) FailureReasons() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]int, len(l.failureReasons))
	for k, v := range l.failureReasons {
		out[k] = v
	}
	return out
}

// StartTime reports when this ledger (or the snapshot it was hydrated from)
// began tracking.
func (l *Ledger) StartTime() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.startTime
}
