package ledger

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the full exported ledger state: a pure data-transfer document
// with no behavior, serialized as one JSON file per process.
type Snapshot struct {
	Trades []*TradeRecord `json:"trades"`

	TotalTrades     int `json:"totalTrades"`
	WinningTrades   int `json:"winningTrades"`
	LosingTrades    int `json:"losingTrades"`
	BreakevenTrades int `json:"breakevenTrades"`
	FailedTrades    int `json:"failedTrades"`

	TotalProfit float64 `json:"totalProfit"`
	TotalLoss   float64 `json:"totalLoss"`
	NetProfit   float64 `json:"netProfit"`

	WalletStats    map[string]*WalletStats `json:"walletStats"`
	TokenStats     map[string]*TokenStats  `json:"tokenStats"`
	DailyStats     map[string]*DailyStats  `json:"dailyStats"`
	FailureReasons map[string]int          `json:"failureReasons"`

	StartTime time.Time `json:"startTime"`
	LastSaved time.Time `json:"lastSaved"`
}

func (l *Ledger) snapshotPath() string {
	return filepath.Join(l.dataDir, snapshotFile)
}

// snapshotLocked builds the export document. Caller holds l.mu. Records and
// aggregates are copied by value because the document is marshalled after
// the mutex is released, while the matcher may still mutate the originals.
func (l *Ledger) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Trades:          make([]*TradeRecord, len(l.records)),
		TotalTrades:     l.totalTrades,
		WinningTrades:   l.winningTrades,
		LosingTrades:    l.losingTrades,
		BreakevenTrades: l.breakevenTrades,
		FailedTrades:    l.failedTrades,
		TotalProfit:     l.totalProfit,
		TotalLoss:       l.totalLoss,
		NetProfit:       l.netProfit,
		WalletStats:     make(map[string]*WalletStats, len(l.walletStats)),
		TokenStats:      make(map[string]*TokenStats, len(l.tokenStats)),
		DailyStats:      make(map[string]*DailyStats, len(l.dailyStats)),
		FailureReasons:  make(map[string]int, len(l.failureReasons)),
		StartTime:       l.startTime,
		LastSaved:       time.Now(),
	}
	for i, rec := range l.records {
		c := *rec
		snap.Trades[i] = &c
	}
	for k, v := range l.walletStats {
		c := *v
		snap.WalletStats[k] = &c
	}
	for k, v := range l.tokenStats {
		c := *v
		snap.TokenStats[k] = &c
	}
	for k, v := range l.dailyStats {
		c := *v
		snap.DailyStats[k] = &c
	}
	for k, v := range l.failureReasons {
		snap.FailureReasons[k] = v
	}
	return snap
}

// SaveSnapshot writes the full ledger state to the data directory, creating
// it on demand. The write goes to a temp file in the same directory and is
// renamed over the previous snapshot, so a crash mid-write leaves the old
// file intact for the next load.
func (l *Ledger) SaveSnapshot() error {
	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	l.mu.Lock()
	snap := l.snapshotLocked()
	l.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(l.dataDir, 0o755); err != nil {
		return err
	}

	path := l.snapshotPath()
	tmp, err := os.CreateTemp(l.dataDir, snapshotFile+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// loadSnapshot hydrates ledger state from a prior run. Absent files are a
// normal first start; unreadable or malformed ones are logged and discarded
// so the ledger always starts.
func (l *Ledger) loadSnapshot() {
	data, err := os.ReadFile(l.snapshotPath())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ledger: read snapshot: %v", err)
		}
		return
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("ledger: snapshot %s is malformed, starting empty: %v", l.snapshotPath(), err)
		return
	}

	l.records = snap.Trades
	l.totalTrades = snap.TotalTrades
	l.winningTrades = snap.WinningTrades
	l.losingTrades = snap.LosingTrades
	l.breakevenTrades = snap.BreakevenTrades
	l.failedTrades = snap.FailedTrades
	l.totalProfit = snap.TotalProfit
	l.totalLoss = snap.TotalLoss
	l.netProfit = snap.NetProfit
	if snap.WalletStats != nil {
		l.walletStats = snap.WalletStats
	}
	if snap.TokenStats != nil {
		l.tokenStats = snap.TokenStats
	}
	if snap.DailyStats != nil {
		l.dailyStats = snap.DailyStats
	}
	if snap.FailureReasons != nil {
		l.failureReasons = snap.FailureReasons
	}
	if !snap.StartTime.IsZero() {
		l.startTime = snap.StartTime
	}

	log.Printf("ledger: restored %d trades from %s", len(l.records), l.snapshotPath())
}

// scheduleAutoSave debounces the snapshot write: each qualifying trade
// replaces the pending timer, so a burst of trades produces one save after
// the configured quiet period.
func (l *Ledger) scheduleAutoSave() {
	l.timerMu.Lock()
	defer l.timerMu.Unlock()

	if l.destroyed {
		return
	}
	if l.saveTimer != nil {
		l.saveTimer.Stop()
	}
	l.saveTimer = time.AfterFunc(l.autoSaveIval, func() {
		if err := l.SaveSnapshot(); err != nil {
			log.Printf("ledger: autosave failed (will retry on next trade): %v", err)
		}
	})
}

// Destroy cancels any pending autosave and performs one final synchronous
// snapshot write. It is the shutdown hook; the ledger must not be used
// afterwards.
func (l *Ledger) Destroy() error {
	l.timerMu.Lock()
	if l.saveTimer != nil {
		l.saveTimer.Stop()
		l.saveTimer = nil
	}
	l.destroyed = true
	l.timerMu.Unlock()

	return l.SaveSnapshot()
}
