// Package follower watches a set of source wallets on the trading venue,
// sizes copy trades for everything they do, and records the outcome of each
// attempt in the ledger. It owns the polling schedule; the ledger only ever
// reacts to the trade events handed to it.
package follower

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"polybot/config"
	"polybot/ledger"
	"polybot/risk"
	"polybot/venue"
)

// Stats counts follow activity since the follower started.
type Stats struct {
	TradesDetected int
	TradesExecuted int
	TradesSkipped  int
}

type Follower struct {
	client  venue.Client
	ledger  *ledger.Ledger
	cfg     *config.Config
	limiter *rate.Limiter

	policy  risk.Policy
	profile risk.ProfilePolicy

	mu       sync.Mutex
	watching []string
	seen     map[string]bool
	lastPoll map[string]time.Time
	stats    Stats
	running  bool

	stop chan struct{}
	done chan struct{}
}

// New wires a follower to a venue client and a ledger. The venue limiter is
// shared across all outbound calls, so a large watch list cannot exceed the
// configured request rate.
func New(client venue.Client, lg *ledger.Ledger, cfg *config.Config) *Follower {
	return &Follower{
		client:  client,
		ledger:  lg,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.Venue.RequestsPerSecond), cfg.Venue.Burst),
		policy: risk.Policy{
			FollowRatio:   cfg.Follow.FollowRatio,
			MinAmount:     cfg.Follow.MinAmount,
			MaxAmount:     cfg.Follow.MaxAmount,
			SideFilter:    cfg.Follow.SideFilter,
			ExcludeTokens: cfg.Filters.ExcludeTokens,
		},
		profile: risk.ProfilePolicy{
			MinWinRate:    cfg.Filters.MinWinRate * 100,
			MinSmartScore: cfg.Filters.MinSmartScore,
		},
		seen:     make(map[string]bool),
		lastPoll: make(map[string]time.Time),
	}
}

// Initialize builds the watch list: leaderboard wallets that pass the
// profile filters, plus every explicitly configured target wallet.
func (f *Follower) Initialize(ctx context.Context) error {
	if f.cfg.TopTradersCount > 0 {
		if err := f.loadTopTraders(ctx); err != nil {
			log.Printf("follower: loading top traders: %v", err)
		}
	}

	for _, wallet := range f.cfg.TargetWallets {
		if err := f.AddWallet(ctx, wallet); err != nil {
			log.Printf("follower: add wallet %s: %v", wallet, err)
		}
	}

	if len(f.Watching()) == 0 {
		return fmt.Errorf("no wallets to follow")
	}
	log.Printf("follower: watching %d wallets", len(f.Watching()))
	return nil
}

func (f *Follower) loadTopTraders(ctx context.Context) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	traders, err := f.client.GetTopTraders(ctx, f.cfg.TopTradersCount)
	if err != nil {
		return fmt.Errorf("get top traders: %w", err)
	}

	for _, trader := range traders {
		if err := f.AddWallet(ctx, trader.Address); err != nil {
			log.Printf("follower: skipping trader %s: %v", trader.Address, err)
		}
	}
	return nil
}

// AddWallet fetches the wallet's profile, applies the follow filters, and
// adds it to the watch list. Adding a wallet twice is a no-op.
func (f *Follower) AddWallet(ctx context.Context, address string) error {
	f.mu.Lock()
	if f.seen[address] {
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	profile, err := f.client.GetWalletProfile(ctx, address)
	if err != nil {
		return fmt.Errorf("get wallet profile: %w", err)
	}

	if d := risk.EvaluateProfile(f.profile, profile.WinRate, profile.SmartScore); !d.Allowed {
		return fmt.Errorf("profile rejected: %s", d.Violations[0].Msg)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[address] {
		return nil
	}
	f.seen[address] = true
	f.watching = append(f.watching, address)
	f.lastPoll[address] = time.Now()

	log.Printf("follower: following %s (score=%.0f winRate=%.1f%% pnl=$%.2f)",
		address, profile.SmartScore, profile.WinRate, profile.TotalPnL)
	return nil
}

// Watching returns the watch list in insertion order.
func (f *Follower) Watching() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.watching))
	copy(out, f.watching)
	return out
}

// Stats returns follow counters since start.
func (f *Follower) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// Start launches the poll loop. It returns an error when already running.
func (f *Follower) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.running {
		f.mu.Unlock()
		return fmt.Errorf("follower already running")
	}
	f.running = true
	f.stop = make(chan struct{})
	f.done = make(chan struct{})
	f.mu.Unlock()

	interval, err := f.cfg.Follow.ParseWatchInterval()
	if err != nil || interval <= 0 {
		interval = 5 * time.Second
	}

	go f.loop(ctx, interval)
	return nil
}

func (f *Follower) loop(ctx context.Context, interval time.Duration) {
	defer close(f.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stop:
			return
		case <-ticker.C:
			f.PollOnce(ctx)
		}
	}
}

// Stop halts the poll loop and logs the follow counters. Safe to call when
// the follower never started.
func (f *Follower) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	close(f.stop)
	done := f.done
	f.mu.Unlock()

	<-done

	s := f.Stats()
	log.Printf("follower: stopped (detected=%d executed=%d skipped=%d)",
		s.TradesDetected, s.TradesExecuted, s.TradesSkipped)
}

// PollOnce checks every watched wallet for new trades and handles each one.
// Exposed so callers (and tests) can drive the loop manually.
func (f *Follower) PollOnce(ctx context.Context) {
	for _, wallet := range f.Watching() {
		if err := f.pollWallet(ctx, wallet); err != nil {
			log.Printf("follower: polling %s: %v", wallet, err)
		}
	}
}

func (f *Follower) pollWallet(ctx context.Context, wallet string) error {
	f.mu.Lock()
	since := f.lastPoll[wallet]
	f.mu.Unlock()

	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	trades, err := f.client.RecentTrades(ctx, wallet, since)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.lastPoll[wallet] = time.Now()
	f.mu.Unlock()

	for _, trade := range trades {
		f.handleTrade(ctx, trade)
	}
	return nil
}

// handleTrade sizes a copy of one observed source trade and records the
// attempt's outcome. Nothing here ever panics the loop: venue rejections
// become failed ledger records and policy skips become counters.
func (f *Follower) handleTrade(ctx context.Context, src venue.Trade) {
	f.mu.Lock()
	f.stats.TradesDetected++
	f.mu.Unlock()

	d := risk.Evaluate(f.policy, risk.SourceTrade{
		TokenAddress: src.TokenAddress,
		Side:         src.Side,
		Amount:       src.Amount,
		Price:        src.Price,
	})
	if !d.Allowed {
		f.mu.Lock()
		f.stats.TradesSkipped++
		f.mu.Unlock()
		log.Printf("follower: skipping %s %s by %s: %s",
			src.Side, src.TokenAddress, src.Wallet, d.Violations[0].Msg)
		return
	}
	if d.Clamped {
		log.Printf("follower: copy amount clamped to %.2f for %s", d.Amount, src.TokenAddress)
	}

	if !f.cfg.Follow.AutoFollow {
		log.Printf("follower: auto-follow disabled, observed %s %s $%.2f by %s",
			src.Side, src.TokenAddress, src.Amount, src.Wallet)
		return
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return
	}
	fill, err := f.client.PlaceOrder(ctx, venue.OrderRequest{
		TokenAddress: src.TokenAddress,
		TokenName:    src.TokenName,
		Side:         src.Side,
		Amount:       d.Amount,
		Price:        src.Price,
		ConditionID:  src.ConditionID,
		MarketID:     src.MarketID,
	})

	input := ledger.TradeInput{
		WalletAddress: src.Wallet,
		TokenAddress:  src.TokenAddress,
		TokenName:     src.TokenName,
		Side:          ledger.Side(src.Side),
		Amount:        d.Amount,
		Price:         src.Price,
		Timestamp:     src.Timestamp,
		ConditionID:   src.ConditionID,
		MarketID:      src.MarketID,
	}

	if err != nil {
		input.Status = ledger.StatusFailed
		input.Error = err.Error()
		f.ledger.RecordTrade(input)
		return
	}

	input.OrderID = fill.OrderID
	f.ledger.RecordTrade(input)

	f.mu.Lock()
	f.stats.TradesExecuted++
	f.mu.Unlock()
}
