package venue

import (
	"context"
	"errors"
	"sync"
	"time"

	"polybot/internal/id"
)

// ErrDryRun is returned by a no-op Paper client so callers can record the
// attempt without any order reaching a venue.
var ErrDryRun = errors.New("dry run: order not submitted")

// Paper is an in-memory venue used for tests and dry-run mode. Trades are
// scripted with PushTrade and drained by RecentTrades; orders either fill
// immediately or, when NoOp is set, come back as dry-run failures.
type Paper struct {
	mu       sync.Mutex
	traders  []Trader
	profiles map[string]WalletProfile
	pending  map[string][]Trade
	fills    []OrderFill

	// NoOp makes PlaceOrder refuse every order with ErrDryRun.
	NoOp bool
}

func NewPaper() *Paper {
	return &Paper{
		profiles: make(map[string]WalletProfile),
		pending:  make(map[string][]Trade),
	}
}

// AddTrader appends a leaderboard entry and its profile.
func (p *Paper) AddTrader(t Trader, profile WalletProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.traders = append(p.traders, t)
	p.profiles[t.Address] = profile
}

// SetProfile registers a profile without a leaderboard entry.
func (p *Paper) SetProfile(profile WalletProfile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[profile.Address] = profile
}

// PushTrade queues a trade to be observed on the wallet's next poll.
func (p *Paper) PushTrade(t Trade) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[t.Wallet] = append(p.pending[t.Wallet], t)
}

// Fills returns every order the paper venue has accepted.
func (p *Paper) Fills() []OrderFill {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]OrderFill, len(p.fills))
	copy(out, p.fills)
	return out
}

func (p *Paper) GetTopTraders(ctx context.Context, n int) ([]Trader, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n > len(p.traders) {
		n = len(p.traders)
	}
	out := make([]Trader, n)
	copy(out, p.traders[:n])
	return out, nil
}

func (p *Paper) GetWalletProfile(ctx context.Context, address string) (WalletProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	profile, ok := p.profiles[address]
	if !ok {
		return WalletProfile{}, errors.New("wallet profile not found")
	}
	return profile, nil
}

func (p *Paper) RecentTrades(ctx context.Context, wallet string, since time.Time) ([]Trade, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	queued := p.pending[wallet]
	delete(p.pending, wallet)

	var out []Trade
	for _, t := range queued {
		if t.Timestamp.After(since) || t.Timestamp.IsZero() {
			out = append(out, t)
		}
	}
	return out, nil
}

func (p *Paper) PlaceOrder(ctx context.Context, req OrderRequest) (OrderFill, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.NoOp {
		return OrderFill{}, ErrDryRun
	}

	fill := OrderFill{
		OrderID: id.New(),
		Amount:  req.Amount,
		Price:   req.Price,
	}
	p.fills = append(p.fills, fill)
	return fill, nil
}
