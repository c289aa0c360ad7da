package ledger

import "strings"

// Failure reasons form a closed taxonomy so the report can break failures
// down into stable buckets.
const (
	ReasonInsufficientBalance = "insufficient_balance"
	ReasonSlippage            = "slippage"
	ReasonBelowMinimum        = "below_minimum"
	ReasonNetwork             = "network"
	ReasonUnfilled            = "unfilled"
	ReasonMarketNotFound      = "market_not_found"
	ReasonRateLimited         = "rate_limited"
	ReasonNotApproved         = "not_approved"
	ReasonDryRun              = "dry_run"
	ReasonOther               = "other"
)

// reasonRules are tested in order; the first bucket with a matching keyword
// wins, so the more specific buckets come before the catch-all-ish ones.
var reasonRules = []struct {
	reason   string
	keywords []string
}{
	{ReasonInsufficientBalance, []string{"insufficient", "not enough balance", "balance too low"}},
	{ReasonSlippage, []string{"slippage", "price moved", "price changed"}},
	{ReasonBelowMinimum, []string{"minimum", "too small", "min size"}},
	{ReasonNetwork, []string{"timeout", "timed out", "network", "connection refused", "econnrefused"}},
	{ReasonUnfilled, []string{"unable to fill", "not fully filled", "unfilled", "fok"}},
	{ReasonMarketNotFound, []string{"market not found", "condition not found", "not found"}},
	{ReasonRateLimited, []string{"rate limit", "too many requests", "429"}},
	{ReasonNotApproved, []string{"unauthorized", "not approved", "allowance", "forbidden"}},
	{ReasonDryRun, []string{"dry run", "dry-run", "test mode"}},
}

// CategorizeError maps a raw error message onto the failure taxonomy by
// case-insensitive substring match. Unmatched messages land in ReasonOther.
func CategorizeError(msg string) string {
	m := strings.ToLower(msg)
	for _, rule := range reasonRules {
		for _, kw := range rule.keywords {
			if strings.Contains(m, kw) {
				return rule.reason
			}
		}
	}
	return ReasonOther
}
