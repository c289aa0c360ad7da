package risk

import "fmt"

type Violation struct {
	Code string
	Msg  string
}

type Decision struct {
	Allowed    bool
	Violations []Violation

	// Amount is the scaled, clamped copy notional. Meaningful only when
	// Allowed.
	Amount float64
	// Clamped reports that Amount was cut to the policy maximum.
	Clamped bool
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Evaluate sizes a copy of the source trade under the policy. Skips come
// back as violations with codes the caller can log or count; hitting the
// maximum is not a violation, the copy is simply clamped there.
func Evaluate(p Policy, t SourceTrade) Decision {
	d := Decision{Allowed: true}

	if t.Amount <= 0 {
		d.add("NO_AMOUNT", "source amount must be positive")
		return d
	}
	if p.SideFilter != "" && t.Side != p.SideFilter {
		d.add("SIDE_FILTERED",
			fmt.Sprintf("side %s filtered out (only copying %s)", t.Side, p.SideFilter))
	}
	for _, token := range p.ExcludeTokens {
		if t.TokenAddress == token {
			d.add("TOKEN_EXCLUDED", fmt.Sprintf("token %s is excluded", token))
			break
		}
	}

	d.Amount = t.Amount * p.FollowRatio

	if d.Amount < p.MinAmount {
		d.add("BELOW_MIN_AMOUNT",
			fmt.Sprintf("copy amount %.2f below minimum %.2f", d.Amount, p.MinAmount))
	}
	if p.MaxAmount > 0 && d.Amount > p.MaxAmount {
		d.Amount = p.MaxAmount
		d.Clamped = true
	}

	return d
}

// EvaluateProfile decides whether a wallet's analytics profile passes the
// follow filters.
func EvaluateProfile(p ProfilePolicy, winRate, smartScore float64) Decision {
	d := Decision{Allowed: true}

	if p.MinWinRate > 0 && winRate < p.MinWinRate {
		d.add("WIN_RATE_TOO_LOW",
			fmt.Sprintf("win rate %.1f%% below minimum %.1f%%", winRate, p.MinWinRate))
	}
	if p.MinSmartScore > 0 && smartScore < p.MinSmartScore {
		d.add("SMART_SCORE_TOO_LOW",
			fmt.Sprintf("smart score %.0f below minimum %.0f", smartScore, p.MinSmartScore))
	}

	return d
}
