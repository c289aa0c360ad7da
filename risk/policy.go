package risk

// Policy holds the copy-trade sizing rules applied to every observed source
// trade before an order is placed.
type Policy struct {
	// FollowRatio scales the source trade's notional, 0 < ratio <= 1.
	FollowRatio float64 // e.g. 0.1

	// Amount bounds for the scaled copy, in quote currency.
	MinAmount float64 // skip below this
	MaxAmount float64 // clamp above this; 0 disables the cap

	// SideFilter restricts copying to one side ("BUY"/"SELL"); empty
	// copies both.
	SideFilter string

	// ExcludeTokens are token addresses never copied.
	ExcludeTokens []string
}

// ProfilePolicy holds the wallet selection filters applied before a wallet
// joins the watch list.
type ProfilePolicy struct {
	MinWinRate    float64 // percent, 0..100
	MinSmartScore float64 // 0..100
}

// SourceTrade is the subset of an observed trade the sizing rules look at.
type SourceTrade struct {
	TokenAddress string
	Side         string
	Amount       float64
	Price        float64
}
