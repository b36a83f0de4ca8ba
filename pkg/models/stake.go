package models

// StakeRecommendation is tier-based stake guidance for a bankroll
type StakeRecommendation struct {
	Recommended  float64 `json:"recommended"`
	Conservative float64 `json:"conservative"`
	Aggressive   float64 `json:"aggressive"`
	Percentage   float64 `json:"percentage"`
}

// RiskMode is a declared risk appetite
type RiskMode string

const (
	RiskModeConservative RiskMode = "conservative"
	RiskModeAggressive   RiskMode = "aggressive"
)

// RiskModeStake is a stake range for a risk mode
type RiskModeStake struct {
	Mode    RiskMode `json:"mode"`
	Low     float64  `json:"low"`
	High    float64  `json:"high"`
	LowPct  int      `json:"lowPct"`
	HighPct int      `json:"highPct"`
}

// Payout is the return on a stake at American odds
type Payout struct {
	DecimalOdds float64 `json:"decimalOdds"`
	Profit      float64 `json:"profit"`
	TotalPayout float64 `json:"totalPayout"`
}
