package handlers

// Failure is returned with a 200 status when the input was well-formed but
// could not be computed
type Failure struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	StakeHint string `json:"stakeHint,omitempty"`
}

// ImpliedResponse is the implied probability for a price
type ImpliedResponse struct {
	Odds               int     `json:"odds"`
	ImpliedProbability float64 `json:"impliedProbability"`
	DecimalOdds        float64 `json:"decimalOdds"`
}

// ParlayRequest lists the American odds of each leg
type ParlayRequest struct {
	Odds []int `json:"odds"`
}

// ParlayResponse is the combined price of a parlay
type ParlayResponse struct {
	Legs         int     `json:"legs"`
	CombinedOdds int     `json:"combinedOdds"`
	Display      string  `json:"display"`
	DecimalOdds  float64 `json:"decimalOdds"`
	Probability  float64 `json:"probability"`
}

// PercentResponse is a slice of a bankroll
type PercentResponse struct {
	Bankroll float64 `json:"bankroll"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
}
