package models

// AnalyzeRequest is a request to analyze a bet slip
type AnalyzeRequest struct {
	BetText  string   `json:"betText"`
	Bankroll *float64 `json:"bankroll,omitempty"`
	RiskMode string   `json:"riskMode,omitempty"`
}

// AnalyzeResponse is a parsed slip plus stake guidance and team narrative
type AnalyzeResponse struct {
	AnalysisID string `json:"analysisId"`
	ParsedBet
	StakeRecommendation *StakeRecommendation `json:"stakeRecommendation,omitempty"`
	RiskModeStake       *RiskModeStake       `json:"riskModeStake,omitempty"`
	StakeHint           string               `json:"stakeHint,omitempty"`
	EnhancedAnalysis    *Enhancement         `json:"enhancedAnalysis,omitempty"`
}
