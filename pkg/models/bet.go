package models

// Sport labels a leg's league
type Sport string

const (
	SportNBA     Sport = "NBA"
	SportNFL     Sport = "NFL"
	SportNHL     Sport = "NHL"
	SportMLB     Sport = "MLB"
	SportSoccer  Sport = "Soccer"
	SportUnknown Sport = "Unknown"
)

// BetType is a best-effort classification of a leg
type BetType string

const (
	BetTypeSpread    BetType = "Spread"
	BetTypeMoneyline BetType = "Moneyline"
	BetTypeTotal     BetType = "Total"
	BetTypeProp      BetType = "Prop"
	BetTypeParlay    BetType = "Parlay" // label only, DetectBetType never returns it
)

// Recommendation is the tier derived from a quality score
type Recommendation string

const (
	RecommendationGood    Recommendation = "good"
	RecommendationCaution Recommendation = "caution"
	RecommendationAvoid   Recommendation = "avoid"
)

// UnknownGame is used when no matchup could be read from a leg
const UnknownGame = "Unknown Game"

// BetLeg represents one wagered selection
type BetLeg struct {
	ID        string  `json:"id"`        // leg-1, leg-2, ...
	Sport     Sport   `json:"sport"`
	Game      string  `json:"game"`
	BetType   BetType `json:"betType"`
	Selection string  `json:"selection"` // odds stripped, max 100 chars
	Odds      int     `json:"odds"`      // American odds, never 0
}

// ParsedBet is the result of parsing one bet slip
type ParsedBet struct {
	Success        bool           `json:"success"`
	Error          string         `json:"error,omitempty"`
	Legs           []BetLeg       `json:"legs"`
	TotalOdds      int            `json:"totalOdds"`
	QualityScore   int            `json:"qualityScore"`
	Analysis       string         `json:"analysis"`
	Recommendation Recommendation `json:"recommendation"`
}

// Matchup is a pair of team names read from a line of text
type Matchup struct {
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"` // "Unknown" when only one side was found
	Game  string `json:"game"`
}
