// Package stake sizes wagers as a share of bankroll, either from a bet's
// quality tier or from a declared risk mode.
package stake

import (
	"errors"
	"strings"

	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/shopspring/decimal"
)

// ErrNonPositiveBankroll is returned when the bankroll is zero or negative
var ErrNonPositiveBankroll = errors.New("bankroll must be positive")

// Hint is shown to users when no stake advice can be given
const Hint = "Set a positive bankroll first to get stake guidance."

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
	oneHalf = decimal.RequireFromString("1.5")
)

// band is the base and max share of bankroll for a tier
type band struct {
	base decimal.Decimal
	max  decimal.Decimal
}

var tierBands = map[models.Recommendation]band{
	models.RecommendationGood:    {base: decimal.RequireFromString("0.025"), max: decimal.RequireFromString("0.03")},
	models.RecommendationCaution: {base: decimal.RequireFromString("0.015"), max: decimal.RequireFromString("0.02")},
	models.RecommendationAvoid:   {base: decimal.RequireFromString("0.005"), max: decimal.RequireFromString("0.01")},
}

// ForTier sizes a stake from a quality score and its tier. Unknown tiers get
// the avoid band. Aggressive is 1.5x the band max and may exceed it.
func ForTier(bankroll float64, qualityScore int, rec models.Recommendation) (models.StakeRecommendation, error) {
	if bankroll <= 0 {
		return models.StakeRecommendation{}, ErrNonPositiveBankroll
	}

	b, ok := tierBands[rec]
	if !ok {
		b = tierBands[models.RecommendationAvoid]
	}

	roll := decimal.NewFromFloat(bankroll)
	quality := decimal.NewFromInt(int64(qualityScore)).Div(hundred)
	pct := b.base.Add(b.max.Sub(b.base).Mul(quality))

	return models.StakeRecommendation{
		Recommended:  cents(roll.Mul(pct)),
		Conservative: cents(roll.Mul(b.base).Mul(half)),
		Aggressive:   cents(roll.Mul(b.max).Mul(oneHalf)),
		Percentage:   cents(pct.Mul(hundred)),
	}, nil
}

// riskRanges holds the whole-percent stake range per mode
var riskRanges = map[models.RiskMode][2]int{
	models.RiskModeConservative: {1, 2},
	models.RiskModeAggressive:   {2, 5},
}

// ForRiskMode returns the stake range for a risk appetite. Anything other
// than aggressive is treated as conservative.
func ForRiskMode(bankroll float64, mode models.RiskMode) (models.RiskModeStake, error) {
	if bankroll <= 0 {
		return models.RiskModeStake{}, ErrNonPositiveBankroll
	}

	if mode != models.RiskModeAggressive {
		mode = models.RiskModeConservative
	}
	r := riskRanges[mode]

	roll := decimal.NewFromFloat(bankroll)
	return models.RiskModeStake{
		Mode:    mode,
		Low:     cents(roll.Mul(decimal.NewFromInt(int64(r[0]))).Div(hundred)),
		High:    cents(roll.Mul(decimal.NewFromInt(int64(r[1]))).Div(hundred)),
		LowPct:  r[0],
		HighPct: r[1],
	}, nil
}

// PercentOfBankroll returns pct percent of the bankroll, rounded to cents
func PercentOfBankroll(bankroll, pct float64) (float64, error) {
	if bankroll <= 0 {
		return 0, ErrNonPositiveBankroll
	}
	return cents(decimal.NewFromFloat(bankroll).Mul(decimal.NewFromFloat(pct)).Div(hundred)), nil
}

// ParseRiskMode reads a mode name, defaulting to conservative
func ParseRiskMode(s string) models.RiskMode {
	if models.RiskMode(strings.ToLower(strings.TrimSpace(s))) == models.RiskModeAggressive {
		return models.RiskModeAggressive
	}
	return models.RiskModeConservative
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
