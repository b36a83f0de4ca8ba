// Package parser runs the full slip pipeline: legs, combined odds, score.
package parser

import (
	"errors"
	"strings"

	"github.com/AC350144/ClutchCall/internal/legs"
	"github.com/AC350144/ClutchCall/internal/scorer"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/AC350144/ClutchCall/pkg/oddsmath"
)

// EmptyInputMessage is reported when the slip text is blank
const EmptyInputMessage = "No bet text provided"

// ParseBetText parses a free-text bet slip. It never fails: blank input
// yields an unsuccessful result rather than an error.
func ParseBetText(text string) models.ParsedBet {
	if strings.TrimSpace(text) == "" {
		return models.ParsedBet{
			Success:        false,
			Error:          EmptyInputMessage,
			Legs:           []models.BetLeg{},
			QualityScore:   0,
			Analysis:       "",
			Recommendation: models.RecommendationAvoid,
		}
	}

	betLegs := legs.Extract(text)
	result := scorer.Score(betLegs)

	return models.ParsedBet{
		Success:        true,
		Legs:           betLegs,
		TotalOdds:      TotalOdds(betLegs),
		QualityScore:   result.Score,
		Analysis:       result.Analysis,
		Recommendation: result.Recommendation,
	}
}

// TotalOdds is the single leg's odds, or the parlay of all legs. A parlay
// too long to price is capped at +MaxAmericanOdds.
func TotalOdds(betLegs []models.BetLeg) int {
	if len(betLegs) == 1 {
		return betLegs[0].Odds
	}

	odds := make([]int, len(betLegs))
	for i, leg := range betLegs {
		odds[i] = leg.Odds
	}

	combined, err := oddsmath.CombineParlay(odds)
	if errors.Is(err, oddsmath.ErrOddsOutOfRange) {
		return oddsmath.MaxAmericanOdds
	}
	if err != nil {
		return 0
	}
	return combined
}
