// Package scorer rates a set of legs with a 10-95 quality score, a narrative
// and a recommendation tier.
package scorer

import (
	"fmt"
	"strings"

	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/AC350144/ClutchCall/pkg/oddsmath"
)

const (
	BaseScore = 70
	MinScore  = 10
	MaxScore  = 95

	goodThreshold    = 75
	cautionThreshold = 55

	// FallbackAnalysis is used when no factor had anything to say
	FallbackAnalysis = "Standard bet with typical risk profile."
)

// Result is the outcome of scoring a set of legs
type Result struct {
	Score          int
	Analysis       string
	Recommendation models.Recommendation
}

// factor adjusts the score and may add one line of narrative
type factor func(legs []models.BetLeg, probs []float64) (delta int, note string)

// factors are evaluated in order; the narrative follows the same order
var factors = []factor{
	legCount,
	heavyFavorites,
	longShots,
	averageProbability,
	combinedProbability,
}

// Score evaluates every factor, clamps the total and derives the tier
func Score(legs []models.BetLeg) Result {
	probs := impliedProbabilities(legs)

	score := BaseScore
	var notes []string
	for _, f := range factors {
		delta, note := f(legs, probs)
		score += delta
		if note != "" {
			notes = append(notes, note)
		}
	}

	score = clamp(score)

	analysis := FallbackAnalysis
	if len(notes) > 0 {
		analysis = strings.Join(notes, " ")
	}

	return Result{
		Score:          score,
		Analysis:       analysis,
		Recommendation: RecommendationFor(score),
	}
}

// RecommendationFor maps a score to its tier
func RecommendationFor(score int) models.Recommendation {
	switch {
	case score >= goodThreshold:
		return models.RecommendationGood
	case score >= cautionThreshold:
		return models.RecommendationCaution
	default:
		return models.RecommendationAvoid
	}
}

func legCount(legs []models.BetLeg, _ []float64) (int, string) {
	switch n := len(legs); {
	case n > 6:
		return -20, "High-risk parlay with many legs. Consider reducing the number of selections."
	case n > 4:
		return -10, "Multi-leg parlay increases risk. Each additional leg compounds the chance of loss."
	case n <= 2:
		return 5, "Conservative bet size with manageable risk."
	}
	return 0, ""
}

func heavyFavorites(legs []models.BetLeg, _ []float64) (int, string) {
	count := 0
	for _, leg := range legs {
		if leg.Odds < -200 {
			count++
		}
	}
	if count == 0 {
		return 0, ""
	}
	return -3 * count, fmt.Sprintf("Contains %d heavy favorite(s). Low payout relative to risk.", count)
}

func longShots(legs []models.BetLeg, _ []float64) (int, string) {
	count := 0
	for _, leg := range legs {
		if leg.Odds > 200 {
			count++
		}
	}
	if count == 0 {
		return 0, ""
	}
	return 2 * count, fmt.Sprintf("Contains %d underdog pick(s). Higher variance but potential value.", count)
}

func averageProbability(_ []models.BetLeg, probs []float64) (int, string) {
	avg := 0.5
	if len(probs) > 0 {
		total := 0.0
		for _, p := range probs {
			total += p
		}
		avg = total / float64(len(probs))
	}

	switch {
	case avg > 0.6:
		return 0, "Average implied probability suggests favorites. Lower payouts expected."
	case avg < 0.4:
		return 5, "Contains value picks with lower implied probabilities."
	}
	return 0, ""
}

func combinedProbability(_ []models.BetLeg, probs []float64) (int, string) {
	p := 1.0
	for _, prob := range probs {
		p *= prob
	}

	switch pct := p * 100; {
	case p < 0.05:
		return -15, fmt.Sprintf("Combined probability is only %.1f%%. Very unlikely to hit.", pct)
	case p < 0.15:
		return -5, fmt.Sprintf("Combined probability of %.1f%%. Moderate difficulty.", pct)
	default:
		return 5, fmt.Sprintf("Reasonable combined probability of %.1f%%.", pct)
	}
}

// impliedProbabilities prices each leg, treating an unpriced leg as DefaultOdds
func impliedProbabilities(legs []models.BetLeg) []float64 {
	probs := make([]float64, 0, len(legs))
	for _, leg := range legs {
		odds := leg.Odds
		if odds == 0 {
			odds = oddsmath.DefaultOdds
		}
		p, err := oddsmath.ImpliedProbability(odds)
		if err != nil {
			continue
		}
		probs = append(probs, p)
	}
	return probs
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
