package scorer_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/AC350144/ClutchCall/internal/scorer"
	"github.com/AC350144/ClutchCall/pkg/models"
)

func legsWithOdds(odds ...int) []models.BetLeg {
	legs := make([]models.BetLeg, len(odds))
	for i, o := range odds {
		legs[i] = models.BetLeg{Odds: o}
	}
	return legs
}

func repeat(odds, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = odds
	}
	return out
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		odds      []int
		wantScore int
		wantRec   models.Recommendation
	}{
		{"Single coin flip", []int{-110}, 80, models.RecommendationGood},
		{"Two legs", []int{-110, 150}, 80, models.RecommendationGood},
		{"Three legs", repeat(-110, 3), 65, models.RecommendationCaution},
		{"Five legs", repeat(-110, 5), 45, models.RecommendationAvoid},
		{"Seven legs", repeat(-110, 7), 35, models.RecommendationAvoid},
		{"Heavy favorite", []int{-500}, 77, models.RecommendationGood},
		{"Two underdogs", []int{300, 300}, 79, models.RecommendationGood},
		{"Clamped to minimum", repeat(-201, 10), scorer.MinScore, models.RecommendationAvoid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(legsWithOdds(tt.odds...))
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d (analysis: %s)", got.Score, tt.wantScore, got.Analysis)
			}
			if got.Recommendation != tt.wantRec {
				t.Errorf("Recommendation = %s, want %s", got.Recommendation, tt.wantRec)
			}
		})
	}
}

func TestScore_NarrativeOrder(t *testing.T) {
	got := scorer.Score(legsWithOdds(-500))

	want := "Conservative bet size with manageable risk. " +
		"Contains 1 heavy favorite(s). Low payout relative to risk. " +
		"Average implied probability suggests favorites. Lower payouts expected. " +
		"Reasonable combined probability of 83.3%."
	if got.Analysis != want {
		t.Errorf("Analysis =\n%q\nwant\n%q", got.Analysis, want)
	}
}

func TestScore_CombinedProbabilityNarrative(t *testing.T) {
	tests := []struct {
		odds []int
		want string
	}{
		{repeat(-110, 3), "Combined probability of 14.4%. Moderate difficulty."},
		{repeat(-110, 7), "Combined probability is only 1.1%. Very unlikely to hit."},
	}

	for _, tt := range tests {
		got := scorer.Score(legsWithOdds(tt.odds...))
		if !strings.HasSuffix(got.Analysis, tt.want) {
			t.Errorf("Analysis %q does not end with %q", got.Analysis, tt.want)
		}
	}
}

func TestRecommendationFor(t *testing.T) {
	tests := []struct {
		score int
		want  models.Recommendation
	}{
		{95, models.RecommendationGood},
		{75, models.RecommendationGood},
		{74, models.RecommendationCaution},
		{55, models.RecommendationCaution},
		{54, models.RecommendationAvoid},
		{10, models.RecommendationAvoid},
	}

	for _, tt := range tests {
		if got := scorer.RecommendationFor(tt.score); got != tt.want {
			t.Errorf("RecommendationFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScore_StaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		n := 1 + rng.Intn(10)
		odds := make([]int, n)
		for j := range odds {
			o := 0
			for o == 0 {
				o = rng.Intn(1001) - 500
			}
			odds[j] = o
		}

		got := scorer.Score(legsWithOdds(odds...))
		if got.Score < scorer.MinScore || got.Score > scorer.MaxScore {
			t.Fatalf("Score(%v) = %d, outside [%d, %d]", odds, got.Score, scorer.MinScore, scorer.MaxScore)
		}
		if got.Recommendation != scorer.RecommendationFor(got.Score) {
			t.Fatalf("Score(%v) recommendation %s disagrees with score %d", odds, got.Recommendation, got.Score)
		}
		if got.Analysis == "" {
			t.Fatalf("Score(%v) returned an empty analysis", odds)
		}
	}
}
