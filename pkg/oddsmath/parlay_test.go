package oddsmath_test

import (
	"errors"
	"math"
	"testing"

	"github.com/AC350144/ClutchCall/pkg/oddsmath"
)

func TestCombineParlay(t *testing.T) {
	tests := []struct {
		name string
		odds []int
		want int
	}{
		{"Empty list", nil, 0},
		{"Single leg is identity", []int{-150}, -150},
		{"Single underdog is identity", []int{333}, 333},
		{"Two coin flips", []int{-110, -110}, 264},
		{"Two underdogs", []int{150, 150}, 525},
		{"Two heavy favorites stay negative", []int{-500, -500}, -227},
		{"Three legs", []int{-110, 145, -105}, 813},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.CombineParlay(tt.odds)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CombineParlay(%v) = %d, want %d", tt.odds, got, tt.want)
			}
		})
	}
}

func TestCombineParlay_Deterministic(t *testing.T) {
	first, _ := oddsmath.CombineParlay([]int{-110, -110})
	for i := 0; i < 10; i++ {
		got, _ := oddsmath.CombineParlay([]int{-110, -110})
		if got != first {
			t.Fatalf("run %d: got %d, want %d", i, got, first)
		}
	}
	if first <= 0 {
		t.Errorf("expected positive parlay odds, got %d", first)
	}
}

func TestCombineParlay_ZeroOdds(t *testing.T) {
	if _, err := oddsmath.CombineParlay([]int{-110, 0}); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
	if _, err := oddsmath.CombineParlay([]int{0}); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds for single zero leg, got %v", err)
	}
}

func TestCombineParlay_OutOfRange(t *testing.T) {
	odds := make([]int, 20)
	for i := range odds {
		odds[i] = 900
	}

	got, err := oddsmath.CombineParlay(odds)
	if !errors.Is(err, oddsmath.ErrOddsOutOfRange) {
		t.Fatalf("expected ErrOddsOutOfRange, got %d, %v", got, err)
	}
	if got != 0 {
		t.Errorf("expected 0 on error, got %d", got)
	}

	// the largest parlay that still fits stays positive
	got, err = oddsmath.CombineParlay([]int{900, 900, 900, 900, 900, 900, 900})
	if err != nil || got != 999999900 {
		t.Errorf("CombineParlay(7 x +900) = %d, %v; want 999999900", got, err)
	}
}

func TestParlayProbability(t *testing.T) {
	got, err := oddsmath.ParlayProbability([]int{150, 150})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-0.16) > 0.0001 {
		t.Errorf("ParlayProbability = %f, want 0.16", got)
	}

	empty, err := oddsmath.ParlayProbability(nil)
	if err != nil || empty != 1.0 {
		t.Errorf("ParlayProbability(nil) = %f, %v; want 1.0, nil", empty, err)
	}
}

func TestPayoutForStake(t *testing.T) {
	tests := []struct {
		name        string
		stake       float64
		odds        int
		wantDecimal float64
		wantProfit  float64
		wantTotal   float64
	}{
		{"Favorite -110", 100, -110, 1.9091, 90.91, 190.91},
		{"Underdog +150", 100, 150, 2.5, 150, 250},
		{"Zero stake", 0, 150, 2.5, 0, 0},
		{"Heavy favorite -200", 50, -200, 1.5, 25, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oddsmath.PayoutForStake(tt.stake, tt.odds)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.DecimalOdds != tt.wantDecimal {
				t.Errorf("DecimalOdds = %v, want %v", got.DecimalOdds, tt.wantDecimal)
			}
			if got.Profit != tt.wantProfit {
				t.Errorf("Profit = %v, want %v", got.Profit, tt.wantProfit)
			}
			if got.TotalPayout != tt.wantTotal {
				t.Errorf("TotalPayout = %v, want %v", got.TotalPayout, tt.wantTotal)
			}
		})
	}

	if _, err := oddsmath.PayoutForStake(100, 0); !errors.Is(err, oddsmath.ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
}
