package oddsmath

import "fmt"

// ParlayDecimal multiplies the decimal odds of every leg
func ParlayDecimal(odds []int) (float64, error) {
	combined := 1.0
	for i, american := range odds {
		decimal, err := AmericanToDecimal(american)
		if err != nil {
			return 0, fmt.Errorf("leg %d: %w", i+1, err)
		}
		combined *= decimal
	}
	return combined, nil
}

// CombineParlay returns the combined American odds for a parlay.
// An empty list returns 0 ("no odds"); a single leg is returned as-is.
func CombineParlay(odds []int) (int, error) {
	switch len(odds) {
	case 0:
		return 0, nil
	case 1:
		if odds[0] == 0 {
			return 0, ErrInvalidOdds
		}
		return odds[0], nil
	}

	combined, err := ParlayDecimal(odds)
	if err != nil {
		return 0, err
	}

	return DecimalToAmerican(combined)
}

// ParlayProbability is the product of every leg's implied probability
func ParlayProbability(odds []int) (float64, error) {
	p := 1.0
	for i, american := range odds {
		implied, err := ImpliedProbability(american)
		if err != nil {
			return 0, fmt.Errorf("leg %d: %w", i+1, err)
		}
		p *= implied
	}
	return p, nil
}
