package oddsmath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidOdds is returned for American odds of 0, which have no price
var ErrInvalidOdds = errors.New("invalid American odds: cannot be 0")

// ErrOddsOutOfRange is returned when a price does not fit in MaxAmericanOdds
var ErrOddsOutOfRange = errors.New("American odds out of range")

const (
	// DefaultOdds is assumed for a leg when no price could be read
	DefaultOdds = -110

	// MaxAmericanOdds bounds the magnitude of any converted price
	MaxAmericanOdds = math.MaxInt32
)

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -110 → Decimal 1.9091
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}

	if american > 0 {
		return 1.0 + float64(american)/100.0, nil
	}

	return 1.0 + 100.0/float64(-american), nil
}

// DecimalToAmerican converts decimal odds to American odds.
// Values are rounded half away from zero (math.Round) on both branches.
// Decimal 2.50 → American +150
// Decimal 1.67 → American -149
func DecimalToAmerican(decimal float64) (int, error) {
	if math.IsNaN(decimal) || decimal <= 1.0 {
		return 0, fmt.Errorf("invalid decimal odds %.4f: must be > 1.0", decimal)
	}

	var american float64
	if decimal >= 2.0 {
		american = math.Round((decimal - 1.0) * 100.0)
	} else {
		american = math.Round(-100.0 / (decimal - 1.0))
	}

	// also catches +Inf from very long parlays
	if math.Abs(american) > MaxAmericanOdds {
		return 0, fmt.Errorf("decimal odds %g: %w", decimal, ErrOddsOutOfRange)
	}
	return int(american), nil
}

// ImpliedProbability returns the bookmaker-implied win chance, ignoring vig
// -110 → 0.5238, +150 → 0.40
func ImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}

	if american > 0 {
		return 100.0 / (float64(american) + 100.0), nil
	}

	abs := float64(-american)
	return abs / (abs + 100.0), nil
}

// FormatAmerican renders odds the way sportsbooks print them: +150, -110
func FormatAmerican(american int) string {
	if american > 0 {
		return "+" + strconv.Itoa(american)
	}
	return strconv.Itoa(american)
}
