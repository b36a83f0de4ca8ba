package oddsmath

import (
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/shopspring/decimal"
)

// PayoutForStake computes profit and total return for a stake at American odds.
// The stake sign is not validated here; callers reject stake <= 0.
func PayoutForStake(stake float64, american int) (models.Payout, error) {
	dec, err := AmericanToDecimal(american)
	if err != nil {
		return models.Payout{}, err
	}

	profit := stake * (dec - 1.0)
	total := stake + profit

	return models.Payout{
		DecimalOdds: round(dec, 4),
		Profit:      round(profit, 2),
		TotalPayout: round(total, 2),
	}, nil
}

// round rounds half away from zero to the given number of places
func round(val float64, places int32) float64 {
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}
