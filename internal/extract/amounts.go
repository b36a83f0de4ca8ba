package extract

import (
	"regexp"
	"strconv"
)

var (
	stakePattern   = regexp.MustCompile(`(?i)stake\s*[:=]?\s*\$?\s*(\d+(?:\.\d+)?)`)
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
)

// ExtractStake reads amounts written as "stake 100", "stake: 100" or "stake $100"
func ExtractStake(text string) (float64, bool) {
	return firstNumber(stakePattern, text)
}

// StripStake removes the first stake phrase so the rest of the text can be
// searched for odds without picking up the amount
func StripStake(text string) string {
	if loc := stakePattern.FindStringIndex(text); loc != nil {
		return text[:loc[0]] + " " + text[loc[1]:]
	}
	return text
}

// ExtractPercent reads a percentage such as "2%" or "2.5 %"
func ExtractPercent(text string) (float64, bool) {
	return firstNumber(percentPattern, text)
}

func firstNumber(pattern *regexp.Regexp, text string) (float64, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
