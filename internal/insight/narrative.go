package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/AC350144/ClutchCall/pkg/models"
)

const (
	// recordGap is the win-percentage difference worth calling out
	recordGap = 15.0

	hotWins  = 4
	coldWins = 1

	// coverMargin is how far the projection must clear the spread
	coverMargin = 3.0

	noIndicators = "Matchup data available but no strong indicators found."
)

// MatchupInsight describes a head-to-head between two teams. When hasSpread
// is set the projected margin is compared against the spread.
func MatchupInsight(a, b *models.TeamStats, spread float64, hasSpread bool) string {
	var parts []string

	if pctA, pctB := a.WinPercentage(), b.WinPercentage(); pctA != 0 && pctB != 0 {
		if diff := pctA - pctB; math.Abs(diff) > recordGap {
			better := a
			if diff < 0 {
				better = b
			}
			parts = append(parts, fmt.Sprintf("%s has a significantly better record (%s, %.1f%% win rate)",
				better.Abbreviation, better.Record(), better.WinPercentage()))
		}
	}

	for _, team := range []*models.TeamStats{a, b} {
		if form, ok := formNote(team); ok {
			parts = append(parts, form)
		}
	}

	if a.AvgPointsScored > 0 && b.AvgPointsAllowed > 0 {
		expectedA, expectedB := projectedScores(a, b)
		margin := expectedA - expectedB

		if hasSpread && spread != 0 {
			switch {
			case margin > spread+coverMargin:
				parts = append(parts, fmt.Sprintf("Stats suggest %s covers (projected margin: %.1f)", a.Abbreviation, margin))
			case margin < spread-coverMargin:
				parts = append(parts, fmt.Sprintf("Stats suggest %s may NOT cover (projected margin: %.1f)", a.Abbreviation, margin))
			}
		}

		parts = append(parts, "Projected score: "+projectedLine(a, b))
	}

	if len(parts) == 0 {
		return noIndicators
	}
	return strings.Join(parts, " | ")
}

// TeamSummary is the single-team insight for a one-leg slip
func TeamSummary(t *models.TeamStats) string {
	return fmt.Sprintf("%s is %s | Last 5: %s | Avg: %.1f PPG", t.Team, t.Record(), t.RecentForm, t.AvgPointsScored)
}

// TeamRecord is the short single-team insight used inside parlays
func TeamRecord(t *models.TeamStats) string {
	return fmt.Sprintf("%s is %s", t.Team, t.Record())
}

func formNote(t *models.TeamStats) (string, bool) {
	wins := t.RecentWins()
	switch {
	case wins >= hotWins:
		return hotNote(t), true
	case wins <= coldWins:
		return fmt.Sprintf("%s is COLD - only %d win in last 5", t.Abbreviation, wins), true
	}
	return "", false
}

func isHot(t *models.TeamStats) bool {
	return t.RecentWins() >= hotWins
}

func hotNote(t *models.TeamStats) string {
	return fmt.Sprintf("%s is HOT - won %d of last 5", t.Abbreviation, t.RecentWins())
}

// projectedScores averages each side's offense with the other's defense
func projectedScores(a, b *models.TeamStats) (float64, float64) {
	return (a.AvgPointsScored + b.AvgPointsAllowed) / 2, (b.AvgPointsScored + a.AvgPointsAllowed) / 2
}

func projectedLine(a, b *models.TeamStats) string {
	expectedA, expectedB := projectedScores(a, b)
	return fmt.Sprintf("%s %.0f - %s %.0f", a.Abbreviation, expectedA, b.Abbreviation, expectedB)
}
