package extract

import (
	"regexp"
	"strings"

	"github.com/AC350144/ClutchCall/pkg/models"
)

// UnknownTeam fills the missing side of a one-team matchup
const UnknownTeam = "Unknown"

var matchupPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s+(?:vs\.?|v\.?|@|at)\s+(\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)(\w+)\s+(?:over|under)`),
}

// ExtractMatchup reads "A vs B" style pairs, then "A over/under" singles
func ExtractMatchup(text string) (models.Matchup, bool) {
	for _, pattern := range matchupPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		teamA := strings.TrimSpace(m[1])
		if len(m) > 2 && m[2] != "" {
			teamB := strings.TrimSpace(m[2])
			return models.Matchup{
				TeamA: teamA,
				TeamB: teamB,
				Game:  teamA + " vs " + teamB,
			}, true
		}

		return models.Matchup{TeamA: teamA, TeamB: UnknownTeam, Game: teamA}, true
	}
	return models.Matchup{}, false
}
