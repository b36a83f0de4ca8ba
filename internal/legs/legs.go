// Package legs turns raw slip text into ordered bet legs.
package legs

import (
	"fmt"
	"strings"

	"github.com/AC350144/ClutchCall/internal/extract"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/AC350144/ClutchCall/pkg/oddsmath"
)

// MaxSelectionChars caps the selection text kept on a leg
const MaxSelectionChars = 100

// SplitLines breaks slip text into candidate legs. Lines are trimmed and
// blanks dropped; a lone line is split on commas and semicolons when that
// yields more than one part.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 1 {
		if parts := splitDelimited(lines[0]); len(parts) > 1 {
			return parts
		}
	}

	return lines
}

func splitDelimited(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';'
	})

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			parts = append(parts, field)
		}
	}
	return parts
}

// Extract builds one leg per line of text, in input order
func Extract(text string) []models.BetLeg {
	lines := SplitLines(text)

	legs := make([]models.BetLeg, 0, len(lines))
	for i, line := range lines {
		legs = append(legs, BuildLeg(i+1, line))
	}

	if len(legs) == 0 && strings.TrimSpace(text) != "" {
		legs = append(legs, FallbackLeg(text))
	}

	return legs
}

// BuildLeg reads a single line into the n-th leg (1-based)
func BuildLeg(n int, line string) models.BetLeg {
	game := models.UnknownGame
	if matchup, ok := extract.ExtractMatchup(line); ok {
		game = matchup.Game
	}

	return models.BetLeg{
		ID:        legID(n),
		Sport:     extract.DetectSport(line),
		Game:      game,
		BetType:   extract.DetectBetType(line),
		Selection: extract.Truncate(extract.StripOddsTokens(line), MaxSelectionChars),
		Odds:      firstOdds(line),
	}
}

// FallbackLeg treats the whole text as one leg when no lines could be read
func FallbackLeg(text string) models.BetLeg {
	return models.BetLeg{
		ID:        legID(1),
		Sport:     extract.DetectSport(text),
		Game:      models.UnknownGame,
		BetType:   extract.DetectBetType(text),
		Selection: extract.Truncate(text, MaxSelectionChars),
		Odds:      firstOdds(text),
	}
}

func firstOdds(text string) int {
	if found := extract.ExtractAllOdds(text); len(found) > 0 {
		return found[0]
	}
	return oddsmath.DefaultOdds
}

func legID(n int) string {
	return fmt.Sprintf("leg-%d", n)
}
