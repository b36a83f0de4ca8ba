// Package teams resolves team names to season stats. Stats only enrich an
// analysis, so every source here is best-effort.
package teams

import (
	"context"
	"errors"
	"strings"

	"github.com/AC350144/ClutchCall/pkg/models"
)

// ErrTeamNotFound is returned when no source knows the team
var ErrTeamNotFound = errors.New("team not found")

// Lookup fetches stats for a team name, alias or abbreviation
type Lookup interface {
	Lookup(ctx context.Context, name string) (*models.TeamStats, error)
}

// Resolver maps free-form team mentions to official team names
type Resolver interface {
	Resolve(name string) (string, bool)
	TeamsIn(text string) []string
}

// Chain tries each lookup in order. A miss moves on to the next source;
// any other error is remembered and returned if nobody has the team.
type Chain []Lookup

// Lookup implements Lookup
func (c Chain) Lookup(ctx context.Context, name string) (*models.TeamStats, error) {
	var lastErr error
	for _, source := range c {
		stats, err := source.Lookup(ctx, name)
		if err == nil {
			return stats, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, ErrTeamNotFound) {
			lastErr = err
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, ErrTeamNotFound
}

// normalize lowercases and collapses whitespace
func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
