// Package insight attaches team form and record narrative to parsed legs.
// Enrichment is best-effort: lookup failures and timeouts mean no enrichment,
// never an error.
package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AC350144/ClutchCall/internal/extract"
	"github.com/AC350144/ClutchCall/internal/teams"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/sirupsen/logrus"
)

// maxHotNotes caps the hot-team fragments in a parlay summary
const maxHotNotes = 3

// Enricher resolves the teams on each leg and describes them
type Enricher struct {
	lookup   teams.Lookup
	resolver teams.Resolver
	timeout  time.Duration
	log      logrus.FieldLogger
}

// NewEnricher creates an enricher. resolver may be nil, in which case only
// "A vs B" matchups are looked up, by the names as written.
func NewEnricher(lookup teams.Lookup, resolver teams.Resolver, timeout time.Duration, log logrus.FieldLogger) *Enricher {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Enricher{
		lookup:   lookup,
		resolver: resolver,
		timeout:  timeout,
		log:      log,
	}
}

// Enrich returns team narrative for the legs, or nil when nothing was found
func (e *Enricher) Enrich(ctx context.Context, legs []models.BetLeg) *models.Enhancement {
	if e == nil || e.lookup == nil || len(legs) == 0 {
		return nil
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	single := len(legs) == 1

	var entries []models.LegInsight
	for _, leg := range legs {
		entry, ok := e.enrichLeg(ctx, leg, single)
		if ctx.Err() != nil {
			e.log.WithError(ctx.Err()).Debug("team enrichment cut short")
			return nil
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return nil
	}

	enhancement := &models.Enhancement{
		HasData:  true,
		Teams:    teamNames(entries),
		Matchups: entries,
	}

	if single {
		enhancement.Insight = entries[0].Insight
	} else {
		enhancement.Insight = combinedInsight(entries)
	}

	return enhancement
}

func (e *Enricher) enrichLeg(ctx context.Context, leg models.BetLeg, single bool) (models.LegInsight, bool) {
	names := e.candidates(leg)
	if len(names) == 0 {
		return models.LegInsight{}, false
	}

	entry := models.LegInsight{
		LegID:   leg.ID,
		BetLine: extract.Truncate(leg.Selection, 100),
	}

	first, err := e.lookup.Lookup(ctx, names[0])
	if err != nil {
		e.log.WithError(err).WithField("team", names[0]).Debug("team lookup failed")
		return models.LegInsight{}, false
	}
	entry.TeamA = first

	if len(names) > 1 {
		second, err := e.lookup.Lookup(ctx, names[1])
		if err == nil {
			entry.TeamB = second
			spread, hasSpread := legSpread(leg)
			entry.Insight = MatchupInsight(first, second, spread, hasSpread)
			return entry, true
		}
		e.log.WithError(err).WithField("team", names[1]).Debug("team lookup failed")
	}

	if single {
		entry.Insight = TeamSummary(first)
	} else {
		entry.Insight = TeamRecord(first)
	}
	return entry, true
}

// candidates picks up to two team names for a leg: both sides of its
// matchup when they resolve, otherwise teams mentioned in the selection.
func (e *Enricher) candidates(leg models.BetLeg) []string {
	if matchup, ok := extract.ExtractMatchup(leg.Game); ok && matchup.TeamB != extract.UnknownTeam {
		if e.resolver == nil {
			return []string{matchup.TeamA, matchup.TeamB}
		}
		a, okA := e.resolver.Resolve(matchup.TeamA)
		b, okB := e.resolver.Resolve(matchup.TeamB)
		if okA && okB && a != b {
			return []string{a, b}
		}
	}

	if e.resolver == nil {
		return nil
	}

	found := e.resolver.TeamsIn(leg.Selection)
	if len(found) > 2 {
		found = found[:2]
	}
	return found
}

func legSpread(leg models.BetLeg) (float64, bool) {
	if leg.BetType != models.BetTypeSpread {
		return 0, false
	}
	return extract.ExtractSpread(leg.Selection)
}

func combinedInsight(entries []models.LegInsight) string {
	var hot []string
	for _, entry := range entries {
		if entry.TeamB == nil {
			continue
		}
		for _, team := range []*models.TeamStats{entry.TeamA, entry.TeamB} {
			if isHot(team) {
				hot = append(hot, hotNote(team))
			}
		}
	}

	var summary string
	if len(hot) > 0 {
		if len(hot) > maxHotNotes {
			hot = hot[:maxHotNotes]
		}
		summary = strings.Join(hot, " | ")
	} else {
		summary = fmt.Sprintf("Analyzing %d matchups with team data", len(entries))
	}

	for _, entry := range entries {
		if entry.TeamB != nil {
			summary += " | Projected: " + projectedLine(entry.TeamA, entry.TeamB)
			break
		}
	}

	return summary
}

func teamNames(entries []models.LegInsight) []string {
	seen := make(map[string]bool)
	names := make([]string, 0, 2*len(entries))
	for _, entry := range entries {
		for _, team := range []*models.TeamStats{entry.TeamA, entry.TeamB} {
			if team == nil || seen[team.Team] {
				continue
			}
			seen[team.Team] = true
			names = append(names, team.Team)
		}
	}
	return names
}
