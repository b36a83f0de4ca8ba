package models

import (
	"fmt"
	"math"
	"strings"
)

// TeamStats is a season summary for one team
type TeamStats struct {
	Team             string  `json:"team" yaml:"team"`
	Abbreviation     string  `json:"abbreviation" yaml:"abbr"`
	Sport            Sport   `json:"sport" yaml:"sport"`
	Wins             int     `json:"wins" yaml:"wins"`
	Losses           int     `json:"losses" yaml:"losses"`
	RecentForm       string  `json:"recentForm" yaml:"form"` // e.g. "W W L W L", most recent first
	AvgPointsScored  float64 `json:"avgPointsScored" yaml:"ppg"`
	AvgPointsAllowed float64 `json:"avgPointsAllowed" yaml:"opp_ppg"`
}

// Record returns the W-L record
func (t TeamStats) Record() string {
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

// WinPercentage returns the win rate as a percentage rounded to 1 decimal
func (t TeamStats) WinPercentage() float64 {
	games := t.Wins + t.Losses
	if games == 0 {
		return 0
	}
	return math.Round(float64(t.Wins)/float64(games)*1000) / 10
}

// RecentWins counts wins in the recent form string
func (t TeamStats) RecentWins() int {
	return strings.Count(t.RecentForm, "W")
}

// LegInsight is the team enrichment for a single leg
type LegInsight struct {
	LegID   string     `json:"legId"`
	BetLine string     `json:"betLine"`
	TeamA   *TeamStats `json:"teamA,omitempty"`
	TeamB   *TeamStats `json:"teamB,omitempty"`
	Insight string     `json:"insight"`
}

// Enhancement is the optional team-data narrative attached to an analysis
type Enhancement struct {
	HasData  bool         `json:"hasData"`
	Insight  string       `json:"insight"`
	Teams    []string     `json:"teams"`
	Matchups []LegInsight `json:"matchups"`
}
