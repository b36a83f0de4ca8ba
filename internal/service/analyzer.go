// Package service ties parsing, stake sizing and team enrichment together
// into one analysis per request.
package service

import (
	"context"
	"errors"

	"github.com/AC350144/ClutchCall/internal/insight"
	"github.com/AC350144/ClutchCall/internal/parser"
	"github.com/AC350144/ClutchCall/internal/stake"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options configures an Analyzer
type Options struct {
	MaxInputChars   int
	DefaultBankroll float64 // 0 = none
}

// Analyzer runs a full slip analysis
type Analyzer struct {
	enricher *insight.Enricher
	opts     Options
	log      logrus.FieldLogger
}

// NewAnalyzer creates an analyzer. enricher may be nil to skip team data.
func NewAnalyzer(enricher *insight.Enricher, opts Options, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analyzer{
		enricher: enricher,
		opts:     opts,
		log:      log,
	}
}

// Analyze parses the slip and attaches stake guidance and team narrative.
// Failures are reported inside the response, never as an error.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalyzeRequest) models.AnalyzeResponse {
	text := truncateRunes(req.BetText, a.opts.MaxInputChars)

	resp := models.AnalyzeResponse{
		AnalysisID: uuid.NewString(),
		ParsedBet:  parser.ParseBetText(text),
	}
	if !resp.Success {
		return resp
	}

	a.attachStake(&resp, req)
	resp.EnhancedAnalysis = a.enricher.Enrich(ctx, resp.Legs)

	a.log.WithFields(logrus.Fields{
		"analysis_id":    resp.AnalysisID,
		"legs":           len(resp.Legs),
		"score":          resp.QualityScore,
		"recommendation": resp.Recommendation,
		"team_data":      resp.EnhancedAnalysis != nil,
	}).Debug("slip analyzed")

	return resp
}

func (a *Analyzer) attachStake(resp *models.AnalyzeResponse, req models.AnalyzeRequest) {
	bankroll, ok := a.bankroll(req)
	if !ok {
		resp.StakeHint = stake.Hint
		return
	}

	rec, err := stake.ForTier(bankroll, resp.QualityScore, resp.Recommendation)
	if errors.Is(err, stake.ErrNonPositiveBankroll) {
		resp.StakeHint = stake.Hint
		return
	}
	resp.StakeRecommendation = &rec

	if req.RiskMode != "" {
		rm, err := stake.ForRiskMode(bankroll, stake.ParseRiskMode(req.RiskMode))
		if err == nil {
			resp.RiskModeStake = &rm
		}
	}
}

func (a *Analyzer) bankroll(req models.AnalyzeRequest) (float64, bool) {
	if req.Bankroll != nil {
		return *req.Bankroll, true
	}
	if a.opts.DefaultBankroll > 0 {
		return a.opts.DefaultBankroll, true
	}
	return 0, false
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
