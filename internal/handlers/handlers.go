package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AC350144/ClutchCall/internal/extract"
	"github.com/AC350144/ClutchCall/internal/scorer"
	"github.com/AC350144/ClutchCall/internal/stake"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/AC350144/ClutchCall/pkg/oddsmath"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies; slip text is truncated further downstream
const maxBodyBytes = 1 << 20

// Analyzer runs a slip analysis
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) models.AnalyzeResponse
}

// Pinger is a backing store the health check can ping
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping implements Pinger
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Handler contains dependencies for HTTP handlers
type Handler struct {
	analyzer Analyzer
	checks   map[string]Pinger
	log      logrus.FieldLogger
}

// NewHandler creates a new handler
func NewHandler(analyzer Analyzer, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		analyzer: analyzer,
		checks:   make(map[string]Pinger),
		log:      log,
	}
}

// AddHealthCheck makes /health report on a dependency
func (h *Handler) AddHealthCheck(name string, p Pinger) {
	h.checks[name] = p
}

// Routes registers every endpoint on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/bets/parse", h.ParseBet)

		r.Get("/odds/implied", h.ImpliedProbability)
		r.Get("/odds/payout", h.Payout)
		r.Post("/odds/parlay", h.Parlay)

		r.Get("/stake/risk-mode", h.RiskModeStake)
		r.Get("/stake/tier", h.TierStake)
		r.Get("/stake/percent", h.PercentStake)
	})
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			h.log.WithError(err).WithField("check", name).Warn("health check failed")
			checks[name] = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "healthy"
	}

	health := map[string]interface{}{
		"status":  "healthy",
		"service": "slip-analyzer",
	}
	if status != http.StatusOK {
		health["status"] = "unhealthy"
	}
	if len(checks) > 0 {
		health["checks"] = checks
	}

	respondJSON(w, status, health)
}

// ParseBet analyzes a free-text bet slip
func (h *Handler) ParseBet(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, h.analyzer.Analyze(r.Context(), req))
}

// ImpliedProbability converts American odds to implied probability
func (h *Handler) ImpliedProbability(w http.ResponseWriter, r *http.Request) {
	odds, err := queryInt(r, "odds")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := oddsmath.ImpliedProbability(odds)
	if err != nil {
		respondFailure(w, err, "")
		return
	}
	dec, _ := oddsmath.AmericanToDecimal(odds)

	respondJSON(w, http.StatusOK, ImpliedResponse{
		Odds:               odds,
		ImpliedProbability: round4(p),
		DecimalOdds:        round4(dec),
	})
}

// Payout returns profit and total return for a stake
func (h *Handler) Payout(w http.ResponseWriter, r *http.Request) {
	stakeAmt, err := queryFloat(r, "stake")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	odds, err := queryInt(r, "odds")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if stakeAmt <= 0 {
		respondFailure(w, errors.New("stake must be positive"), "")
		return
	}

	payout, err := oddsmath.PayoutForStake(stakeAmt, odds)
	if err != nil {
		respondFailure(w, err, "")
		return
	}

	respondJSON(w, http.StatusOK, payout)
}

// Parlay combines a list of American odds
func (h *Handler) Parlay(w http.ResponseWriter, r *http.Request) {
	var req ParlayRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if len(req.Odds) == 0 {
		respondFailure(w, errors.New("at least one odds value is required"), "")
		return
	}

	combined, err := oddsmath.CombineParlay(req.Odds)
	if err != nil {
		respondFailure(w, err, "")
		return
	}
	dec, _ := oddsmath.ParlayDecimal(req.Odds)
	prob, _ := oddsmath.ParlayProbability(req.Odds)

	respondJSON(w, http.StatusOK, ParlayResponse{
		Legs:         len(req.Odds),
		CombinedOdds: combined,
		Display:      oddsmath.FormatAmerican(combined),
		DecimalOdds:  round4(dec),
		Probability:  round4(prob),
	})
}

// RiskModeStake returns the stake range for a risk appetite
func (h *Handler) RiskModeStake(w http.ResponseWriter, r *http.Request) {
	bankroll, err := queryFloat(r, "bankroll")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rm, err := stake.ForRiskMode(bankroll, stake.ParseRiskMode(r.URL.Query().Get("mode")))
	if err != nil {
		respondFailure(w, err, stake.Hint)
		return
	}

	respondJSON(w, http.StatusOK, rm)
}

// TierStake sizes a stake from a quality score. The tier is derived from
// the score when not given.
func (h *Handler) TierStake(w http.ResponseWriter, r *http.Request) {
	bankroll, err := queryFloat(r, "bankroll")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	score, err := queryInt(r, "score")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := models.Recommendation(r.URL.Query().Get("recommendation"))
	if rec == "" {
		rec = scorer.RecommendationFor(score)
	}

	sr, err := stake.ForTier(bankroll, score, rec)
	if err != nil {
		respondFailure(w, err, stake.Hint)
		return
	}

	respondJSON(w, http.StatusOK, sr)
}

// PercentStake returns a percentage of the bankroll. pct may be written
// "2.5" or "2.5%".
func (h *Handler) PercentStake(w http.ResponseWriter, r *http.Request) {
	bankroll, err := queryFloat(r, "bankroll")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw := r.URL.Query().Get("pct")
	pct, ok := extract.ExtractPercent(raw)
	if !ok {
		if pct, err = queryFloat(r, "pct"); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	amount, err := stake.PercentOfBankroll(bankroll, pct)
	if err != nil {
		respondFailure(w, err, stake.Hint)
		return
	}

	respondJSON(w, http.StatusOK, PercentResponse{
		Bankroll: bankroll,
		Percent:  pct,
		Amount:   amount,
	})
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func queryFloat(r *http.Request, key string) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, fmt.Errorf("missing query parameter %q", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func round4(v float64) float64 {
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondFailure reports a domain failure with a 200 status
func respondFailure(w http.ResponseWriter, err error, hint string) {
	respondJSON(w, http.StatusOK, Failure{
		Success:   false,
		Error:     err.Error(),
		StakeHint: hint,
	})
}
