package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AC350144/ClutchCall/internal/extract"
	"github.com/AC350144/ClutchCall/internal/stake"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/AC350144/ClutchCall/pkg/oddsmath"
)

const helpText = `Paste a slip after /analyze to score it.

/analyze <slip> - parse and score a bet slip
/stake <bankroll> [conservative|aggressive] - stake range
/parlay <odds...> - combine American odds
/payout <stake> <odds> - profit and total return
/percent <bankroll> <percent>% - slice of a bankroll
/ping - check the bot is alive`

const unknownCommand = "Unknown command. Use /help to see available commands."

// reply builds the MarkdownV2 answer to a command
func (b *Bot) reply(ctx context.Context, command, args string) string {
	args = strings.TrimSpace(args)

	switch command {
	case "analyze":
		return b.analyze(ctx, args)
	case "stake":
		return stakeReply(args)
	case "parlay":
		return parlayReply(args)
	case "payout":
		return payoutReply(args)
	case "percent":
		return percentReply(args)
	case "ping":
		return "Pong"
	case "start", "help":
		return escapeMarkdownV2(helpText)
	default:
		return escapeMarkdownV2(unknownCommand)
	}
}

func (b *Bot) analyze(ctx context.Context, args string) string {
	if args == "" {
		return usage("/analyze <slip>")
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	return formatAnalysis(b.analyzer.Analyze(ctx, models.AnalyzeRequest{BetText: args}))
}

func formatAnalysis(resp models.AnalyzeResponse) string {
	if !resp.Success {
		return escapeMarkdownV2(resp.Error)
	}

	var sb strings.Builder
	sb.WriteString(bold("Slip analysis") + "\n")
	sb.WriteString(escapeMarkdownV2(fmt.Sprintf("Legs: %d | Total odds: %s",
		len(resp.Legs), oddsmath.FormatAmerican(resp.TotalOdds))) + "\n")
	sb.WriteString(escapeMarkdownV2(fmt.Sprintf("Score: %d/100 (%s)",
		resp.QualityScore, resp.Recommendation)) + "\n\n")

	for i, leg := range resp.Legs {
		line := fmt.Sprintf("%d. %s (%s, %s)", i+1, leg.Selection, leg.BetType, oddsmath.FormatAmerican(leg.Odds))
		sb.WriteString(escapeMarkdownV2(line) + "\n")
	}

	sb.WriteString("\n" + escapeMarkdownV2(resp.Analysis))

	if resp.EnhancedAnalysis != nil && resp.EnhancedAnalysis.HasData {
		sb.WriteString("\n\n" + bold("Team data") + "\n" + escapeMarkdownV2(resp.EnhancedAnalysis.Insight))
	}

	return sb.String()
}

func stakeReply(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return usage("/stake <bankroll> [conservative|aggressive]")
	}

	bankroll, err := strconv.ParseFloat(strings.TrimPrefix(fields[0], "$"), 64)
	if err != nil {
		return usage("/stake <bankroll> [conservative|aggressive]")
	}

	mode := models.RiskModeConservative
	if len(fields) > 1 {
		mode = stake.ParseRiskMode(fields[1])
	}

	rm, err := stake.ForRiskMode(bankroll, mode)
	if errors.Is(err, stake.ErrNonPositiveBankroll) {
		return escapeMarkdownV2(stake.Hint)
	}

	return escapeMarkdownV2(fmt.Sprintf("%s: stake $%.2f to $%.2f (%d-%d%% of $%.2f)",
		titleCase(string(rm.Mode)), rm.Low, rm.High, rm.LowPct, rm.HighPct, bankroll))
}

func parlayReply(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return usage("/parlay <odds...>")
	}

	odds := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return usage("/parlay <odds...>")
		}
		odds = append(odds, v)
	}

	combined, err := oddsmath.CombineParlay(odds)
	if err != nil {
		return escapeMarkdownV2(err.Error())
	}
	dec, _ := oddsmath.ParlayDecimal(odds)
	prob, _ := oddsmath.ParlayProbability(odds)

	return escapeMarkdownV2(fmt.Sprintf("Parlay of %d legs: %s (decimal %.2f, %.1f%% implied)",
		len(odds), oddsmath.FormatAmerican(combined), dec, prob*100))
}

func payoutReply(args string) string {
	amount, odds, ok := parsePayout(args)
	if !ok {
		return usage("/payout <stake> <odds>")
	}
	if amount <= 0 {
		return escapeMarkdownV2("Stake must be positive.")
	}

	p, err := oddsmath.PayoutForStake(amount, odds)
	if err != nil {
		return escapeMarkdownV2(err.Error())
	}

	return escapeMarkdownV2(fmt.Sprintf("Stake $%.2f at %s returns $%.2f (profit $%.2f)",
		amount, oddsmath.FormatAmerican(odds), p.TotalPayout, p.Profit))
}

// parsePayout accepts "100 -110" or free text such as "stake $100 @ -110"
func parsePayout(args string) (float64, int, bool) {
	if fields := strings.Fields(args); len(fields) == 2 {
		amount, errA := strconv.ParseFloat(strings.TrimPrefix(fields[0], "$"), 64)
		odds, errO := strconv.Atoi(fields[1])
		if errA == nil && errO == nil {
			return amount, odds, true
		}
	}

	amount, ok := extract.ExtractStake(args)
	if !ok {
		return 0, 0, false
	}
	odds, ok := extract.ExtractFirstOdds(extract.StripStake(args))
	if !ok {
		return 0, 0, false
	}
	return amount, odds, true
}

func percentReply(args string) string {
	bankroll, pct, ok := parsePercent(args)
	if !ok {
		return usage("/percent <bankroll> <percent>%")
	}

	amount, err := stake.PercentOfBankroll(bankroll, pct)
	if errors.Is(err, stake.ErrNonPositiveBankroll) {
		return escapeMarkdownV2(stake.Hint)
	}

	return escapeMarkdownV2(fmt.Sprintf("%s%% of $%.2f is $%.2f",
		strconv.FormatFloat(pct, 'f', -1, 64), bankroll, amount))
}

// parsePercent reads the bankroll from the first plain number and the
// percentage from the first "n%", falling back to the second plain number
func parsePercent(args string) (float64, float64, bool) {
	var numbers []float64
	for _, f := range strings.Fields(args) {
		if strings.HasSuffix(f, "%") {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimPrefix(f, "$"), 64); err == nil {
			numbers = append(numbers, v)
		}
	}
	if len(numbers) == 0 {
		return 0, 0, false
	}

	if pct, ok := extract.ExtractPercent(args); ok {
		return numbers[0], pct, true
	}
	if len(numbers) > 1 {
		return numbers[0], numbers[1], true
	}
	return 0, 0, false
}

func usage(form string) string {
	return escapeMarkdownV2("Usage: " + form)
}

func bold(s string) string {
	return "*" + escapeMarkdownV2(s) + "*"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
