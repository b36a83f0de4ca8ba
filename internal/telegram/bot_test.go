package telegram

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/AC350144/ClutchCall/internal/retry"
	"github.com/AC350144/ClutchCall/internal/stake"
	"github.com/AC350144/ClutchCall/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type fixedAnalyzer struct {
	resp models.AnalyzeResponse
	got  models.AnalyzeRequest
}

func (f *fixedAnalyzer) Analyze(_ context.Context, req models.AnalyzeRequest) models.AnalyzeResponse {
	f.got = req
	return f.resp
}

type flakySender struct {
	failures int
	calls    int
	last     tgbotapi.MessageConfig
}

func (f *flakySender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.calls++
	f.last = c.(tgbotapi.MessageConfig)
	if f.calls <= f.failures {
		return tgbotapi.Message{}, errors.New("too many requests")
	}
	return tgbotapi.Message{}, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestBot(analyzer Analyzer, s sender) *Bot {
	return &Bot{
		sender:   s,
		analyzer: analyzer,
		retry:    retry.NewPolicy(3, time.Millisecond),
		timeout:  time.Second,
		log:      quietLogger(),
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"Lakers -5.5", "Lakers \\-5\\.5"},
		{"(+150)", "\\(\\+150\\)"},
		{"Score: 80/100", "Score: 80/100"},
		{"win_rate|form", "win\\_rate\\|form"},
		{"", ""},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeMarkdownV2(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestReply_OddsTools(t *testing.T) {
	b := newTestBot(&fixedAnalyzer{}, &flakySender{})

	tests := []struct {
		command string
		args    string
		want    string
	}{
		{"ping", "", "Pong"},
		{"payout", "100 150", `Stake $100\.00 at \+150 returns $250\.00 \(profit $150\.00\)`},
		{"payout", "$100 -200", `Stake $100\.00 at \-200 returns $150\.00 \(profit $50\.00\)`},
		{"payout", "0 150", `Stake must be positive\.`},
		{"payout", "stake $100 @ -110", `Stake $100\.00 at \-110 returns $190\.91 \(profit $90\.91\)`},
		{"payout", "stake 50 at +200", `Stake $50\.00 at \+200 returns $150\.00 \(profit $100\.00\)`},
		{"percent", "5000 2.5%", `2\.5% of $5000\.00 is $125\.00`},
		{"percent", "$1000 3", `3% of $1000\.00 is $30\.00`},
		{"percent", "0 2%", escapeMarkdownV2(stake.Hint)},
		{"parlay", "-110 -110", `Parlay of 2 legs: \+264 \(decimal 3\.64, 27\.4% implied\)`},
		{"stake", "5000 aggressive", `Aggressive: stake $100\.00 to $250\.00 \(2\-5% of $5000\.00\)`},
		{"stake", "5000", `Conservative: stake $50\.00 to $100\.00 \(1\-2% of $5000\.00\)`},
		{"stake", "0", escapeMarkdownV2(stake.Hint)},
		{"bogus", "", escapeMarkdownV2(unknownCommand)},
	}

	for _, tt := range tests {
		t.Run(tt.command+" "+tt.args, func(t *testing.T) {
			if got := b.reply(context.Background(), tt.command, tt.args); got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReply_Usage(t *testing.T) {
	b := newTestBot(&fixedAnalyzer{}, &flakySender{})

	for _, tc := range []struct{ command, args string }{
		{"analyze", "  "},
		{"payout", "100"},
		{"payout", "ten -110"},
		{"parlay", ""},
		{"parlay", "-110 evens"},
		{"stake", "lots"},
		{"percent", "2%"},
		{"percent", "5000"},
	} {
		if got := b.reply(context.Background(), tc.command, tc.args); !strings.HasPrefix(got, "Usage: /"+tc.command) {
			t.Errorf("/%s %q = %q, want usage", tc.command, tc.args, got)
		}
	}
}

func TestReply_ParlayTooLong(t *testing.T) {
	b := newTestBot(&fixedAnalyzer{}, &flakySender{})

	got := b.reply(context.Background(), "parlay", strings.Repeat("900 ", 20))
	if !strings.Contains(got, "out of range") {
		t.Errorf("reply = %q, want an out of range message", got)
	}
}

func TestReply_Analyze(t *testing.T) {
	analyzer := &fixedAnalyzer{resp: models.AnalyzeResponse{
		ParsedBet: models.ParsedBet{
			Success: true,
			Legs: []models.BetLeg{
				{ID: "leg-1", BetType: models.BetTypeSpread, Selection: "Lakers -5.5", Odds: -110},
			},
			TotalOdds:      -110,
			QualityScore:   80,
			Analysis:       "Single bet - lower variance.",
			Recommendation: models.RecommendationGood,
		},
		EnhancedAnalysis: &models.Enhancement{HasData: true, Insight: "LAL is HOT - won 4 of last 5"},
	}}
	b := newTestBot(analyzer, &flakySender{})

	got := b.reply(context.Background(), "analyze", " Lakers -5.5 (-110)\n")

	if analyzer.got.BetText != "Lakers -5.5 (-110)" {
		t.Errorf("analyzer got %q", analyzer.got.BetText)
	}
	for _, want := range []string{
		"*Slip analysis*",
		`Legs: 1 \| Total odds: \-110`,
		`Score: 80/100 \(good\)`,
		`1\. Lakers \-5\.5 \(Spread, \-110\)`,
		`Single bet \- lower variance\.`,
		"*Team data*",
		`LAL is HOT \- won 4 of last 5`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("reply missing %q:\n%s", want, got)
		}
	}
}

func TestReply_AnalyzeFailure(t *testing.T) {
	analyzer := &fixedAnalyzer{resp: models.AnalyzeResponse{
		ParsedBet: models.ParsedBet{Success: false, Error: "No bet text provided"},
	}}
	b := newTestBot(analyzer, &flakySender{})

	if got := b.reply(context.Background(), "analyze", "???"); got != "No bet text provided" {
		t.Errorf("reply = %q", got)
	}
}

func TestSend_Retries(t *testing.T) {
	s := &flakySender{failures: 2}
	b := newTestBot(&fixedAnalyzer{}, s)

	if err := b.send(context.Background(), 42, "Pong"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if s.calls != 3 {
		t.Errorf("calls = %d, want 3", s.calls)
	}
	if s.last.ChatID != 42 || s.last.ParseMode != tgbotapi.ModeMarkdownV2 {
		t.Errorf("unexpected message: %+v", s.last)
	}
}

func TestSend_GivesUp(t *testing.T) {
	s := &flakySender{failures: 10}
	b := newTestBot(&fixedAnalyzer{}, s)

	if err := b.send(context.Background(), 42, "Pong"); err == nil {
		t.Error("expected an error after exhausting retries")
	}
	if s.calls != 3 {
		t.Errorf("calls = %d, want 3", s.calls)
	}
}
