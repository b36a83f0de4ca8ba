// Package extract holds the pattern-matching primitives used to read bet slips.
// Every function is pure and safe for concurrent use.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	digitRun    = regexp.MustCompile(`\d+`)
	oddsToken   = regexp.MustCompile(`@?\s*[+-]\d{2,4}`)
	parenthesis = regexp.MustCompile(`\(\s*[+-]\d{2,4}\s*\)`)
)

// oddsFamily is one way odds get written on a slip
type oddsFamily struct {
	name    string
	pattern *regexp.Regexp
	// group is the submatch holding the signed odds
	group int
	// bounded reports whether the token at text[start:end] stands alone
	bounded func(text string, start, end int) bool
}

// oddsFamilies are tried in order; earlier families win a shared token
var oddsFamilies = []oddsFamily{
	{name: "at", pattern: regexp.MustCompile(`@\s*([+-]\d{2,4})`), group: 1, bounded: notFollowedByDigit},
	{name: "parenthesized", pattern: regexp.MustCompile(`\(\s*([+-]\d{2,4})\s*\)`), group: 1, bounded: always},
	{name: "labelled", pattern: regexp.MustCompile(`(?i)odds?:?\s*([+-]\d{2,4})`), group: 1, bounded: notFollowedByDigit},
	{name: "bare", pattern: regexp.MustCompile(`[+-]\d{3}`), group: 0, bounded: standaloneNumber},
}

// ExtractFirstOdds returns the first run of 2-4 digits, with its sign when
// one is attached, that is not part of a longer number.
func ExtractFirstOdds(text string) (int, bool) {
	for _, loc := range digitRun.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if n := end - start; n < 2 || n > 4 {
			continue
		}
		if start > 0 && (text[start-1] == '+' || text[start-1] == '-') {
			start--
		}
		odds, err := strconv.Atoi(text[start:end])
		if err != nil || odds == 0 {
			continue
		}
		return odds, true
	}
	return 0, false
}

// ExtractAllOdds collects odds from every family in family order.
// A token matched by more than one family is reported once.
func ExtractAllOdds(text string) []int {
	var odds []int
	seen := make(map[int]bool)

	for _, family := range oddsFamilies {
		for _, m := range family.pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2*family.group], m[2*family.group+1]
			if start < 0 || seen[start] || !family.bounded(text, start, end) {
				continue
			}
			value, err := strconv.Atoi(text[start:end])
			if err != nil || value == 0 {
				continue
			}
			seen[start] = true
			odds = append(odds, value)
		}
	}

	return odds
}

// StripOddsTokens removes parenthesized and bare odds tokens from a line and
// collapses the whitespace left behind.
func StripOddsTokens(text string) string {
	text = parenthesis.ReplaceAllString(text, " ")

	var b strings.Builder
	last := 0
	for _, loc := range oddsToken.FindAllStringIndex(text, -1) {
		if !notFollowedByDigit(text, loc[0], loc[1]) || followedByFraction(text, loc[1]) {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteByte(' ')
		last = loc[1]
	}
	b.WriteString(text[last:])

	return strings.Join(strings.Fields(b.String()), " ")
}

// Truncate cuts s to at most n characters without splitting a rune
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func always(string, int, int) bool { return true }

func notFollowedByDigit(text string, _, end int) bool {
	return end >= len(text) || !isDigit(text[end])
}

// standaloneNumber rejects tokens glued to other digits, words or decimals
func standaloneNumber(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return false
	}
	if end < len(text) && isWordChar(text[end]) {
		return false
	}
	return !followedByFraction(text, end)
}

func followedByFraction(text string, end int) bool {
	return end+1 < len(text) && text[end] == '.' && isDigit(text[end+1])
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordChar(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
