package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AC350144/ClutchCall/pkg/models"
)

// sportKeywords is checked in order; the first league with a hit wins.
// Nicknames shared across leagues (jets, kings, giants, panthers, rangers)
// resolve to whichever league comes first here.
var sportKeywords = []struct {
	sport    models.Sport
	keywords []string
}{
	{models.SportNBA, []string{
		"nba", "lakers", "celtics", "warriors", "nuggets", "heat", "bulls", "knicks",
		"nets", "suns", "bucks", "sixers", "76ers", "mavs", "mavericks", "clippers",
		"rockets", "spurs", "thunder", "jazz", "kings", "hawks", "hornets", "magic",
		"pacers", "pistons", "raptors", "wizards", "timberwolves", "pelicans", "grizzlies",
		"blazers", "trail blazers", "cavaliers", "cavs",
	}},
	{models.SportNFL, []string{
		"nfl", "chiefs", "eagles", "cowboys", "bills", "ravens", "lions", "dolphins",
		"49ers", "niners", "packers", "bengals", "jets", "patriots", "broncos", "raiders",
		"chargers", "seahawks", "vikings", "bears", "saints", "falcons", "buccaneers",
		"bucs", "panthers", "commanders", "giants", "cardinals", "rams", "steelers",
		"browns", "colts", "titans", "jaguars", "texans",
	}},
	{models.SportNHL, []string{
		"nhl", "bruins", "rangers", "maple leafs", "leafs", "canadiens", "habs",
		"blackhawks", "penguins", "capitals", "caps", "lightning", "avalanche", "oilers",
		"flames", "canucks", "jets", "wild", "blues", "stars", "predators", "hurricanes",
		"panthers", "devils", "islanders", "flyers", "senators", "sabres", "red wings",
		"sharks", "kings", "ducks", "coyotes", "kraken", "golden knights", "knights",
	}},
	{models.SportMLB, []string{
		"mlb", "yankees", "red sox", "dodgers", "giants", "cubs", "mets", "braves",
		"astros", "phillies", "padres", "cardinals", "brewers", "mariners", "guardians",
		"twins", "orioles", "rays", "blue jays", "rangers", "angels", "white sox",
		"tigers", "royals", "athletics", "as", "rockies", "diamondbacks", "dbacks",
		"marlins", "nationals", "reds", "pirates",
	}},
	{models.SportSoccer, []string{
		"soccer", "mls", "premier league", "epl", "la liga", "bundesliga",
		"serie a", "ligue 1", "champions league", "ucl", "manchester united",
		"man united", "manchester city", "man city", "liverpool", "chelsea",
		"arsenal", "tottenham", "spurs", "barcelona", "real madrid", "bayern",
		"psg", "juventus", "inter", "ac milan", "dortmund",
	}},
}

// DetectSport does a case-insensitive substring search over the league keyword sets
func DetectSport(text string) models.Sport {
	lower := strings.ToLower(text)
	for _, set := range sportKeywords {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.sport
			}
		}
	}
	return models.SportUnknown
}

var (
	signedNumber = regexp.MustCompile(`[+-]\d+\.?\d*`)
	totalCue     = regexp.MustCompile(`(?:over|under|o|u)\s*\d+`)
	moneylineCue = regexp.MustCompile(`\b(?:ml|moneyline|money\s*line|to\s*win)\b`)
	propCue      = regexp.MustCompile(`prop|anytime|first|last|scorer|yards|rebounds|assists`)
)

// betTypeRule maps a predicate over the raw and lowercased text to a bet type
type betTypeRule struct {
	name    string
	matches func(text, lower string) bool
	betType models.BetType
}

// betTypeRules run top to bottom; the first match wins
var betTypeRules = []betTypeRule{
	{name: "signed line", matches: hasUnpricedSignedNumber, betType: models.BetTypeSpread},
	{name: "over/under", matches: func(_, lower string) bool { return totalCue.MatchString(lower) }, betType: models.BetTypeTotal},
	{name: "moneyline keyword", matches: func(_, lower string) bool { return moneylineCue.MatchString(lower) }, betType: models.BetTypeMoneyline},
	{name: "prop keyword", matches: func(_, lower string) bool { return propCue.MatchString(lower) }, betType: models.BetTypeProp},
}

// DetectBetType classifies a line by the first matching rule, defaulting to Moneyline
func DetectBetType(text string) models.BetType {
	lower := strings.ToLower(text)
	for _, rule := range betTypeRules {
		if rule.matches(text, lower) {
			return rule.betType
		}
	}
	return models.BetTypeMoneyline
}

// hasUnpricedSignedNumber reports a signed number that is not an "@ price"
func hasUnpricedSignedNumber(text, _ string) bool {
	_, ok := firstUnpricedSigned(text)
	return ok
}

// ExtractSpread returns the first signed line that is not an "@ price",
// e.g. -5.5 from "Lakers -5.5 @ -110".
func ExtractSpread(text string) (float64, bool) {
	token, ok := firstUnpricedSigned(text)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSuffix(token, "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func firstUnpricedSigned(text string) (string, bool) {
	for _, loc := range signedNumber.FindAllStringIndex(text, -1) {
		before := strings.TrimRight(text[:loc[0]], " \t")
		if !strings.HasSuffix(before, "@") {
			return text[loc[0]:loc[1]], true
		}
	}
	return "", false
}
