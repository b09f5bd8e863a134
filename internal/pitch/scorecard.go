package pitch

import (
	"fmt"
	"regexp"
	"strings"
)

var reProperNoun = regexp.MustCompile(`\b[A-Z][a-z]+(?:[A-Z][a-z]+)*\b`)

// nameStopwords are capitalized sentence starters that never name a company.
var nameStopwords = map[string]struct{}{
	"The": {}, "Our": {}, "We": {}, "This": {}, "My": {}, "It": {}, "An": {},
	"Its": {}, "Imagine": {}, "Introducing": {}, "Meet": {}, "Think": {},
	"Uber": {}, "Airbnb": {}, "Netflix": {}, "Spotify": {}, "Tinder": {},
}

// Scorecard is the assembled scorecard result.
type Scorecard struct {
	StartupName string     `json:"startupName"`
	Scores      ScoreSet   `json:"scores"`
	Commentary  Commentary `json:"commentary"`
	Verdict     string     `json:"verdict"`
}

// StartupName returns the first capitalized token that looks like a company
// name, or a sarcastic placeholder derived from the features.
func StartupName(text string, f Features) string {
	for _, m := range reProperNoun.FindAllString(text, -1) {
		if len(m) <= 2 {
			continue
		}
		if _, skip := nameStopwords[m]; skip {
			continue
		}
		return m
	}

	switch {
	case f.AI:
		return "AI-Something Inc."
	case f.Blockchain:
		return "CryptoThing Labs"
	case f.CompetitorAnalogy:
		return "UberClone Co."
	case f.Social:
		return "SocialApp 2.0"
	case f.App:
		return "GenericApp LLC"
	default:
		return "Mystery Startup"
	}
}

// BuildScorecard scores a classified pitch and attaches commentary,
// verdict and a startup name.
func BuildScorecard(text string, f Features) Scorecard {
	scores := Score(f, text)
	return Scorecard{
		StartupName: StartupName(text, f),
		Scores:      scores,
		Commentary:  Comments(scores, f),
		Verdict:     Verdict(scores.Total),
	}
}

// String renders the scorecard text block.
func (s Scorecard) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "💯 Scorecard for: %s\n", s.StartupName)
	for _, axis := range Axes() {
		fmt.Fprintf(&b, "- %s: %d — %s\n", axis.Label(), s.Scores.Get(axis), s.Commentary.Get(axis))
	}
	fmt.Fprintf(&b, "🔥 Verdict: %d/500 — %s", s.Scores.Total, s.Verdict)
	return b.String()
}
