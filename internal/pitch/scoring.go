package pitch

import (
	"regexp"
	"strings"
)

const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100
)

// Axis names one of the five scored dimensions.
type Axis string

const (
	AxisOriginality   Axis = "originality"
	AxisMarketSize    Axis = "marketSize"
	AxisMonetization  Axis = "monetization"
	AxisClarity       Axis = "clarity"
	AxisTeamPotential Axis = "teamPotential"
)

// Axes lists the scored dimensions in scorecard order.
func Axes() []Axis {
	return []Axis{AxisOriginality, AxisMarketSize, AxisMonetization, AxisClarity, AxisTeamPotential}
}

// Label returns the human-readable axis name.
func (a Axis) Label() string {
	switch a {
	case AxisOriginality:
		return "Originality"
	case AxisMarketSize:
		return "Market Size"
	case AxisMonetization:
		return "Monetization"
	case AxisClarity:
		return "Clarity"
	case AxisTeamPotential:
		return "Team Potential"
	default:
		return string(a)
	}
}

// ScoreSet holds the five clamped axis scores and their exact sum.
type ScoreSet struct {
	Originality   int `json:"originality"`
	MarketSize    int `json:"marketSize"`
	Monetization  int `json:"monetization"`
	Clarity       int `json:"clarity"`
	TeamPotential int `json:"teamPotential"`
	Total         int `json:"total"`
}

// Get returns the score for one axis.
func (s ScoreSet) Get(axis Axis) int {
	switch axis {
	case AxisOriginality:
		return s.Originality
	case AxisMarketSize:
		return s.MarketSize
	case AxisMonetization:
		return s.Monetization
	case AxisClarity:
		return s.Clarity
	case AxisTeamPotential:
		return s.TeamPotential
	default:
		return 0
	}
}

// scoreInput carries the classifier output plus the lowercased pitch for
// phrase-level rules.
type scoreInput struct {
	f     Features
	lower string
}

// adjustment is one additive rule applied to a single axis.
type adjustment struct {
	axis   Axis
	delta  int
	reason string
	when   func(in scoreInput) bool
}

var (
	reFree        = regexp.MustCompile(`\bfree\b`)
	reAds         = regexp.MustCompile(`\b(ads|advertising)\b`)
	reEveryone    = regexp.MustCompile(`\b(everyone|anyone)\b`)
	reFirstOfKind = regexp.MustCompile(`never been done|first of its kind`)
	reExperience  = regexp.MustCompile(`\b(experience|background)\b`)
	reSubscribe   = regexp.MustCompile(`\b(subscriptions?|saas)\b`)
)

// adjustments is applied top to bottom before clamping.
var adjustments = []adjustment{
	{AxisOriginality, -30, "competitor analogy", func(in scoreInput) bool { return in.f.CompetitorAnalogy }},
	{AxisOriginality, -15, "buzzwords", func(in scoreInput) bool { return in.f.Buzzwords }},
	{AxisOriginality, -20, "ai and blockchain", func(in scoreInput) bool { return in.f.Techy() && in.f.Blockchain }},
	{AxisOriginality, 10, "ai without buzzwords", func(in scoreInput) bool { return in.f.Techy() && !in.f.Buzzwords }},
	{AxisOriginality, 5, "regulated vertical", func(in scoreInput) bool { return in.f.Healthcare || in.f.Fintech }},
	{AxisOriginality, 15, "claims novelty", func(in scoreInput) bool { return reFirstOfKind.MatchString(in.lower) }},

	{AxisMarketSize, 15, "b2b", func(in scoreInput) bool { return in.f.B2B }},
	{AxisMarketSize, 20, "healthcare", func(in scoreInput) bool { return in.f.Healthcare }},
	{AxisMarketSize, 15, "fintech", func(in scoreInput) bool { return in.f.Fintech }},
	{AxisMarketSize, 10, "education", func(in scoreInput) bool { return in.f.Education }},
	{AxisMarketSize, 10, "named target", func(in scoreInput) bool { return in.f.Target }},
	{AxisMarketSize, -20, "vague", func(in scoreInput) bool { return in.f.Vague }},
	{AxisMarketSize, -15, "targets everyone", func(in scoreInput) bool { return reEveryone.MatchString(in.lower) }},

	{AxisMonetization, 20, "revenue mention", func(in scoreInput) bool { return in.f.Revenue }},
	{AxisMonetization, 15, "b2b", func(in scoreInput) bool { return in.f.B2B }},
	{AxisMonetization, 15, "subscription", func(in scoreInput) bool { return reSubscribe.MatchString(in.lower) }},
	{AxisMonetization, -20, "free", func(in scoreInput) bool {
		return reFree.MatchString(in.lower) && !strings.Contains(in.lower, "freemium")
	}},
	{AxisMonetization, -25, "crypto without revenue", func(in scoreInput) bool { return in.f.Blockchain && !in.f.Revenue }},
	{AxisMonetization, 5, "advertising", func(in scoreInput) bool { return reAds.MatchString(in.lower) }},

	{AxisClarity, 20, "problem and solution", func(in scoreInput) bool { return in.f.Problem && in.f.Solution }},
	{AxisClarity, 15, "named target", func(in scoreInput) bool { return in.f.Target }},
	{AxisClarity, 10, "metrics", func(in scoreInput) bool { return in.f.HasMetrics }},
	{AxisClarity, -25, "vague", func(in scoreInput) bool { return in.f.Vague }},
	{AxisClarity, -15, "buzzwords", func(in scoreInput) bool { return in.f.Buzzwords }},
	{AxisClarity, -20, "very short", func(in scoreInput) bool { return in.f.Length < 30 }},
	{AxisClarity, 10, "detailed", func(in scoreInput) bool { return in.f.Length > 200 }},

	{AxisTeamPotential, 15, "metrics", func(in scoreInput) bool { return in.f.HasMetrics }},
	{AxisTeamPotential, 20, "complete pitch", func(in scoreInput) bool {
		return in.f.Problem && in.f.Solution && in.f.Target
	}},
	{AxisTeamPotential, 10, "team experience", func(in scoreInput) bool { return reExperience.MatchString(in.lower) }},
	{AxisTeamPotential, -15, "vague", func(in scoreInput) bool { return in.f.Vague }},
	{AxisTeamPotential, -10, "short", func(in scoreInput) bool { return in.f.Length < 50 }},
}

// Score starts every axis at 50, applies the adjustment rules, clamps each
// axis to [0,100] and only then sums the clamped values into Total.
func Score(f Features, text string) ScoreSet {
	in := scoreInput{f: f, lower: strings.ToLower(text)}

	raw := map[Axis]int{}
	for _, axis := range Axes() {
		raw[axis] = baseScore
	}
	for _, adj := range adjustments {
		if adj.when(in) {
			raw[adj.axis] += adj.delta
		}
	}

	s := ScoreSet{
		Originality:   clamp(raw[AxisOriginality]),
		MarketSize:    clamp(raw[AxisMarketSize]),
		Monetization:  clamp(raw[AxisMonetization]),
		Clarity:       clamp(raw[AxisClarity]),
		TeamPotential: clamp(raw[AxisTeamPotential]),
	}
	s.Total = s.Originality + s.MarketSize + s.Monetization + s.Clarity + s.TeamPotential
	return s
}

// Reasons lists the adjustment rules that fired, grouped by axis.
func Reasons(f Features, text string) map[Axis][]string {
	in := scoreInput{f: f, lower: strings.ToLower(text)}
	out := map[Axis][]string{}
	for _, adj := range adjustments {
		if adj.when(in) {
			out[adj.axis] = append(out[adj.axis], adj.reason)
		}
	}
	return out
}

func clamp(v int) int {
	if v < minScore {
		return minScore
	}
	if v > maxScore {
		return maxScore
	}
	return v
}

// verdictBand maps a minimum total to a verdict label.
type verdictBand struct {
	min   int
	label string
}

// verdictBands is ordered from highest threshold to lowest.
var verdictBands = []verdictBand{
	{400, "🤑 Unicorn Potential"},
	{350, "🚀 Solid Startup"},
	{300, "📈 Has Promise"},
	{250, "🤔 Needs Work"},
	{200, "😬 Questionable"},
	{150, "🤡 Clown Show"},
	{100, "💀 DOA (Dead on Arrival)"},
}

const verdictFloor = "🗑️ Dumpster Fire"

// Verdict returns the label of the first band whose threshold total meets.
func Verdict(total int) string {
	for _, band := range verdictBands {
		if total >= band.min {
			return band.label
		}
	}
	return verdictFloor
}
