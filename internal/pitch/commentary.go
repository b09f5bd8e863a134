package pitch

// Score bands shared by every axis remark.
const (
	bandHigh = 80
	bandMid  = 60
)

// Commentary holds one remark per scored axis.
type Commentary struct {
	Originality   string `json:"originality"`
	MarketSize    string `json:"marketSize"`
	Monetization  string `json:"monetization"`
	Clarity       string `json:"clarity"`
	TeamPotential string `json:"teamPotential"`
}

// Get returns the remark for one axis.
func (c Commentary) Get(axis Axis) string {
	switch axis {
	case AxisOriginality:
		return c.Originality
	case AxisMarketSize:
		return c.MarketSize
	case AxisMonetization:
		return c.Monetization
	case AxisClarity:
		return c.Clarity
	case AxisTeamPotential:
		return c.TeamPotential
	default:
		return ""
	}
}

// remark is a band-specific phrase used when its predicate holds below the
// neutral band.
type remark struct {
	when func(f Features) bool
	text string
}

type axisRemarks struct {
	high  string
	mid   string
	harsh []remark
	floor string
}

var commentaryTable = map[Axis]axisRemarks{
	AxisOriginality: {
		high: "Actually fresh",
		mid:  "Decent twist on old idea",
		harsh: []remark{
			{func(f Features) bool { return f.CompetitorAnalogy }, "Uber for X? Really?"},
			{func(f Features) bool { return f.Buzzwords }, "Buzzword bingo winner"},
		},
		floor: "Seen it before",
	},
	AxisMarketSize: {
		high: "Massive opportunity",
		mid:  "Solid market exists",
		harsh: []remark{
			{func(f Features) bool { return f.Vague }, "Who's your customer?"},
		},
		floor: "Niche or unclear",
	},
	AxisMonetization: {
		high: "Clear path to profit",
		mid:  "Revenue model exists",
		harsh: []remark{
			{func(f Features) bool { return f.Blockchain && !f.Revenue }, "Crypto dreams ≠ revenue"},
		},
		floor: "How do you make money?",
	},
	AxisClarity: {
		high: "Crystal clear pitch",
		mid:  "Mostly understandable",
		harsh: []remark{
			{func(f Features) bool { return f.Buzzwords }, "Lost in jargon"},
		},
		floor: "Confusing mess",
	},
	AxisTeamPotential: {
		high: "Seems competent",
		mid:  "Might pull it off",
		harsh: []remark{
			{func(f Features) bool { return f.Vague }, "Questionable execution"},
		},
		floor: "Needs adult supervision",
	},
}

// Comment picks the remark for a single axis. It has no randomness.
func Comment(axis Axis, score int, f Features) string {
	r, ok := commentaryTable[axis]
	if !ok {
		return ""
	}
	switch {
	case score >= bandHigh:
		return r.high
	case score >= bandMid:
		return r.mid
	}
	for _, h := range r.harsh {
		if h.when(f) {
			return h.text
		}
	}
	return r.floor
}

// Comments builds the remark for every axis of s.
func Comments(s ScoreSet, f Features) Commentary {
	return Commentary{
		Originality:   Comment(AxisOriginality, s.Originality, f),
		MarketSize:    Comment(AxisMarketSize, s.MarketSize, f),
		Monetization:  Comment(AxisMonetization, s.Monetization, f),
		Clarity:       Comment(AxisClarity, s.Clarity, f),
		TeamPotential: Comment(AxisTeamPotential, s.TeamPotential, f),
	}
}
