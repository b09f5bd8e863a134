package pitch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreTaskFlowHasPromise(t *testing.T) {
	f := Classify(pitchTaskFlow)
	s := Score(f, pitchTaskFlow)

	require.Equal(t, ScoreSet{
		Originality:   50,
		MarketSize:    55,
		Monetization:  85,
		Clarity:       70,
		TeamPotential: 70,
		Total:         330,
	}, s)
	require.Greater(t, s.Total, 300)
	require.Equal(t, "📈 Has Promise", Verdict(s.Total))
}

func TestScoreClampsEachAxisBeforeSumming(t *testing.T) {
	low := Features{CompetitorAnalogy: true, Buzzwords: true, AI: true, Blockchain: true, Vague: true, Length: 10}
	s := Score(low, "free stuff for everyone")
	require.Equal(t, 0, s.Originality)
	require.Equal(t, 0, s.Clarity)
	require.Equal(t, 25, s.TeamPotential)
	require.Equal(t, 45, s.Total)
	require.Equal(t, s.Originality+s.MarketSize+s.Monetization+s.Clarity+s.TeamPotential, s.Total)

	high := Features{B2B: true, Healthcare: true, Fintech: true, Education: true, Target: true, Revenue: true}
	s = Score(high, "subscription")
	require.Equal(t, 100, s.MarketSize)
	require.Equal(t, 100, s.Monetization)
}

func TestScorePhraseRules(t *testing.T) {
	base := Features{Length: 100}

	tests := []struct {
		name string
		text string
		axis Axis
		want int
	}{
		{"novelty", "this has never been done", AxisOriginality, 65},
		{"everyone", "built for everyone", AxisMarketSize, 35},
		{"free penalized", "totally free forever", AxisMonetization, 30},
		{"freemium exempt", "free core with freemium upsell", AxisMonetization, 50},
		{"freelancers are not free", "tools for freelancers", AxisMonetization, 50},
		{"ads", "supported by ads", AxisMonetization, 55},
		{"saas", "a SaaS subscription", AxisMonetization, 65},
		{"experience", "founders with deep experience", AxisTeamPotential, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Score(base, tt.text).Get(tt.axis))
		})
	}
}

func TestScoreInvariantsOverCorpus(t *testing.T) {
	for _, text := range corpus {
		s := Score(Classify(text), text)
		for _, axis := range Axes() {
			v := s.Get(axis)
			require.GreaterOrEqual(t, v, 0, "%s %s", text, axis)
			require.LessOrEqual(t, v, 100, "%s %s", text, axis)
		}
		require.Equal(t, s.Originality+s.MarketSize+s.Monetization+s.Clarity+s.TeamPotential, s.Total, text)
	}
}

func TestVerdictBands(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{500, "🤑 Unicorn Potential"},
		{400, "🤑 Unicorn Potential"},
		{399, "🚀 Solid Startup"},
		{350, "🚀 Solid Startup"},
		{300, "📈 Has Promise"},
		{250, "🤔 Needs Work"},
		{200, "😬 Questionable"},
		{150, "🤡 Clown Show"},
		{100, "💀 DOA (Dead on Arrival)"},
		{99, "🗑️ Dumpster Fire"},
		{0, "🗑️ Dumpster Fire"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Verdict(tt.total), tt.total)
	}
}

func TestVerdictMonotonic(t *testing.T) {
	rank := map[string]int{verdictFloor: 0}
	for i, band := range verdictBands {
		rank[band.label] = len(verdictBands) - i
	}
	prev := rank[Verdict(0)]
	for total := 1; total <= 500; total++ {
		cur := rank[Verdict(total)]
		require.GreaterOrEqual(t, cur, prev, total)
		prev = cur
	}
}

func TestReasonsMatchScore(t *testing.T) {
	reasons := Reasons(Classify(pitchTaskFlow), pitchTaskFlow)
	require.Contains(t, reasons[AxisMonetization], "revenue mention")
	require.Contains(t, reasons[AxisClarity], "vague")
	require.Empty(t, reasons[AxisOriginality])
}
