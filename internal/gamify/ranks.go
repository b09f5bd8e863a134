package gamify

// Rank is one rung of the startup ladder. Level is the rank's index.
type Rank struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	MinXP int    `json:"minXp"`
	Icon  string `json:"icon"`
}

var ranks = []Rank{
	{0, "Pre-Seedling", 0, "🌱"},
	{1, "Idea Haver", 50, "💡"},
	{2, "MVP Builder", 150, "🔨"},
	{3, "Beta Tester", 300, "🧪"},
	{4, "Product Hunter", 500, "🎯"},
	{5, "Growth Hacker", 750, "📈"},
	{6, "Series A Hopeful", 1100, "💰"},
	{7, "VC Bait", 1500, "🎣"},
	{8, "Unicorn Hunter", 2000, "🦄"},
	{9, "Startup Sensei", 2750, "🥋"},
	{10, "Exit Strategy", 3500, "🚀"},
	{11, "Pitch Slap Legend", 5000, "👑"},
}

// MaxLevel is the level of the top rank.
var MaxLevel = len(ranks) - 1

// Ranks returns a copy of the rank ladder, lowest first.
func Ranks() []Rank {
	return append([]Rank(nil), ranks...)
}

// RankFor returns the highest rank whose MinXP is at most xp.
func RankFor(xp int) Rank {
	for i := len(ranks) - 1; i >= 0; i-- {
		if xp >= ranks[i].MinXP {
			return ranks[i]
		}
	}
	return ranks[0]
}

// XPToNextLevel reports how much XP is missing for the next rank. At the
// top rank it returns 0 and the current rank.
func XPToNextLevel(xp int) (int, Rank) {
	current := RankFor(xp)
	if current.Level == MaxLevel {
		return 0, current
	}
	next := ranks[current.Level+1]
	return next.MinXP - xp, next
}

// LevelProgress is the percentage of the way from the current rank to the
// next one, capped at 100. The top rank always reports 100.
func LevelProgress(xp int) float64 {
	current := RankFor(xp)
	if current.Level == MaxLevel {
		return 100
	}
	next := ranks[current.Level+1]
	progress := float64(xp-current.MinXP) / float64(next.MinXP-current.MinXP) * 100
	return min(100, progress)
}
