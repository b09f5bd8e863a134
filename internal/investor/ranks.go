package investor

// Rank is a VC career step gated by accuracy and deal count.
type Rank struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	MinAccuracy int    `json:"minAccuracy"`
	MinDeals    int    `json:"minDeals"`
	Icon        string `json:"icon"`
}

var ranks = []Rank{
	{0, "Intern with Coffee", 0, 0, "☕"},
	{1, "Junior Associate", 30, 5, "📊"},
	{2, "Investment Analyst", 45, 15, "🔍"},
	{3, "Senior Associate", 55, 25, "📈"},
	{4, "Principal", 65, 40, "💼"},
	{5, "VP of Investments", 70, 60, "🎯"},
	{6, "Managing Director", 75, 80, "👔"},
	{7, "General Partner", 80, 100, "🤝"},
	{8, "Legendary VC", 85, 150, "🏆"},
	{9, "Unicorn Whisperer", 90, 200, "🦄"},
	{10, "Warren Buffett Jr.", 95, 300, "👑"},
}

// Ranks returns a copy of the investor ladder, lowest first.
func Ranks() []Rank {
	return append([]Rank(nil), ranks...)
}

// RankFor returns the highest rank whose thresholds are both met.
func RankFor(accuracy, deals int) Rank {
	for i := len(ranks) - 1; i >= 0; i-- {
		if accuracy >= ranks[i].MinAccuracy && deals >= ranks[i].MinDeals {
			return ranks[i]
		}
	}
	return ranks[0]
}

// RankProgress reports the current and next rank and the percentage toward
// the next one, taken as the weaker of the accuracy and deal-count ratios.
func RankProgress(accuracy, deals int) (current, next Rank, progress float64) {
	current = RankFor(accuracy, deals)
	if current.Level == len(ranks)-1 {
		return current, current, 100
	}
	next = ranks[current.Level+1]
	byAccuracy := min(100, float64(accuracy)/float64(next.MinAccuracy)*100)
	byDeals := min(100, float64(deals)/float64(next.MinDeals)*100)
	return current, next, min(byAccuracy, byDeals)
}
