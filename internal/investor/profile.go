package investor

import "math"

// Profile is a player's investing track record.
type Profile struct {
	PlayerID         string `json:"playerId"`
	TotalDeals       int    `json:"totalDeals"`
	CorrectDecisions int    `json:"correctDecisions"`
	Accuracy         int    `json:"accuracy"`
	TotalPoints      int    `json:"totalPoints"`
	Rank             string `json:"rank"`
	Level            int    `json:"level"`
	Streak           int    `json:"streak"`
	BestStreak       int    `json:"bestStreak"`
}

// NewProfile returns an empty record at the bottom rank.
func NewProfile(playerID string) Profile {
	return Profile{PlayerID: playerID, Rank: ranks[0].Name}
}

// Record applies one evaluated decision.
func (p *Profile) Record(r Result) {
	p.TotalDeals++
	if r.Correct {
		p.CorrectDecisions++
		p.Streak++
		p.BestStreak = max(p.BestStreak, p.Streak)
	} else {
		p.Streak = 0
	}

	p.Accuracy = int(math.Round(float64(p.CorrectDecisions) / float64(p.TotalDeals) * 100))
	p.TotalPoints += r.Points

	rank := RankFor(p.Accuracy, p.TotalDeals)
	p.Rank = rank.Name
	p.Level = rank.Level
}
