package gamify

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

// Profile is a player's persistent progress.
type Profile struct {
	ID               string    `json:"id"`
	Alias            string    `json:"alias"`
	XP               int       `json:"xp"`
	Level            int       `json:"level"`
	Rank             string    `json:"rank"`
	TotalPitches     int       `json:"totalPitches"`
	TotalRoasts      int       `json:"totalRoasts"`
	TotalFixIts      int       `json:"totalFixIts"`
	TotalMemes       int       `json:"totalMemes"`
	TotalVoiceRoasts int       `json:"totalVoiceRoasts"`
	MostRoastedPitch string    `json:"mostRoastedPitch"`
	JoinDate         time.Time `json:"joinDate"`
	LastActivity     time.Time `json:"lastActivity"`
}

var (
	aliasAdjectives = []string{
		"Disruptive", "Innovative", "Agile", "Lean", "Viral", "Scalable", "Pivotal", "Stealth",
		"Unicorn", "Rocket", "Ninja", "Guru", "Maverick", "Visionary", "Serial", "Angel",
	}
	aliasNouns = []string{
		"Founder", "Builder", "Hustler", "Dreamer", "Maker", "Hacker", "Pitcher", "Validator",
		"Disruptor", "Innovator", "Entrepreneur", "Visionary", "Strategist", "Pioneer",
	}
)

// RandomAlias builds an AdjectiveNounN alias with N in 1..999.
func RandomAlias(c pitch.Chooser) string {
	if c == nil {
		c = pitch.RandomChooser{}
	}
	adjective := aliasAdjectives[index(c, len(aliasAdjectives))]
	noun := aliasNouns[index(c, len(aliasNouns))]
	return fmt.Sprintf("%s%s%d", adjective, noun, index(c, 999)+1)
}

func index(c pitch.Chooser, n int) int {
	i := c.Intn(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}

// NewProfile returns a fresh Pre-Seedling profile. A blank alias is replaced
// with a random one.
func NewProfile(alias string, c pitch.Chooser, now time.Time) Profile {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		alias = RandomAlias(c)
	}
	start := RankFor(0)
	return Profile{
		ID:           "user_" + uuid.NewString(),
		Alias:        alias,
		Level:        start.Level,
		Rank:         start.Name,
		JoinDate:     now.UTC(),
		LastActivity: now.UTC(),
	}
}

// apply credits the action to p and reports whether the level went up.
func (p *Profile) apply(reward Reward, pitchTitle string, now time.Time) bool {
	oldLevel := p.Level
	p.XP += reward.XP
	p.LastActivity = now.UTC()

	switch reward.Action {
	case ActionPitchSubmit:
		p.TotalPitches++
		if pitchTitle != "" {
			p.MostRoastedPitch = pitchTitle
		}
	case ActionRoast:
		p.TotalRoasts++
	case ActionFixIt:
		p.TotalFixIts++
	case ActionMeme:
		p.TotalMemes++
	case ActionVoiceRoast:
		p.TotalVoiceRoasts++
	}

	rank := RankFor(p.XP)
	p.Level = rank.Level
	p.Rank = rank.Name
	return p.Level > oldLevel
}

// Progress summarizes where a profile sits on the rank ladder.
type Progress struct {
	Rank     Rank    `json:"rank"`
	Next     Rank    `json:"next"`
	Needed   int     `json:"needed"`
	Progress float64 `json:"progress"`
}

// ProgressFor computes the ladder position for xp.
func ProgressFor(xp int) Progress {
	needed, next := XPToNextLevel(xp)
	return Progress{
		Rank:     RankFor(xp),
		Next:     next,
		Needed:   needed,
		Progress: LevelProgress(xp),
	}
}
