// Package gamify tracks player experience points, startup-themed ranks and
// the global leaderboard.
package gamify

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

// Action is a rewarded player action.
type Action string

const (
	ActionPitchSubmit Action = "pitch_submit"
	ActionRoast       Action = "roast_generate"
	ActionFixIt       Action = "fixit_generate"
	ActionScorecard   Action = "scorecard_generate"
	ActionBranding    Action = "branding_generate"
	ActionMeme        Action = "meme_generate"
	ActionVoiceRoast  Action = "voice_roast"
	ActionRegenerate  Action = "regenerate"
	ActionShareMeme   Action = "share_meme"
)

// Reward is the XP granted for an action.
type Reward struct {
	Action      Action `json:"action"`
	XP          int    `json:"xp"`
	Description string `json:"description"`
}

var rewards = map[Action]Reward{
	ActionPitchSubmit: {ActionPitchSubmit, 10, "Submitted a pitch"},
	ActionRoast:       {ActionRoast, 15, "Generated a roast"},
	ActionFixIt:       {ActionFixIt, 20, "Used FixIt mode"},
	ActionScorecard:   {ActionScorecard, 25, "Generated scorecard"},
	ActionBranding:    {ActionBranding, 25, "Used Branding Doctor"},
	ActionMeme:        {ActionMeme, 30, "Created a meme"},
	ActionVoiceRoast:  {ActionVoiceRoast, 35, "Generated voice roast"},
	ActionRegenerate:  {ActionRegenerate, 5, "Regenerated content"},
	ActionShareMeme:   {ActionShareMeme, 10, "Shared a meme"},
}

// RewardFor returns the reward table entry for a.
func RewardFor(a Action) (Reward, bool) {
	r, ok := rewards[a]
	return r, ok
}

// Rewards lists every reward ordered by XP, then action name.
func Rewards() []Reward {
	out := make([]Reward, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Reward) int {
		if c := cmp.Compare(a.XP, b.XP); c != 0 {
			return c
		}
		return cmp.Compare(a.Action, b.Action)
	})
	return out
}

// ParseAction validates an action name.
func ParseAction(value string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := rewards[a]; !ok {
		return "", fmt.Errorf("unknown action %q", value)
	}
	return a, nil
}

// ActionForMode maps a generation mode to the action it rewards.
func ActionForMode(m pitch.Mode) Action {
	switch m {
	case pitch.ModeRoast:
		return ActionRoast
	case pitch.ModeFixIt:
		return ActionFixIt
	case pitch.ModeScorecard:
		return ActionScorecard
	case pitch.ModeBranding:
		return ActionBranding
	case pitch.ModeMeme:
		return ActionMeme
	default:
		return ActionPitchSubmit
	}
}
