package investor

import (
	"fmt"
	"strings"
)

// Choice is the player's call on a deal.
type Choice string

const (
	ChoiceInvest Choice = "invest"
	ChoicePass   Choice = "pass"
)

// ParseChoice validates a choice string.
func ParseChoice(value string) (Choice, error) {
	switch Choice(strings.ToLower(strings.TrimSpace(value))) {
	case ChoiceInvest:
		return ChoiceInvest, nil
	case ChoicePass:
		return ChoicePass, nil
	default:
		return "", fmt.Errorf("unknown decision %q: want invest or pass", value)
	}
}

// Decision is a player's call with a 1 to 5 confidence.
type Decision struct {
	Choice     Choice `json:"decision"`
	Confidence int    `json:"confidence"`
	Reasoning  string `json:"reasoning,omitempty"`
}

// Result explains how a decision played out.
type Result struct {
	Correct       bool   `json:"correct"`
	Explanation   string `json:"explanation"`
	ActualOutcome string `json:"actualOutcome"`
	Points        int    `json:"points"`
	VCReaction    string `json:"vcReaction"`
}

// ShouldInvest is true for great deals and for mediocre deals that
// succeeded.
func (d Deal) ShouldInvest() bool {
	return d.Quality == QualityGreat || (d.Quality == QualityMediocre && d.Outcome == OutcomeSuccess)
}

// Evaluate scores a decision against the deal's hidden answer.
func Evaluate(d Deal, decision Decision) Result {
	invested := decision.Choice == ChoiceInvest
	correct := invested == d.ShouldInvest()

	r := Result{
		Correct:       correct,
		ActualOutcome: d.CompanyName + " " + d.Outcome.Describe(),
	}

	if correct {
		switch d.Quality {
		case QualityGreat:
			r.Points = 15
		case QualityMediocre:
			r.Points = 10
		default:
			r.Points = 5
		}

		switch {
		case invested && d.Quality == QualityGreat:
			r.Explanation = fmt.Sprintf("Excellent call! %s became a major success. %s.", d.CompanyName, strings.Join(d.GreenFlags, ", "))
			r.VCReaction = "🎯 You've got the golden touch! This is why you're in the big leagues."
		case !invested && d.Quality == QualityTerrible:
			r.Explanation = fmt.Sprintf("Smart pass! %s failed spectacularly. %s.", d.CompanyName, strings.Join(d.RedFlags, ", "))
			r.VCReaction = "🧠 Your BS detector is finely tuned. You saved the fund millions!"
		default:
			r.Explanation = fmt.Sprintf("Good instincts! You correctly identified this as a %s opportunity.", d.Quality)
			r.VCReaction = "👍 Solid decision-making. You're learning the game."
		}
		return r
	}

	r.Points = -5
	if d.Quality == QualityTerrible {
		r.Points = -10
	}

	switch {
	case invested && d.Quality == QualityTerrible:
		r.Explanation = fmt.Sprintf("Ouch! %s was a complete disaster. %s.", d.CompanyName, strings.Join(d.RedFlags, ", "))
		r.VCReaction = "🤦‍♂️ Did you even read the pitch? This had red flags everywhere!"
	case !invested && d.Quality == QualityGreat:
		r.Explanation = fmt.Sprintf("You missed a unicorn! %s became a massive success. %s.", d.CompanyName, strings.Join(d.GreenFlags, ", "))
		r.VCReaction = "😱 You just passed on the next Google! Time to update your resume."
	default:
		verb := "failed"
		if d.Outcome == OutcomeSuccess {
			verb = "succeeded"
		}
		r.Explanation = fmt.Sprintf("Wrong call on this one. %s %s.", d.CompanyName, verb)
		r.VCReaction = "📉 Your pattern recognition needs work. Study the market more!"
	}
	return r
}
