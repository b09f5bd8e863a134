// Package pitch implements the rule-based pitch analysis engine: key term
// extraction, feature classification, scoring, and the templated roast,
// fixit, scorecard, branding and meme generators.
//
// Everything in this package is pure and synchronous. The only source of
// variation is the Chooser used to pick phrasing within a matched branch.
package pitch

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects which generator handles a pitch.
type Mode string

const (
	ModeRoast     Mode = "roast"
	ModeFixIt     Mode = "fixit"
	ModeScorecard Mode = "scorecard"
	ModeBranding  Mode = "branding"
	ModeMeme      Mode = "meme"
)

// ErrUnknownMode is returned by ParseMode for unsupported mode names.
var ErrUnknownMode = errors.New("unknown mode")

// Modes lists every supported mode in display order.
func Modes() []Mode {
	return []Mode{ModeRoast, ModeFixIt, ModeScorecard, ModeBranding, ModeMeme}
}

// ParseMode validates and normalizes a mode string.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "roast":
		return ModeRoast, nil
	case "fixit", "fix-it", "fix":
		return ModeFixIt, nil
	case "scorecard", "score":
		return ModeScorecard, nil
	case "branding", "brand":
		return ModeBranding, nil
	case "meme":
		return ModeMeme, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func (m Mode) String() string {
	return string(m)
}
