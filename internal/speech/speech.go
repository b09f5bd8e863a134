// Package speech prepares roast text for a text-to-speech engine.
package speech

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Personality is a voice preset. Rate and Pitch multiply the caller's values.
type Personality struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Pitch       float64 `json:"pitch"`
	Gender      string  `json:"gender"`
}

const (
	SavageVC   = "savage-vc"
	SnarkyTeen = "snarky-teen"
)

var personalities = []Personality{
	{ID: SavageVC, Name: "Savage VC", Description: "Brutal venture capitalist with zero patience", Rate: 1.2, Pitch: 0.7, Gender: "male"},
	{ID: SnarkyTeen, Name: "Snarky Teen Investor", Description: "Gen-Z investor with attitude", Rate: 1.4, Pitch: 1.3, Gender: "female"},
}

// ErrUnknownVoice is returned for a personality id that does not exist.
var ErrUnknownVoice = errors.New("unknown voice personality")

// Personalities returns the available voice presets.
func Personalities() []Personality {
	return slices.Clone(personalities)
}

// Lookup finds a personality by id. An empty id selects SavageVC.
func Lookup(id string) (Personality, error) {
	if id == "" {
		id = SavageVC
	}
	for _, p := range personalities {
		if p.ID == id {
			return p, nil
		}
	}
	return Personality{}, fmt.Errorf("%w: %s", ErrUnknownVoice, id)
}

// Utterance is the hand-off to a platform speech facility.
type Utterance struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice"`
	Gender string  `json:"gender"`
	Rate   float64 `json:"rate"`
	Pitch  float64 `json:"pitch"`
	Volume float64 `json:"volume"`
}

// Prepare cleans text and applies the personality to speed and pitch.
// Non-positive speed or pitch count as 1.
func Prepare(text, voice string, speed, pitch float64) (Utterance, error) {
	p, err := Lookup(voice)
	if err != nil {
		return Utterance{}, err
	}
	if speed <= 0 {
		speed = 1
	}
	if pitch <= 0 {
		pitch = 1
	}
	return Utterance{
		Text:   CleanText(text),
		Voice:  p.ID,
		Gender: p.Gender,
		Rate:   speed * p.Rate,
		Pitch:  pitch * p.Pitch,
		Volume: 1,
	}, nil
}

var (
	roastHeader = regexp.MustCompile(`(?i)^\s*(?:[#>*_\s]*)(?:🔥\s*)?roast\s*:\s*`)
	emphasis    = regexp.MustCompile("[*_`#~]+")
	paragraph   = regexp.MustCompile(`\n\s*\n`)
	spaces      = regexp.MustCompile(`\s+`)
)

// CleanText strips emoji, markdown emphasis and a leading "Roast:" header,
// turns paragraph breaks into sentence breaks and line breaks into commas,
// and collapses whitespace.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		return r
	}, text)
	text = roastHeader.ReplaceAllString(text, "")
	text = emphasis.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "—", " - ")
	text = paragraph.ReplaceAllString(strings.TrimSpace(text), ". ")
	text = strings.ReplaceAll(text, "\n", ", ")
	text = spaces.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, ". . ", ". ")
	text = strings.ReplaceAll(text, "!. ", "! ")
	text = strings.ReplaceAll(text, "?. ", "? ")
	text = strings.ReplaceAll(text, ".. ", ". ")
	return strings.TrimSpace(text)
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0xFE0F || r == 0x200D:
		return true
	}
	return unicode.Is(unicode.So, r)
}
