package investor

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pitchslap/pitchslap/internal/pitch"
)

// Deal is a generated startup pitch together with its hidden answer.
type Deal struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	Pitch       string    `json:"pitch"`
	Category    string    `json:"category"`
	Quality     Quality   `json:"quality"`
	Outcome     Outcome   `json:"actualOutcome"`
	Valuation   string    `json:"valuation"`
	Founders    string    `json:"founders"`
	Traction    string    `json:"traction"`
	RedFlags    []string  `json:"redFlags,omitempty"`
	GreenFlags  []string  `json:"greenFlags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Offer is the part of a Deal shown to the player before deciding.
type Offer struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Pitch       string `json:"pitch"`
	Category    string `json:"category"`
	Valuation   string `json:"valuation"`
	Founders    string `json:"founders"`
	Traction    string `json:"traction"`
}

// Offer hides the quality, outcome and flags.
func (d Deal) Offer() Offer {
	return Offer{
		ID:          d.ID,
		CompanyName: d.CompanyName,
		Pitch:       d.Pitch,
		Category:    d.Category,
		Valuation:   d.Valuation,
		Founders:    d.Founders,
		Traction:    d.Traction,
	}
}

// GenerateDeal draws a quality, a template of that quality and a value for
// each template slot.
func GenerateDeal(c pitch.Chooser, now time.Time) Deal {
	if c == nil {
		c = pitch.RandomChooser{}
	}

	quality := qualities[index(c, len(qualities))]
	options := templates[quality]
	tpl := options[index(c, len(options))]

	text := tpl.text
	company := "StartupCo"
	for _, s := range tpl.slots {
		value := s.values[index(c, len(s.values))]
		if s.name == "company" {
			company = value
		}
		text = strings.Replace(text, "{"+s.name+"}", value, 1)
	}

	return Deal{
		ID:          "deal_" + uuid.NewString(),
		CompanyName: company,
		Pitch:       text,
		Category:    tpl.category,
		Quality:     quality,
		Outcome:     tpl.outcome,
		Valuation:   valuations[index(c, len(valuations))],
		Founders:    founderTypes[index(c, len(founderTypes))],
		Traction:    tractionMetrics[index(c, len(tractionMetrics))],
		RedFlags:    append([]string(nil), tpl.redFlags...),
		GreenFlags:  append([]string(nil), tpl.greenFlags...),
		CreatedAt:   now.UTC(),
	}
}

func index(c pitch.Chooser, n int) int {
	i := c.Intn(n)
	if i < 0 || i >= n {
		return 0
	}
	return i
}
