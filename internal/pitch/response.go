package pitch

// Suggestions is the structured half of a branding response.
type Suggestions struct {
	Names       [3]string `json:"names"`
	Taglines    [3]string `json:"taglines"`
	Positioning string    `json:"positioning"`
	Domains     [3]string `json:"domains"`
}

// Response is the mode-specific result of Generate. Only the fields that
// belong to Mode are populated. Error is set when the engine had to fall
// back to canned content after an internal failure.
type Response struct {
	Mode   Mode   `json:"mode"`
	Branch string `json:"branch,omitempty"`

	Roast string `json:"roast,omitempty"`

	FixedPitch string `json:"fixedPitch,omitempty"`

	Scorecard   string      `json:"scorecard,omitempty"`
	StartupName string      `json:"startupName,omitempty"`
	Scores      *ScoreSet   `json:"scores,omitempty"`
	Commentary  *Commentary `json:"commentary,omitempty"`
	Verdict     string      `json:"verdict,omitempty"`

	Branding    string       `json:"branding,omitempty"`
	Suggestions *Suggestions `json:"suggestions,omitempty"`

	Template   string `json:"template,omitempty"`
	TopText    string `json:"topText,omitempty"`
	BottomText string `json:"bottomText,omitempty"`
	Caption    string `json:"caption,omitempty"`
	ShareText  string `json:"shareText,omitempty"`

	Error string `json:"error,omitempty"`
}

// Primary returns the field a caller renders first for the response's mode.
func (r Response) Primary() string {
	switch r.Mode {
	case ModeRoast:
		return r.Roast
	case ModeFixIt:
		return r.FixedPitch
	case ModeScorecard:
		return r.Scorecard
	case ModeBranding:
		return r.Branding
	case ModeMeme:
		return r.Caption
	default:
		return ""
	}
}

// Failed reports whether the response carries fallback content.
func (r Response) Failed() bool {
	return r.Error != ""
}
