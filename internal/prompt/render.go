package prompt

import (
	"regexp"
	"strings"
)

// Render substitutes the pitch into the prompt template.
func (p *Prompt) Render(pitch string) string {
	return strings.Replace(p.Config.Template, placeholder(PitchVariable), pitch, 1)
}

var rePitchSection = regexp.MustCompile(`(?s)Startup Pitch:\s*(.*?)(?:\n\nFormat your response|Response format:|$)`)

// ExtractPitch pulls the pitch back out of a rendered prompt. Text without a
// "Startup Pitch:" section yields "".
func ExtractPitch(rendered string) string {
	m := rePitchSection.FindStringSubmatch(rendered)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
