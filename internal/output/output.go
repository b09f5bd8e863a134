package output

import (
	"fmt"
	"strings"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// Formatter renders engine responses and gamification views.
type Formatter interface {
	FormatResponse(resp pitch.Response) (string, error)
	FormatDomains(results []domains.Result) (string, error)
	FormatLeaderboard(profiles []gamify.Profile) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	case string(FormatYAML), "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// modeTitle is the heading shown above a response.
func modeTitle(mode pitch.Mode) string {
	switch mode {
	case pitch.ModeRoast:
		return "Roast"
	case pitch.ModeFixIt:
		return "FixIt"
	case pitch.ModeScorecard:
		return "Scorecard"
	case pitch.ModeBranding:
		return "Branding Doctor"
	case pitch.ModeMeme:
		return "Meme"
	default:
		return string(mode)
	}
}

// Structured renders v as JSON or YAML. It reports false for the human
// formats so callers can draw their own table.
func Structured(format Format, v any) (string, bool, error) {
	switch format {
	case FormatJSON:
		out, err := (&JSONFormatter{Indent: true}).marshal(v)
		return out, true, err
	case FormatYAML:
		out, err := toYAML(v)
		return out, true, err
	default:
		return "", false, nil
	}
}
