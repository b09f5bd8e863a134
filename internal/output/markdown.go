package output

import (
	"fmt"
	"strings"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

// MarkdownFormatter renders results as Markdown.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) FormatResponse(resp pitch.Response) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s\n\n", modeTitle(resp.Mode)))

	switch {
	case resp.Mode == pitch.ModeScorecard && resp.Scores != nil:
		if resp.StartupName != "" {
			sb.WriteString(fmt.Sprintf("**Startup**: %s\n\n", escapeMarkdownCell(resp.StartupName)))
		}
		commentary := scorecardCommentary(resp)
		sb.WriteString("| Category | Score | Commentary |\n")
		sb.WriteString("|----------|-------|------------|\n")
		for _, axis := range pitch.Axes() {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n",
				axis.Label(),
				resp.Scores.Get(axis),
				escapeMarkdownCell(commentary[axis]),
			))
		}
		sb.WriteString(fmt.Sprintf("\n**Total**: %d/500 (%s)\n", resp.Scores.Total, escapeMarkdownCell(resp.Verdict)))
	case resp.Mode == pitch.ModeBranding && resp.Suggestions != nil:
		s := resp.Suggestions
		sb.WriteString("| Name | Tagline | Domain |\n")
		sb.WriteString("|------|---------|--------|\n")
		for i := range s.Names {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				escapeMarkdownCell(s.Names[i]),
				escapeMarkdownCell(s.Taglines[i]),
				escapeMarkdownCell(s.Domains[i]),
			))
		}
		sb.WriteString(fmt.Sprintf("\n**Positioning**: %s\n", s.Positioning))
	case resp.Mode == pitch.ModeMeme:
		sb.WriteString(fmt.Sprintf("- Template: `%s`\n", resp.Template))
		sb.WriteString(fmt.Sprintf("- Top: %s\n", resp.TopText))
		sb.WriteString(fmt.Sprintf("- Bottom: %s\n", resp.BottomText))
		sb.WriteString(fmt.Sprintf("\n> %s\n", resp.Caption))
	default:
		sb.WriteString(resp.Primary())
		sb.WriteString("\n")
	}

	if resp.Failed() {
		sb.WriteString(fmt.Sprintf("\n_%s_\n", resp.Error))
	}
	return sb.String(), nil
}

func (f *MarkdownFormatter) FormatDomains(results []domains.Result) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("| Domain | Status | Notes |\n")
	sb.WriteString("|--------|--------|-------|\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			escapeMarkdownCell(r.Domain),
			escapeMarkdownCell(statusLabel(r)),
			escapeMarkdownCell(formatNotes(r)),
		))
	}
	return sb.String(), nil
}

func (f *MarkdownFormatter) FormatLeaderboard(profiles []gamify.Profile) (string, error) {
	var sb strings.Builder
	sb.WriteString("## Leaderboard\n\n")
	sb.WriteString("| # | Player | Rank | Level | XP |\n")
	sb.WriteString("|---|--------|------|-------|----|\n")
	for i, p := range profiles {
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %d |\n",
			i+1,
			escapeMarkdownCell(playerLabel(p)),
			escapeMarkdownCell(p.Rank),
			p.Level,
			p.XP,
		))
	}
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	return strings.ReplaceAll(value, "|", "\\|")
}
