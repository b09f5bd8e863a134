package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

// commentaryWidth wraps long remarks inside table cells.
const commentaryWidth = 60

// TableFormatter renders results as ASCII tables.
type TableFormatter struct{}

// FormatResponse renders a response. Scorecards, branding and memes become
// tables; roasts and fixits are printed as text under a heading.
func (f *TableFormatter) FormatResponse(resp pitch.Response) (string, error) {
	var rendered string
	switch {
	case resp.Mode == pitch.ModeScorecard && resp.Scores != nil:
		rendered = scorecardTable(resp)
	case resp.Mode == pitch.ModeBranding && resp.Suggestions != nil:
		rendered = brandingTable(resp)
	case resp.Mode == pitch.ModeMeme:
		rendered = memeTable(resp)
	default:
		rendered = fmt.Sprintf("%s\n%s\n\n%s", modeTitle(resp.Mode), strings.Repeat("=", len(modeTitle(resp.Mode))), resp.Primary())
	}

	if resp.Failed() {
		rendered += fmt.Sprintf("\n\n(fallback: %s)", resp.Error)
	}
	return rendered, nil
}

func scorecardTable(resp pitch.Response) string {
	commentary := scorecardCommentary(resp)

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	title := "Investor Scorecard"
	if resp.StartupName != "" {
		title += ": " + resp.StartupName
	}
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Category", "Score", "Commentary"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Score", Align: text.AlignRight},
		{Name: "Commentary", WidthMax: commentaryWidth},
	})

	for _, axis := range pitch.Axes() {
		t.AppendRow(table.Row{
			axis.Label(),
			fmt.Sprintf("%d/100", resp.Scores.Get(axis)),
			commentary[axis],
		})
	}
	t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d/500", resp.Scores.Total), resp.Verdict})

	return t.Render()
}

func scorecardCommentary(resp pitch.Response) map[pitch.Axis]string {
	out := make(map[pitch.Axis]string, len(pitch.Axes()))
	if resp.Commentary == nil {
		return out
	}
	for _, axis := range pitch.Axes() {
		out[axis] = resp.Commentary.Get(axis)
	}
	return out
}

func brandingTable(resp pitch.Response) string {
	s := resp.Suggestions

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(modeTitle(resp.Mode))
	t.AppendHeader(table.Row{"#", "Name", "Tagline", "Domain"})
	for i := range s.Names {
		t.AppendRow(table.Row{i + 1, s.Names[i], s.Taglines[i], s.Domains[i]})
	}
	t.AppendFooter(table.Row{"", "Positioning", s.Positioning, ""})
	return t.Render()
}

func memeTable(resp pitch.Response) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(modeTitle(resp.Mode))
	t.AppendRows([]table.Row{
		{"Template", resp.Template},
		{"Top", resp.TopText},
		{"Bottom", resp.BottomText},
		{"Caption", resp.Caption},
		{"Share", resp.ShareText},
	})
	return t.Render()
}

// FormatDomains renders availability lookups.
func (f *TableFormatter) FormatDomains(results []domains.Result) (string, error) {
	if len(results) == 0 {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Domain", "Status", "Notes"})

	available := 0
	for _, r := range results {
		if r.Availability == domains.Available {
			available++
		}
		t.AppendRow(table.Row{r.Domain, statusLabel(r), formatNotes(r)})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d available", available, len(results)), ""})
	return t.Render(), nil
}

// FormatLeaderboard renders the ranking, best first.
func (f *TableFormatter) FormatLeaderboard(profiles []gamify.Profile) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Leaderboard")
	t.AppendHeader(table.Row{"#", "Player", "Rank", "Level", "XP", "Pitches"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "XP", Align: text.AlignRight},
		{Name: "Pitches", Align: text.AlignRight},
	})

	for i, p := range profiles {
		t.AppendRow(table.Row{i + 1, playerLabel(p), p.Rank, p.Level, p.XP, p.TotalPitches})
	}
	if len(profiles) == 0 {
		t.AppendRow(table.Row{"", "no players yet", "", "", "", ""})
	}
	return t.Render(), nil
}
