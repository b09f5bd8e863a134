package output

import (
	"fmt"
	"strings"

	"github.com/pitchslap/pitchslap/internal/domains"
	"github.com/pitchslap/pitchslap/internal/gamify"
)

func statusLabel(result domains.Result) string {
	switch result.Availability {
	case domains.Available:
		return "available"
	case domains.Taken:
		return "taken"
	case domains.RateLimited:
		return "rate limited"
	case domains.Failed:
		return "error"
	default:
		return "unknown"
	}
}

func formatNotes(result domains.Result) string {
	notes := make([]string, 0, 3)
	if registrar := strings.TrimSpace(result.Registrar); registrar != "" {
		notes = append(notes, "registrar: "+registrar)
	}
	if exp := strings.TrimSpace(result.Expiration); exp != "" {
		if len(exp) >= 10 {
			exp = exp[:10]
		}
		notes = append(notes, "expires: "+exp)
	}
	if result.Availability == domains.RateLimited || result.Availability == domains.Failed {
		if msg := strings.TrimSpace(result.Message); msg != "" {
			notes = append(notes, msg)
		}
	}
	if result.FromCache {
		notes = append(notes, "cached")
	}
	return strings.Join(notes, "; ")
}

// playerLabel shows the rank icon next to the alias when one is known.
func playerLabel(p gamify.Profile) string {
	alias := strings.TrimSpace(p.Alias)
	if alias == "" {
		alias = p.ID
	}
	rank := gamify.RankFor(p.XP)
	if rank.Icon == "" {
		return alias
	}
	return fmt.Sprintf("%s %s", rank.Icon, alias)
}
