package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/gamify"
	"github.com/pitchslap/pitchslap/internal/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage player profiles and XP",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create [alias]",
	Short: "Register a player (a random alias is drawn when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		alias := strings.Join(args, " ")
		return withPlayers(cmd, func(ctx context.Context, svc *services) (gamify.Profile, error) {
			return svc.players.Register(ctx, alias)
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <player-id>",
	Short: "Show a player's XP, rank and stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPlayers(cmd, func(ctx context.Context, svc *services) (gamify.Profile, error) {
			return svc.players.Profile(ctx, args[0])
		})
	},
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <player-id> <alias>",
	Short: "Change a player's alias",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		alias := strings.Join(args[1:], " ")
		return withPlayers(cmd, func(ctx context.Context, svc *services) (gamify.Profile, error) {
			return svc.players.Rename(ctx, args[0], alias)
		})
	},
}

var profileAwardCmd = &cobra.Command{
	Use:   "award <player-id> <action>",
	Short: "Credit XP for an action such as voice_roast or share_meme",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := gamify.ParseAction(args[1])
		if err != nil {
			return err
		}
		title, _ := cmd.Flags().GetString("pitch-title")
		return withPlayers(cmd, func(ctx context.Context, svc *services) (gamify.Profile, error) {
			award, err := svc.players.Award(ctx, args[0], action, title)
			if err != nil {
				return gamify.Profile{}, err
			}
			msg := fmt.Sprintf("+%d XP for %s", award.XP, award.Action)
			if award.LeveledUp {
				msg += fmt.Sprintf(" - promoted to %s", award.NewRank)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return award.Profile, nil
		})
	},
}

var profileRewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "List XP rewards and ranks",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		out, structured, err := output.Structured(format, map[string]any{
			"rewards": gamify.Rewards(),
			"ranks":   gamify.Ranks(),
		})
		if err != nil {
			return err
		}
		if structured {
			return emit(cmd, out)
		}

		rewards := table.NewWriter()
		rewards.SetStyle(table.StyleRounded)
		rewards.SetTitle("XP Rewards")
		rewards.AppendHeader(table.Row{"Action", "XP", "Description"})
		for _, r := range gamify.Rewards() {
			rewards.AppendRow(table.Row{r.Action, r.XP, r.Description})
		}

		ranks := table.NewWriter()
		ranks.SetStyle(table.StyleRounded)
		ranks.SetTitle("Ranks")
		ranks.AppendHeader(table.Row{"Level", "Rank", "Min XP"})
		for _, r := range gamify.Ranks() {
			ranks.AppendRow(table.Row{r.Level, r.Icon + " " + r.Name, r.MinXP})
		}
		return emit(cmd, rewards.Render()+"\n\n"+ranks.Render())
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	for _, c := range []*cobra.Command{profileCreateCmd, profileShowCmd, profileRenameCmd, profileAwardCmd, profileRewardsCmd} {
		addOutputFlags(c)
		profileCmd.AddCommand(c)
	}
	profileAwardCmd.Flags().String("pitch-title", "", "Pitch title recorded for pitch_submit")
}

// withPlayers opens the services, runs fn and prints the resulting profile.
func withPlayers(cmd *cobra.Command, fn func(context.Context, *services) (gamify.Profile, error)) error {
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	svc, err := openServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close() // nolint:errcheck

	p, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	position, err := svc.players.Position(ctx, p.ID)
	if err != nil {
		return err
	}
	return printPlayer(cmd, format, p, position)
}

func printPlayer(cmd *cobra.Command, format output.Format, p gamify.Profile, position int) error {
	progress := gamify.ProgressFor(p.XP)
	out, structured, err := output.Structured(format, map[string]any{
		"profile":  p,
		"progress": progress,
		"position": position,
	})
	if err != nil {
		return err
	}
	if structured {
		return emit(cmd, out)
	}

	board := "unranked"
	if position > 0 {
		board = fmt.Sprintf("#%d", position)
	}
	next := "max rank"
	if progress.Needed > 0 {
		next = fmt.Sprintf("%d XP to %s", progress.Needed, progress.Next.Name)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s %s", progress.Rank.Icon, p.Alias))
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.AppendRows([]table.Row{
		{"ID", p.ID},
		{"Rank", fmt.Sprintf("%s (level %d)", p.Rank, p.Level)},
		{"XP", fmt.Sprintf("%d (%.0f%%, %s)", p.XP, progress.Progress, next)},
		{"Leaderboard", board},
		{"Pitches", p.TotalPitches},
		{"Roasts", p.TotalRoasts},
		{"Fix-its", p.TotalFixIts},
		{"Memes", p.TotalMemes},
		{"Voice roasts", p.TotalVoiceRoasts},
	})
	if p.MostRoastedPitch != "" {
		t.AppendRow(table.Row{"Latest pitch", p.MostRoastedPitch})
	}
	return emit(cmd, t.Render())
}
