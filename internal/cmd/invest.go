package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/investor"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/output"
)

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Play the investor simulator",
	Long: `Decide whether to invest in generated startups and build a VC track record.

"invest play" runs an interactive session. "invest deal" and "invest decide"
split a round across two invocations and need a persistent store.`,
}

var investDealCmd = &cobra.Command{
	Use:   "deal",
	Short: "Draw a new startup to evaluate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInvestor(cmd, func(ctx context.Context, format output.Format, svc *services) error {
			if svc.store == nil {
				observability.CLILogger.Warn("leaderboard.backend is memory; this deal is lost when the command exits")
			}
			d, err := svc.investor.Deal(ctx)
			if err != nil {
				return err
			}
			return printOffer(cmd, format, d.Offer())
		})
	},
}

var investDecideCmd = &cobra.Command{
	Use:   "decide <deal-id> <invest|pass>",
	Short: "Invest in or pass on a drawn deal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		choice, err := investor.ParseChoice(args[1])
		if err != nil {
			return err
		}
		player, _ := cmd.Flags().GetString("player")
		if strings.TrimSpace(player) == "" {
			return errors.New("--player is required")
		}
		confidence, _ := cmd.Flags().GetInt("confidence")
		reasoning, _ := cmd.Flags().GetString("reasoning")

		return withInvestor(cmd, func(ctx context.Context, format output.Format, svc *services) error {
			verdict, err := svc.investor.Decide(ctx, player, args[0], investor.Decision{
				Choice:     choice,
				Confidence: confidence,
				Reasoning:  reasoning,
			})
			if errors.Is(err, investor.ErrDealNotFound) {
				return fmt.Errorf("deal %s not found or already decided", args[0])
			}
			if err != nil {
				return err
			}
			return printVerdict(cmd, format, verdict)
		})
	},
}

var investProfileCmd = &cobra.Command{
	Use:   "profile <player-id>",
	Short: "Show a player's investor record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withInvestor(cmd, func(ctx context.Context, format output.Format, svc *services) error {
			p, err := svc.investor.Profile(ctx, args[0])
			if err != nil {
				return err
			}
			return printInvestorProfile(cmd, format, p)
		})
	},
}

var investPlayCmd = &cobra.Command{
	Use:   "play",
	Short: "Play rounds interactively until you type q",
	RunE: func(cmd *cobra.Command, args []string) error {
		player, _ := cmd.Flags().GetString("player")
		if strings.TrimSpace(player) == "" {
			player = "local"
		}
		return withInvestor(cmd, func(ctx context.Context, format output.Format, svc *services) error {
			return playRounds(ctx, cmd, format, svc.investor, player)
		})
	},
}

var investPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete undecided deals older than --older-than",
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return errors.New("--older-than must be positive")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Leaderboard.Backend == config.BackendMemory {
			return nil
		}
		ctx := cmd.Context()
		db, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck
		return pruneDeals(ctx, db, age, observability.CLILogger.Info)
	},
}

func init() {
	rootCmd.AddCommand(investCmd)
	for _, c := range []*cobra.Command{investDealCmd, investDecideCmd, investProfileCmd, investPlayCmd, investPruneCmd} {
		investCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{investDealCmd, investDecideCmd, investProfileCmd, investPlayCmd} {
		addOutputFlags(c)
	}

	investDecideCmd.Flags().String("player", "", "Player ID making the call")
	investDecideCmd.Flags().Int("confidence", 3, "Confidence from 1 to 5")
	investDecideCmd.Flags().String("reasoning", "", "Why you made the call")

	investPlayCmd.Flags().String("player", "", "Player ID (default \"local\")")

	investPruneCmd.Flags().Duration("older-than", 24*time.Hour, "Age after which undecided deals are dropped")
}

func withInvestor(cmd *cobra.Command, fn func(context.Context, output.Format, *services) error) error {
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
	return fn(ctx, format, svc)
}

// playRounds deals, reads "invest", "pass" or "q" plus an optional 1-5
// confidence from stdin, and prints each verdict.
func playRounds(ctx context.Context, cmd *cobra.Command, format output.Format, game *investor.Game, player string) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		d, err := game.Deal(ctx)
		if err != nil {
			return err
		}
		if err := printOffer(cmd, format, d.Offer()); err != nil {
			return err
		}

		decision, quit, err := askDecision(in, out)
		if err != nil || quit {
			return err
		}
		verdict, err := game.Decide(ctx, player, d.ID, decision)
		if err != nil {
			return err
		}
		if err := printVerdict(cmd, format, verdict); err != nil {
			return err
		}
	}
}

func askDecision(in *bufio.Scanner, out io.Writer) (investor.Decision, bool, error) {
	for {
		fmt.Fprint(out, "invest or pass [confidence 1-5], q to quit: ")
		if !in.Scan() {
			return investor.Decision{}, true, in.Err()
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		if strings.EqualFold(fields[0], "q") || strings.EqualFold(fields[0], "quit") {
			return investor.Decision{}, true, nil
		}
		choice, err := investor.ParseChoice(fields[0])
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		confidence := 3
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				confidence = n
			}
		}
		return investor.Decision{Choice: choice, Confidence: confidence}, false, nil
	}
}

func printOffer(cmd *cobra.Command, format output.Format, o investor.Offer) error {
	out, structured, err := output.Structured(format, o)
	if err != nil {
		return err
	}
	if structured {
		return emit(cmd, out)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(o.CompanyName)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 70},
	})
	t.AppendRows([]table.Row{
		{"Deal", o.ID},
		{"Pitch", o.Pitch},
		{"Category", o.Category},
		{"Valuation", o.Valuation},
		{"Founders", o.Founders},
		{"Traction", o.Traction},
	})
	return emit(cmd, t.Render())
}

func printVerdict(cmd *cobra.Command, format output.Format, v investor.Verdict) error {
	out, structured, err := output.Structured(format, v)
	if err != nil {
		return err
	}
	if structured {
		return emit(cmd, out)
	}

	outcome := "❌ Wrong call"
	if v.Result.Correct {
		outcome = "✅ Right call"
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(outcome)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: 70},
	})
	t.AppendRows([]table.Row{
		{"Outcome", v.Result.ActualOutcome},
		{"Why", v.Result.Explanation},
		{"Points", fmt.Sprintf("%+d", v.Result.Points)},
		{"VC says", v.Result.VCReaction},
	})
	if len(v.Deal.RedFlags) > 0 {
		t.AppendRow(table.Row{"Red flags", strings.Join(v.Deal.RedFlags, "\n")})
	}
	if len(v.Deal.GreenFlags) > 0 {
		t.AppendRow(table.Row{"Green flags", strings.Join(v.Deal.GreenFlags, "\n")})
	}
	t.AppendFooter(table.Row{"Record", fmt.Sprintf("%d%% over %d deals, streak %d",
		v.Profile.Accuracy, v.Profile.TotalDeals, v.Profile.Streak)})
	return emit(cmd, t.Render())
}

func printInvestorProfile(cmd *cobra.Command, format output.Format, p investor.Profile) error {
	current, next, progress := investor.RankProgress(p.Accuracy, p.TotalDeals)
	out, structured, err := output.Structured(format, map[string]any{
		"profile":  p,
		"rank":     current,
		"next":     next,
		"progress": progress,
	})
	if err != nil {
		return err
	}
	if structured {
		return emit(cmd, out)
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s %s", current.Icon, current.Name))
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.AppendRows([]table.Row{
		{"Player", p.PlayerID},
		{"Deals", p.TotalDeals},
		{"Correct", p.CorrectDecisions},
		{"Accuracy", fmt.Sprintf("%d%%", p.Accuracy)},
		{"Points", p.TotalPoints},
		{"Streak", fmt.Sprintf("%d (best %d)", p.Streak, p.BestStreak)},
	})
	if next.Level != current.Level {
		t.AppendFooter(table.Row{"Next", fmt.Sprintf("%s %s (%.0f%%)", next.Icon, next.Name, progress)})
	}
	return emit(cmd, t.Render())
}
