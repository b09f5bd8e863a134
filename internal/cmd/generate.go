package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchslap/pitchslap/internal/config"
	"github.com/pitchslap/pitchslap/internal/memecard"
	"github.com/pitchslap/pitchslap/internal/metrics"
	"github.com/pitchslap/pitchslap/internal/observability"
	"github.com/pitchslap/pitchslap/internal/output"
	"github.com/pitchslap/pitchslap/internal/pitch"
)

var generateCmd = &cobra.Command{
	Use:   "generate <pitch>",
	Short: "Run a pitch through any mode",
	Long: `Run a pitch through the mode chosen with --mode.

Examples:
  pitchslap generate --mode scorecard "We use AI to match dog walkers with busy owners"
  pitchslap generate --mode meme --file pitch.txt --png meme.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("mode")
		mode, err := pitch.ParseMode(raw)
		if err != nil {
			return err
		}
		return runGenerate(cmd, args, mode)
	},
}

var modeCommands = []struct {
	mode  pitch.Mode
	short string
	long  string
}{
	{pitch.ModeRoast, "Roast a startup pitch", "Get a savage, pattern-matched roast of your pitch."},
	{pitch.ModeFixIt, "Rewrite a pitch into something fundable", "Rewrite the pitch around its strongest angle."},
	{pitch.ModeScorecard, "Score a pitch on five axes", "Score originality, market size, monetization, clarity and team potential, each out of 100."},
	{pitch.ModeBranding, "Suggest names, taglines and domains", "Suggest startup names, taglines, positioning and domains. Use --check-domains to look them up."},
	{pitch.ModeMeme, "Turn a pitch into a meme", "Build a meme from the pitch. Use --png to render the card."},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd, "")
	generateCmd.Flags().String("mode", string(pitch.ModeRoast), "Mode: roast, fixit, scorecard, branding, meme")

	for _, mc := range modeCommands {
		mode := mc.mode
		cmd := &cobra.Command{
			Use:   string(mode) + " <pitch>",
			Short: mc.short,
			Long:  mc.long,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGenerate(cmd, args, mode)
			},
		}
		addGenerateFlags(cmd, mode)
		rootCmd.AddCommand(cmd)
	}
}

func addGenerateFlags(cmd *cobra.Command, mode pitch.Mode) {
	addPitchInputFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().String("player", "", "Credit XP to this player ID")
	if mode == "" || mode == pitch.ModeBranding {
		cmd.Flags().Bool("check-domains", false, "Check RDAP availability of the suggested domains")
	}
	if mode == "" || mode == pitch.ModeMeme {
		cmd.Flags().String("png", "", "Render the meme card to this PNG path (a directory gets a generated name)")
	}
}

func runGenerate(cmd *cobra.Command, args []string, mode pitch.Mode) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}
	text, err := readPitch(cmd, args, cfg.Engine.MaxPitchLength)
	if err != nil {
		return err
	}

	engine := newEngine(cfg, newChooser(cfg), pitch.WithObserver(metrics.PitchObserver(observability.CLILogger.Debug)))
	resp := engine.GenerateContext(ctx, text, mode)

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatResponse(resp)
	if err != nil {
		return err
	}

	if checkDomains, _ := cmd.Flags().GetBool("check-domains"); checkDomains && resp.Suggestions != nil {
		table, err := checkSuggestedDomains(ctx, cfg, formatter, resp.Suggestions.Domains[:])
		if err != nil {
			return err
		}
		rendered = strings.TrimRight(rendered, "\n") + "\n\n" + table
	}

	if pngPath, _ := cmd.Flags().GetString("png"); pngPath != "" && mode == pitch.ModeMeme {
		path, err := writeMemePNG(cfg, resp, pngPath)
		if err != nil {
			return err
		}
		observability.CLILogger.Info("Meme card written", zap.String("path", path))
	}

	if player, _ := cmd.Flags().GetString("player"); player != "" {
		if err := awardGeneration(ctx, cfg, player, text, resp); err != nil {
			return err
		}
	}

	return emit(cmd, rendered)
}

// checkSuggestedDomains looks up names even when domains.enabled is off;
// the flag is an explicit request.
func checkSuggestedDomains(ctx context.Context, cfg *config.Config, formatter output.Formatter, names []string) (string, error) {
	enabled := *cfg
	enabled.Domains.Enabled = true

	db, release, err := domainCacheStore(ctx, cfg, nil)
	if err != nil {
		return "", err
	}
	defer release()
	checker := newDomainChecker(&enabled, db)

	results := checker.CheckAll(ctx, names)
	return formatter.FormatDomains(results)
}

func writeMemePNG(cfg *config.Config, resp pitch.Response, target string) (string, error) {
	if resp.Failed() || resp.Template == "" {
		return "", errors.New("no meme to render")
	}
	meme := pitch.Meme{
		Template:   resp.Template,
		TopText:    resp.TopText,
		BottomText: resp.BottomText,
		Caption:    resp.Caption,
		ShareText:  resp.ShareText,
	}

	path := strings.TrimSpace(target)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, sanitizeFilename(resp.Template)+".png")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	opts := memecard.Options{Width: cfg.Meme.Width, Height: cfg.Meme.Height}
	if err := memecard.WritePNG(file, meme, opts); err != nil {
		_ = file.Close()
		return "", err
	}
	return path, file.Close()
}

func awardGeneration(ctx context.Context, cfg *config.Config, playerID, text string, resp pitch.Response) error {
	svc, err := openServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close() // nolint:errcheck

	awards, err := svc.players.AwardGeneration(ctx, playerID, text, resp)
	if err != nil {
		return fmt.Errorf("award xp: %w", err)
	}
	for _, a := range awards {
		fields := []zap.Field{
			zap.String("action", string(a.Action)),
			zap.Int("xp", a.XP),
			zap.Int("total_xp", a.Profile.XP),
		}
		if a.LeveledUp {
			fields = append(fields, zap.String("new_rank", a.NewRank))
		}
		observability.CLILogger.Info("XP awarded", fields...)
	}
	return nil
}
